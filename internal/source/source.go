// Package source loads reading material from files or streams and splits it into tokens.
package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format extracts plain text from one kind of file.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
}

var registry []Format

// Register adds a format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// lookup returns the registered format for filename's extension, if any.
func lookup(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return nil
}

// ExtractText returns the text of filename, using a registered format or reading it as plain text.
func ExtractText(filename string) (string, error) {
	if f := lookup(filename); f != nil {
		return f.Extract(filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Read consumes r entirely.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Tokenize splits text on runs of whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
