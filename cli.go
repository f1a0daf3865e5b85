package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/metcalfc/brisk/internal/bookmark"
	"github.com/metcalfc/brisk/internal/config"
	"github.com/metcalfc/brisk/internal/session"
	"github.com/metcalfc/brisk/internal/source"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	debugEnv     = "BRISK_DEBUG"
	debugLogFile = "brisk-debug.log"
)

type options struct {
	cfg        config.Config
	input      string
	bookmark   string
	configPath string
	resume     bool
}

func newOptions() *options {
	return &options{cfg: config.Default()}
}

type runFunc func(cfg config.Config, opts *options) error

func newRootCmd(name string, opts *options, run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [options] [file]",
		Short: "Speed reader that reveals text in timed chunks",
		Long: name + " shows a text a few words at a time at a fixed pace, with a side panel\n" +
			"reporting progress and an estimated finish time.\n\n" +
			"Supported formats: plain text and " + joinFormats() + ".\n" +
			"Without a file, text is read from standard input.",
		Example: "  " + name + " book.txt\n" +
			"  " + name + " -s 450 -c 2 notes.md\n" +
			"  " + name + " -b ~/marks/book.yaml book.epub\n" +
			"  cat article.txt | " + name,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.input != "" && opts.input != args[0] {
					return fmt.Errorf("two input files given: %q and %q", opts.input, args[0])
				}
				opts.input = args[0]
			}
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cfg, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.cfg.Speed, "speed", "s", opts.cfg.Speed, "words per minute")
	f.IntVarP(&opts.cfg.Chunk, "chunk", "c", opts.cfg.Chunk, "words shown at once")
	f.IntVarP(&opts.cfg.Step, "step", "n", 0, "words moved by forward/back (default: chunk size)")
	f.StringVarP(&opts.input, "input-file", "f", "", "file to read (default: standard input)")
	f.StringVarP(&opts.bookmark, "bookmark", "b", "", "bookmark file to resume from and save to")
	f.BoolVar(&opts.resume, "resume", false, "resume from the saved bookmark for this source")
	f.StringVar(&opts.configPath, "config", "", "config file (default: "+config.Path()+")")

	return cmd
}

// resolve layers explicitly set flags over the config file over the defaults.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = o.cfg.Speed
	}
	if flags.Changed("chunk") {
		cfg.Chunk = o.cfg.Chunk
	}
	if flags.Changed("step") {
		cfg.Step = o.cfg.Step
		if cfg.Step == 0 {
			return cfg, errors.New("invalid step: 0 (must be positive)")
		}
	}
	return cfg, cfg.Validate()
}

// readSource returns the text of path, or of stdin when path is empty. A
// terminal on stdin means nothing was piped in.
func readSource(path string, stdin *os.File) (text string, fromStdin bool, err error) {
	if path != "" {
		text, err = source.ExtractText(path)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file '%s': %w", path, err)
		}
		return text, false, nil
	}

	fd := stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "", true, errors.New("no input provided. Provide a file or pipe text to stdin")
	}
	text, err = source.Read(stdin)
	if err != nil {
		return "", true, fmt.Errorf("reading stdin: %w", err)
	}
	return text, true, nil
}

// restoreBookmark applies the requested bookmark and returns the path saves go to.
func restoreBookmark(s *session.Session, cfg config.Config, opts *options) (string, error) {
	if opts.bookmark != "" {
		if err := s.LoadBookmark(opts.bookmark); err != nil {
			return "", err
		}
		log.Printf("resumed at chunk %d from %s", s.Position(), opts.bookmark)
		return opts.bookmark, nil
	}

	dir := cfg.BookmarkDir
	if dir == "" {
		dir = bookmark.StateDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		// Saving will report the failure; reading can go on.
		log.Printf("bookmark dir: %v", err)
	}
	path := bookmark.DefaultPath(dir, opts.input)

	if opts.resume {
		err := s.LoadBookmark(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("no bookmark at %s, starting at the top", path)
		case err != nil:
			return "", err
		}
	}
	return path, nil
}

func joinFormats() string {
	return strings.Join(source.SupportedFormats(), ", ")
}

// setupDebugLog sends the standard logger to a file when BRISK_DEBUG is set and
// discards it otherwise, so nothing is written under the UI.
func setupDebugLog() (func(), error) {
	if os.Getenv(debugEnv) == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(debugLogFile, "brisk")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}
