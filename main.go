//go:build !gui

package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/metcalfc/brisk/internal/config"
	"github.com/metcalfc/brisk/internal/session"
	"github.com/metcalfc/brisk/internal/source"
)

func runTUI(cfg config.Config, opts *options) error {
	closeLog, err := setupDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	text, fromStdin, err := readSource(opts.input, os.Stdin)
	if err != nil {
		return err
	}

	s, err := session.New(source.Tokenize(text), session.Options{
		SpeedWPM:  cfg.Speed,
		ChunkSize: cfg.Chunk,
		Step:      cfg.EffectiveStep(),
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d chunks of %d words at %d wpm", s.NumChunks(), cfg.Chunk, cfg.Speed)

	bookmarkPath, err := restoreBookmark(s, cfg, opts)
	if err != nil {
		return err
	}

	m := newModel(s, opts.input, bookmarkPath, cfg.SpeedIncrement)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		m.width, m.height = w, h
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if fromStdin {
		// Standard input was the text; keys come from the terminal.
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	_, err = tea.NewProgram(m, progOpts...).Run()
	return err
}

func main() {
	if err := newRootCmd("brisk", newOptions(), runTUI).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
