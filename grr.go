//go:build gui

package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/metcalfc/brisk/internal/config"
	"github.com/metcalfc/brisk/internal/progress"
	"github.com/metcalfc/brisk/internal/session"
	"github.com/metcalfc/brisk/internal/source"
)

const (
	guiFontSize    = 56
	reportInterval = time.Second
)

func runGUI(cfg config.Config, opts *options) error {
	closeLog, err := setupDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	text, _, err := readSource(opts.input, os.Stdin)
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
	bookmarkPath, err := restoreBookmark(s, cfg, opts)
	if err != nil {
		return err
	}
	// The window starts paused until the reader presses space.
	s.Pause()

	reporter := progress.NewReporter(s, opts.input)

	a := app.New()
	w := a.NewWindow("grisk - Speed Reader")

	chunkText := canvas.NewText(s.Peek(), color.White)
	chunkText.TextSize = guiFontSize
	chunkText.TextStyle.Bold = true
	chunkText.Alignment = fyne.TextAlignCenter

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter
	noticeLabel := widget.NewLabel("")
	controlsLabel := widget.NewLabel("SPACE: pause  P/R: pause/resume  ←/→: move  G: top  ↑/↓: speed  S: save  TAB: sidebar  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	summaryLabel := widget.NewLabel("")
	summaryLabel.TextStyle.Monospace = true
	bar := widget.NewProgressBar()
	sidebar := container.NewVBox(summaryLabel, bar)

	reading := container.NewBorder(statusLabel, container.NewVBox(noticeLabel, controlsLabel), nil, nil,
		container.NewCenter(chunkText))
	split := container.NewHSplit(reading, sidebar)
	split.Offset = 0.7

	var chunkMu sync.Mutex
	chunk := s.Peek()

	render := func() {
		sum := reporter.Summary(time.Now())

		chunkMu.Lock()
		chunkText.Text = chunk
		chunkMu.Unlock()
		chunkText.Refresh()

		pause := ""
		if sum.Paused {
			pause = " [PAUSED]"
		}
		statusLabel.SetText(fmt.Sprintf("%s | %d WPM%s", sum.Label, sum.SpeedWPM, pause))
		summaryLabel.SetText(strings.Join(sum.Lines(), "\n"))
		bar.SetValue(sum.Percentage / 100)
	}

	interval := func() time.Duration {
		d, err := s.RefreshInterval()
		if err != nil {
			return time.Second
		}
		return d
	}

	advance := time.NewTicker(interval())
	report := time.NewTicker(reportInterval)
	done := make(chan struct{})
	var closeOnce sync.Once
	stop := func() {
		closeOnce.Do(func() {
			advance.Stop()
			report.Stop()
			close(done)
		})
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-advance.C:
				if s.Paused() {
					continue
				}
				next := s.Advance()
				chunkMu.Lock()
				chunk = next
				chunkMu.Unlock()
				fyne.Do(render)
			case <-report.C:
				fyne.Do(render)
			}
		}
	}()

	showPosition := func() {
		if s.Paused() {
			chunkMu.Lock()
			chunk = s.Peek()
			chunkMu.Unlock()
		}
		render()
	}

	adjustSpeed := func(delta int) {
		if _, err := s.AdjustSpeed(delta, cfg.SpeedIncrement); err != nil {
			log.Printf("adjust speed: %v", err)
			return
		}
		advance.Reset(interval())
		render()
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeySpace:
			s.TogglePause()
			render()
		case fyne.KeyRight:
			s.Forward()
			showPosition()
		case fyne.KeyLeft:
			s.Back()
			showPosition()
		case fyne.KeyHome:
			s.GoToTop()
			showPosition()
		case fyne.KeyUp:
			adjustSpeed(cfg.SpeedIncrement)
		case fyne.KeyDown:
			adjustSpeed(-cfg.SpeedIncrement)
		case fyne.KeyTab:
			if sidebar.Visible() {
				sidebar.Hide()
			} else {
				sidebar.Show()
			}
			split.Refresh()
		}
	})

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 'p', 'P':
			s.Pause()
			render()
		case 'r', 'R':
			s.Resume()
			render()
		case 'g', 'G':
			s.GoToTop()
			showPosition()
		case 's', 'S':
			if err := s.SaveBookmark(bookmarkPath); err != nil {
				noticeLabel.SetText("save failed: " + err.Error())
			} else {
				noticeLabel.SetText("bookmark saved to " + bookmarkPath)
			}
		case 'q', 'Q':
			stop()
			a.Quit()
		}
	})

	w.SetOnClosed(stop)
	w.Resize(fyne.NewSize(1000, 600))
	w.SetContent(split)
	render()
	w.ShowAndRun()
	return nil
}

func main() {
	if err := newRootCmd("grisk", newOptions(), runGUI).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
