//go:build !gui

package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	readprogress "github.com/metcalfc/brisk/internal/progress"
	"github.com/metcalfc/brisk/internal/session"
)

const reportInterval = time.Second

type (
	advanceMsg time.Time
	reportMsg  time.Time
)

type model struct {
	session  *session.Session
	reporter *readprogress.Reporter
	keys     keyMap
	help     help.Model
	bar      progress.Model

	chunk        string
	summary      readprogress.Summary
	bookmarkPath string
	speedStep    int

	sidebar  bool
	notice   string
	failed   bool
	quitting bool
	width    int
	height   int
}

func newModel(s *session.Session, name, bookmarkPath string, speedStep int) model {
	r := readprogress.NewReporter(s, name)
	return model{
		session:      s,
		reporter:     r,
		keys:         defaultKeyMap(),
		help:         help.New(),
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(sidebarWidth-4)),
		chunk:        s.Peek(),
		summary:      r.Summary(time.Now()),
		bookmarkPath: bookmarkPath,
		speedStep:    speedStep,
		sidebar:      true,
		width:        80,
		height:       24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return advanceMsg(time.Now()) },
		reportTick(),
	)
}

func (m model) advanceTick() tea.Cmd {
	d, err := m.session.RefreshInterval()
	if err != nil {
		log.Printf("refresh interval: %v", err)
		d = time.Second
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return advanceMsg(t)
	})
}

func reportTick() tea.Cmd {
	return tea.Tick(reportInterval, func(t time.Time) tea.Msg {
		return reportMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case advanceMsg:
		if !m.session.Paused() {
			m.chunk = m.session.Advance()
		}
		return m, m.advanceTick()

	case reportMsg:
		m.summary = m.reporter.Summary(time.Time(msg))
		return m, reportTick()
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.session.Pause()

	case key.Matches(msg, m.keys.Resume):
		m.session.Resume()

	case key.Matches(msg, m.keys.Toggle):
		m.session.TogglePause()

	case key.Matches(msg, m.keys.Save):
		m.saveBookmark()

	case key.Matches(msg, m.keys.Sidebar):
		m.sidebar = !m.sidebar

	case key.Matches(msg, m.keys.Forward):
		m.session.Forward()
		m.showPosition()

	case key.Matches(msg, m.keys.Back):
		m.session.Back()
		m.showPosition()

	case key.Matches(msg, m.keys.Top):
		m.session.GoToTop()
		m.showPosition()

	case key.Matches(msg, m.keys.Faster):
		m.adjustSpeed(m.speedStep)

	case key.Matches(msg, m.keys.Slower):
		m.adjustSpeed(-m.speedStep)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		return m, nil
	}

	m.summary = m.reporter.Summary(time.Now())
	return m, nil
}

// showPosition displays the chunk under the new position when the ticker will not.
func (m *model) showPosition() {
	if m.session.Paused() {
		m.chunk = m.session.Peek()
	}
}

// adjustSpeed changes the speed by delta, never slowing below one speed step.
func (m *model) adjustSpeed(delta int) {
	wpm, err := m.session.AdjustSpeed(delta, m.speedStep)
	if err != nil {
		log.Printf("adjust speed: %v", err)
		return
	}
	log.Printf("speed now %d wpm", wpm)
}

func (m *model) saveBookmark() {
	if m.bookmarkPath == "" {
		m.setNotice("no bookmark path", true)
		return
	}
	if err := m.session.SaveBookmark(m.bookmarkPath); err != nil {
		log.Printf("save bookmark: %v", err)
		m.setNotice(fmt.Sprintf("save failed: %v", err), true)
		return
	}
	log.Printf("bookmark saved to %s", m.bookmarkPath)
	m.setNotice("bookmark saved to "+m.bookmarkPath, false)
}

func (m *model) setNotice(s string, failed bool) {
	m.notice = s
	m.failed = failed
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	status := m.statusLine()
	footer := m.footer()

	mainWidth := m.width
	var side string
	if m.sidebar {
		side = m.sidebarView()
		mainWidth -= lipgloss.Width(side)
	}
	if mainWidth < 1 {
		mainWidth = 1
	}

	bodyHeight := m.height - lipgloss.Height(status) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	word := chunkStyle.Render(m.chunk)
	if m.atEnd() {
		word = completeStyle.Render(m.chunk)
	}
	body := lipgloss.Place(mainWidth, bodyHeight, lipgloss.Center, lipgloss.Center, word)
	if m.sidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, body, footer)
}

// atEnd reports whether the final chunk is on screen.
func (m model) atEnd() bool {
	snap := m.session.Snapshot()
	return snap.Position == snap.NumChunks-1 && m.chunk == m.session.Peek()
}

func (m model) statusLine() string {
	pause := ""
	if m.session.Paused() {
		pause = pausedStyle.Render(" [PAUSED]")
	}
	return statusStyle.Render(fmt.Sprintf("%s | %d WPM%s", m.summary.Label, m.session.Speed(), pause))
}

func (m model) sidebarView() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(m.summary.Lines(), "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(m.bar.ViewAs(m.summary.Percentage / 100))
	return sidebarStyle.Render(sb.String())
}

func (m model) footer() string {
	var lines []string
	if m.notice != "" {
		style := noticeStyle
		if m.failed {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.notice))
	}
	lines = append(lines, statusStyle.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}
