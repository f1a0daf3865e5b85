// Package progress derives human-facing reading metrics from a session snapshot.
package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/metcalfc/brisk/internal/session"
)

// StdinLabel is shown in place of a file name when reading standard input.
const StdinLabel = "reading stdin"

// Snapshotter is the read side of a session.
type Snapshotter interface {
	Snapshot() session.Snapshot
}

// Reporter computes progress fields. It never mutates the session; its only
// state is the last completion estimate, which stays frozen while paused.
type Reporter struct {
	src   Snapshotter
	label string

	mu      sync.Mutex
	eta     time.Time
	haveETA bool
}

// NewReporter returns a Reporter over src. An empty name means standard input.
func NewReporter(src Snapshotter, name string) *Reporter {
	label := name
	if label == "" {
		label = StdinLabel
	}
	return &Reporter{src: src, label: label}
}

// Remaining returns the chunks left after the current position.
func Remaining(s session.Snapshot) int {
	n := (s.NumChunks - 1) - s.Position
	if n < 0 {
		return 0
	}
	return n
}

// Percentage returns how far through the source the position is. A single
// chunk source is always complete.
func Percentage(s session.Snapshot) float64 {
	if s.NumChunks <= 1 {
		return 100
	}
	return 100 * float64(s.Position) / float64(s.NumChunks-1)
}

// TokensPerSecond is the reading speed in words per second.
func TokensPerSecond(s session.Snapshot) float64 {
	return float64(s.SpeedWPM) / 60
}

// SecondsRemaining estimates the time needed to read the remaining chunks.
// Remaining counts chunks, so it is scaled by ChunkSize before dividing by
// TokensPerSecond; the result matches the advance cadence of one chunk every
// 60*ChunkSize/SpeedWPM seconds.
func SecondsRemaining(s session.Snapshot) float64 {
	tps := TokensPerSecond(s)
	if tps <= 0 {
		return 0
	}
	return float64(Remaining(s)*s.ChunkSize) / tps
}

// EstimatedCompletion returns now plus the remaining reading time and caches it.
// While paused, or once nothing remains, the cached estimate is returned instead.
// ok is false until the first estimate has been computed.
func (r *Reporter) EstimatedCompletion(now time.Time) (eta time.Time, ok bool) {
	return r.estimate(r.src.Snapshot(), now)
}

func (r *Reporter) estimate(s session.Snapshot, now time.Time) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !s.Paused && Remaining(s) != 0 {
		secs := SecondsRemaining(s)
		r.eta = now.Add(time.Duration(secs * float64(time.Second)))
		r.haveETA = true
	}
	return r.eta, r.haveETA
}

// Summary is everything the sidebar shows.
type Summary struct {
	Now        time.Time
	Label      string
	SpeedWPM   int
	Paused     bool
	Position   int
	NumChunks  int
	Remaining  int
	Percentage float64
	Seconds    float64
	ETA        time.Time
	HasETA     bool
}

// Summary takes one snapshot and derives every field from it.
func (r *Reporter) Summary(now time.Time) Summary {
	s := r.src.Snapshot()
	eta, ok := r.estimate(s, now)
	return Summary{
		Now:        now,
		Label:      r.label,
		SpeedWPM:   s.SpeedWPM,
		Paused:     s.Paused,
		Position:   s.Position,
		NumChunks:  s.NumChunks,
		Remaining:  Remaining(s),
		Percentage: Percentage(s),
		Seconds:    SecondsRemaining(s),
		ETA:        eta,
		HasETA:     ok,
	}
}

// Location is the one-based position over the chunk count.
func (s Summary) Location() string {
	return fmt.Sprintf("%d / %d", s.Position+1, s.NumChunks)
}

// ETAString formats the completion estimate, or "--:--:--" before there is one.
func (s Summary) ETAString() string {
	if !s.HasETA {
		return "--:--:--"
	}
	return s.ETA.Format(time.TimeOnly)
}

// Lines renders the summary as label/value rows for a side panel.
func (s Summary) Lines() []string {
	return []string{
		s.Now.Format(time.DateTime),
		s.Label,
		fmt.Sprintf("Speed     %d WPM", s.SpeedWPM),
		fmt.Sprintf("Location  %s", s.Location()),
		fmt.Sprintf("Read      %.1f%%", s.Percentage),
		fmt.Sprintf("Remaining %d", s.Remaining),
		fmt.Sprintf("Time left %s", formatSeconds(s.Seconds)),
		fmt.Sprintf("Done at   %s", s.ETAString()),
	}
}

func formatSeconds(secs float64) string {
	d := time.Duration(secs * float64(time.Second)).Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	sec := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	return fmt.Sprintf("%dm%02ds", m, sec)
}
