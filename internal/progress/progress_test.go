package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/metcalfc/brisk/internal/session"
)

type fixed struct{ snap session.Snapshot }

func (f *fixed) Snapshot() session.Snapshot { return f.snap }

func TestRemaining(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want int
	}{
		{"start", session.Snapshot{Position: 0, NumChunks: 10}, 9},
		{"middle", session.Snapshot{Position: 4, NumChunks: 10}, 5},
		{"end", session.Snapshot{Position: 9, NumChunks: 10}, 0},
		{"single chunk", session.Snapshot{Position: 0, NumChunks: 1}, 0},
		{"clamped", session.Snapshot{Position: 0, NumChunks: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(tt.snap); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want float64
	}{
		{"start", session.Snapshot{Position: 0, NumChunks: 5}, 0},
		{"half", session.Snapshot{Position: 2, NumChunks: 5}, 50},
		{"end", session.Snapshot{Position: 4, NumChunks: 5}, 100},
		{"single chunk", session.Snapshot{Position: 0, NumChunks: 1}, 100},
		{"no chunks", session.Snapshot{Position: 0, NumChunks: 0}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.snap); got != tt.want {
				t.Errorf("Percentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSecondsRemaining(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want float64
	}{
		{"single tokens", session.Snapshot{Position: 0, NumChunks: 11, ChunkSize: 1, SpeedWPM: 300}, 2},
		{"chunks of three", session.Snapshot{Position: 0, NumChunks: 11, ChunkSize: 3, SpeedWPM: 300}, 6},
		{"zero speed", session.Snapshot{Position: 0, NumChunks: 11, ChunkSize: 1, SpeedWPM: 0}, 0},
		{"at end", session.Snapshot{Position: 10, NumChunks: 11, ChunkSize: 1, SpeedWPM: 300}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecondsRemaining(tt.snap); got != tt.want {
				t.Errorf("SecondsRemaining() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := TokensPerSecond(session.Snapshot{SpeedWPM: 120}); got != 2 {
		t.Errorf("TokensPerSecond() = %v, want 2", got)
	}
}

func TestEstimatedCompletion(t *testing.T) {
	src := &fixed{session.Snapshot{Position: 0, NumChunks: 11, ChunkSize: 1, SpeedWPM: 60}}
	r := NewReporter(src, "book.txt")
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	src.snap.Paused = true
	if _, ok := r.EstimatedCompletion(now); ok {
		t.Fatal("no estimate should exist before the first unpaused tick")
	}

	src.snap.Paused = false
	eta, ok := r.EstimatedCompletion(now)
	if !ok || !eta.Equal(now.Add(10*time.Second)) {
		t.Fatalf("EstimatedCompletion() = %v, %v", eta, ok)
	}

	// Paused: the estimate freezes even as time passes.
	src.snap.Paused = true
	later := now.Add(time.Minute)
	if got, _ := r.EstimatedCompletion(later); !got.Equal(eta) {
		t.Errorf("paused estimate drifted to %v, want %v", got, eta)
	}

	// Resumed: recomputed from the new now.
	src.snap.Paused = false
	src.snap.Position = 5
	if got, _ := r.EstimatedCompletion(later); !got.Equal(later.Add(5 * time.Second)) {
		t.Errorf("resumed estimate = %v", got)
	}

	// Complete: holds the last estimate.
	src.snap.Position = 10
	if got, _ := r.EstimatedCompletion(later.Add(time.Hour)); !got.Equal(later.Add(5 * time.Second)) {
		t.Errorf("estimate at completion = %v", got)
	}
}

func TestSummary(t *testing.T) {
	src := &fixed{session.Snapshot{Position: 2, NumChunks: 5, ChunkSize: 3, SpeedWPM: 180}}
	now := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	sum := NewReporter(src, "").Summary(now)
	if sum.Label != StdinLabel {
		t.Errorf("Label = %q, want %q", sum.Label, StdinLabel)
	}
	if sum.Location() != "3 / 5" {
		t.Errorf("Location() = %q", sum.Location())
	}
	if sum.Remaining != 2 || sum.Percentage != 50 || sum.Seconds != 2 {
		t.Errorf("summary fields = %+v", sum)
	}
	if sum.ETAString() != "09:30:02" {
		t.Errorf("ETAString() = %q", sum.ETAString())
	}

	lines := strings.Join(sum.Lines(), "\n")
	for _, want := range []string{"2024-03-04 09:30:00", "reading stdin", "180 WPM", "3 / 5", "50.0%", "0m02s"} {
		if !strings.Contains(lines, want) {
			t.Errorf("Lines() missing %q:\n%s", want, lines)
		}
	}

	named := NewReporter(src, "novel.txt").Summary(now)
	if named.Label != "novel.txt" {
		t.Errorf("Label = %q", named.Label)
	}
}

func TestSummaryWithoutETA(t *testing.T) {
	src := &fixed{session.Snapshot{Position: 0, NumChunks: 3, ChunkSize: 1, SpeedWPM: 300, Paused: true}}
	sum := NewReporter(src, "x").Summary(time.Now())
	if sum.HasETA || sum.ETAString() != "--:--:--" {
		t.Errorf("ETA should be unavailable: %+v", sum)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m00s"},
		{59.6, "1m00s"},
		{125, "2m05s"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
