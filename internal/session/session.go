// Package session holds the pacing and navigation state of a chunked speed reading session.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/metcalfc/brisk/internal/bookmark"
)

const (
	DefaultSpeed = 300
	DefaultChunk = 3
)

// Options configures a new Session. Zero values fall back to the defaults.
type Options struct {
	SpeedWPM  int
	ChunkSize int
	// Step is the number of tokens moved by Forward and Back. Defaults to ChunkSize.
	Step int
}

// Snapshot is a consistent copy of the session fields the display needs.
type Snapshot struct {
	Position  int
	NumChunks int
	ChunkSize int
	SpeedWPM  int
	Paused    bool
}

// Session owns the tokenized text and the reading position. All methods are safe
// for concurrent use; the advance and report ticks may run on different goroutines.
type Session struct {
	mu sync.RWMutex

	tokens    []string
	chunkSize int
	numChunks int
	position  int
	speed     int
	step      int
	paused    bool
	last      string
	shown     bool
}

// Load tokenizes text on whitespace and builds a Session from the tokens.
func Load(text string, opts Options) (*Session, error) {
	return New(strings.Fields(text), opts)
}

// New builds a Session over an already tokenized source.
func New(tokens []string, opts Options) (*Session, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptySource
	}
	if opts.SpeedWPM == 0 {
		opts.SpeedWPM = DefaultSpeed
	}
	if opts.SpeedWPM < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSpeed, opts.SpeedWPM)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunk
	}
	if opts.Step <= 0 {
		opts.Step = opts.ChunkSize
	}

	// Only complete chunks count; a trailing partial chunk is never reached.
	// A source shorter than one chunk is still readable as a single chunk.
	n := len(tokens) / opts.ChunkSize
	if n == 0 {
		n = 1
	}

	return &Session{
		tokens:    tokens,
		chunkSize: opts.ChunkSize,
		numChunks: n,
		speed:     opts.SpeedWPM,
		step:      opts.Step,
	}, nil
}

// chunk returns the tokens of chunk i joined by single spaces. Caller holds mu.
func (s *Session) chunk(i int) string {
	start := i * s.chunkSize
	if start >= len(s.tokens) {
		return ""
	}
	end := start + s.chunkSize
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	return strings.Join(s.tokens[start:end], " ")
}

// Advance reveals the chunk at the current position and moves one chunk forward.
// When paused it returns the last displayed chunk. At the final chunk the
// position holds and the final chunk is returned on every call.
func (s *Session) Advance() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		if !s.shown {
			return s.chunk(s.position)
		}
		return s.last
	}

	s.last = s.chunk(s.position)
	s.shown = true
	if s.position < s.numChunks-1 {
		s.position++
	}
	return s.last
}

// Peek returns the chunk at the current position without moving.
func (s *Session) Peek() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunk(s.position)
}

// RefreshInterval is the time between advances: 60 / (wpm / chunkSize) seconds.
func (s *Session) RefreshInterval() (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return interval(s.speed, s.chunkSize)
}

func interval(wpm, chunkSize int) (time.Duration, error) {
	if wpm <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSpeed, wpm)
	}
	return time.Duration(float64(time.Minute) * float64(chunkSize) / float64(wpm)), nil
}

// Pause stops advances. Navigation still works while paused.
func (s *Session) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume lets advances move the position again.
func (s *Session) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// TogglePause flips the pause flag and reports the new state.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether advances are suppressed.
func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// GoForward moves step chunks forward, stopping at the last chunk.
func (s *Session) GoForward(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numChunks == 0 || step <= 0 {
		return
	}
	s.position += step
	if s.position > s.numChunks-1 {
		s.position = s.numChunks - 1
	}
}

// GoBack moves step chunks back, stopping at the first chunk.
func (s *Session) GoBack(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step <= 0 {
		return
	}
	s.position -= step
	if s.position < 0 {
		s.position = 0
	}
}

// Forward moves by the configured navigation step.
func (s *Session) Forward() { s.GoForward(s.stepChunks()) }

// Back moves by the configured navigation step.
func (s *Session) Back() { s.GoBack(s.stepChunks()) }

// stepChunks converts the token navigation step to whole chunks, at least one.
func (s *Session) stepChunks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := s.step / s.chunkSize
	if n < 1 {
		n = 1
	}
	return n
}

// GoToTop returns to the first chunk.
func (s *Session) GoToTop() {
	s.mu.Lock()
	s.position = 0
	s.mu.Unlock()
}

// SetSpeed changes the reading speed. The position is left untouched and the
// previous speed stays in effect when wpm is rejected.
func (s *Session) SetSpeed(wpm int) error {
	if wpm <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, wpm)
	}
	s.mu.Lock()
	s.speed = wpm
	s.mu.Unlock()
	return nil
}

// AdjustSpeed adds delta to the speed. A result below floor, or not positive,
// is refused and the current speed is kept.
func (s *Session) AdjustSpeed(delta, floor int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.speed + delta
	if next <= 0 || (delta < 0 && next < floor) {
		return s.speed, fmt.Errorf("%w: %d", ErrInvalidSpeed, next)
	}
	s.speed = next
	return next, nil
}

// Speed returns the current words per minute.
func (s *Session) Speed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

// Position returns the current chunk index.
func (s *Session) Position() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

// NumChunks returns the number of complete chunks in the source.
func (s *Session) NumChunks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.numChunks
}

// Snapshot returns the display fields read under a single lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Position:  s.position,
		NumChunks: s.numChunks,
		ChunkSize: s.chunkSize,
		SpeedWPM:  s.speed,
		Paused:    s.paused,
	}
}

// SaveBookmark writes the absolute token offset of the current position to path.
func (s *Session) SaveBookmark(path string) error {
	s.mu.RLock()
	counter := s.position * s.chunkSize
	s.mu.RUnlock()

	if err := bookmark.Save(path, bookmark.Bookmark{Counter: counter}); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// LoadBookmark restores the position stored at path.
func (s *Session) LoadBookmark(path string) error {
	b, err := bookmark.Load(path)
	if err != nil {
		return &PersistenceError{Op: "load", Path: path, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Counter < 0 || b.Counter > s.numChunks*s.chunkSize {
		return fmt.Errorf("%w: counter %d, source has %d chunks of %d",
			ErrCorruptBookmark, b.Counter, s.numChunks, s.chunkSize)
	}
	s.position = b.Counter / s.chunkSize
	if s.position > s.numChunks-1 {
		s.position = s.numChunks - 1
	}
	s.shown = false
	return nil
}
