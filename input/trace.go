package input

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mobile-next/remotepad/gesture"
)

// TraceEntry is one line of a JSON-lines touch trace.
type TraceEntry struct {
	// At is the offset from the start of the trace in milliseconds.
	At       int64             `json:"t_ms"`
	Kind     string            `json:"kind"`
	Contacts []gesture.Contact `json:"contacts,omitempty"`
}

// Frame converts the entry.
func (e TraceEntry) Frame() (gesture.Frame, error) {
	kind, err := gesture.ParseFrameKind(e.Kind)
	if err != nil {
		return gesture.Frame{}, err
	}
	return gesture.Frame{Kind: kind, Contacts: e.Contacts}, nil
}

// ReadTrace parses a whole trace. Blank lines and lines starting with # are
// skipped.
func ReadTrace(r io.Reader) ([]TraceEntry, error) {
	var entries []TraceEntry

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var e TraceEntry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := gesture.ParseFrameKind(e.Kind); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return entries, nil
}

// TraceSource replays recorded entries. With Realtime set, frames are paced
// by their timestamps; otherwise they are delivered back to back.
type TraceSource struct {
	Entries  []TraceEntry
	Realtime bool
}

func (s *TraceSource) Run(ctx context.Context, handle FrameHandler) error {
	start := time.Now()

	for _, e := range s.Entries {
		if s.Realtime {
			wait := time.Until(start.Add(time.Duration(e.At) * time.Millisecond))
			if wait > 0 {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(wait):
				}
			}
		}
		if ctx.Err() != nil {
			return nil
		}

		f, err := e.Frame()
		if err != nil {
			return err
		}
		handle(f)
	}

	return nil
}

// TraceWriter records frames as JSON lines.
type TraceWriter struct {
	mu    sync.Mutex
	enc   *json.Encoder
	start time.Time
	now   func() time.Time
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{enc: json.NewEncoder(w), now: time.Now}
}

// Write appends one frame, timestamped relative to the first written frame.
func (w *TraceWriter) Write(f gesture.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if w.start.IsZero() {
		w.start = now
	}

	return w.enc.Encode(TraceEntry{
		At:       now.Sub(w.start).Milliseconds(),
		Kind:     f.Kind.String(),
		Contacts: f.Contacts,
	})
}

// Tee returns a handler that records each frame before passing it on.
// Recording errors are reported through onErr and do not stop delivery.
func (w *TraceWriter) Tee(next FrameHandler, onErr func(error)) FrameHandler {
	return func(f gesture.Frame) {
		if err := w.Write(f); err != nil && onErr != nil {
			onErr(err)
		}
		next(f)
	}
}
