package input

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mobile-next/remotepad/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tapTrace = `# one finger tap
{"t_ms":0,"kind":"begin","contacts":[{"index":0,"x":10,"y":20}]}

{"t_ms":40,"kind":"end","contacts":[{"index":0,"x":10,"y":20}]}
`

func TestReadTrace(t *testing.T) {
	entries, err := ReadTrace(strings.NewReader(tapTrace))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	f, err := entries[1].Frame()
	require.NoError(t, err)
	assert.Equal(t, gesture.Frame{Kind: gesture.End, Contacts: []gesture.Contact{{Index: 0, X: 10, Y: 20}}}, f)
	assert.Equal(t, int64(40), entries[1].At)
}

func TestReadTrace_Errors(t *testing.T) {
	_, err := ReadTrace(strings.NewReader(`{"kind":"hover"}`))
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadTrace(strings.NewReader("{\"kind\":\"begin\"}\nnot json"))
	assert.ErrorContains(t, err, "line 2")
}

func TestTraceSource_Run(t *testing.T) {
	entries, err := ReadTrace(strings.NewReader(tapTrace))
	require.NoError(t, err)

	var kinds []gesture.FrameKind
	src := &TraceSource{Entries: entries}
	require.NoError(t, src.Run(context.Background(), func(f gesture.Frame) {
		kinds = append(kinds, f.Kind)
	}))
	assert.Equal(t, []gesture.FrameKind{gesture.Begin, gesture.End}, kinds)
}

func TestTraceSource_StopsOnCancel(t *testing.T) {
	src := &TraceSource{
		Entries:  []TraceEntry{{At: 0, Kind: "begin"}, {At: 60_000, Kind: "end"}},
		Realtime: true,
	}

	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err := src.Run(ctx, func(gesture.Frame) {
		count++
		cancel()
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTraceWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewTraceWriter(&buf)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(25 * time.Millisecond)}
	w.now = func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}

	var delivered int
	handle := w.Tee(func(gesture.Frame) { delivered++ }, nil)
	handle(gesture.Frame{Kind: gesture.Begin, Contacts: []gesture.Contact{{X: 1, Y: 2}}})
	handle(gesture.Frame{Kind: gesture.Cancel})

	assert.Equal(t, 2, delivered)

	entries, err := ReadTrace(&buf)
	require.NoError(t, err)
	assert.Equal(t, []TraceEntry{
		{At: 0, Kind: "begin", Contacts: []gesture.Contact{{X: 1, Y: 2}}},
		{At: 25, Kind: "cancel"},
	}, entries)
}
