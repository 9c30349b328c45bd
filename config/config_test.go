package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mobile-next/remotepad/stroke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_ClampsMisconfiguration(t *testing.T) {
	s := Defaults()
	s.Gesture.Sensitivity = 0.1
	s.Gesture.PinchThreshold = -20
	s.Gesture.SwipeThreshold = 0
	s.Gesture.ScrollThreshold = math.NaN()
	s.Gesture.Slop = -1
	s.Stroke.ScrollGain = 0
	s.Cursor.Size = 2
	s.Cursor.Color = "Purple"
	s.Surface.Backend = "vnc"

	got := s.Sanitize()

	assert.Equal(t, 0.5, got.Gesture.Sensitivity)
	assert.Equal(t, 1.0, got.Gesture.PinchThreshold)
	assert.Equal(t, 1.0, got.Gesture.SwipeThreshold)
	assert.Equal(t, Defaults().Gesture.ScrollThreshold, got.Gesture.ScrollThreshold)
	assert.Equal(t, 0.0, got.Gesture.Slop)
	assert.Equal(t, 1.0, got.Stroke.ScrollGain)
	assert.Equal(t, 10, got.Cursor.Size)
	assert.Equal(t, "red", got.Cursor.Color)
	assert.Equal(t, BackendADB, got.Surface.Backend)
}

func TestSanitize_KeepsValidValues(t *testing.T) {
	s := Defaults()
	s.Cursor.Color = " Blue "
	s.Surface.Backend = "WDA"

	got := s.Sanitize()
	assert.Equal(t, "blue", got.Cursor.Color)
	assert.Equal(t, BackendWDA, got.Surface.Backend)
	assert.Equal(t, Defaults().Gesture, got.Gesture)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), store.Get())
}

func TestLoad_ReadsSectionsAndSanitizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	content := `[gesture]
sensitivity = 4
pinch_threshold = 80

[cursor]
size = 400
color = green
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := Load(path)
	require.NoError(t, err)

	s := store.Get()
	assert.Equal(t, 4.0, s.Gesture.Sensitivity)
	assert.Equal(t, 80.0, s.Gesture.PinchThreshold)
	assert.Equal(t, Defaults().Gesture.SwipeThreshold, s.Gesture.SwipeThreshold)
	assert.Equal(t, 150, s.Cursor.Size)
	assert.Equal(t, "green", s.Cursor.Color)
}

func TestLoad_RejectsMalformedNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("[gesture]\nslop = lots\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("[surface]\nbackend = adb\n"), 0o644))

	t.Setenv("REMOTEPAD_BACKEND", "wda")
	t.Setenv("REMOTEPAD_SENSITIVITY", "3.5")

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendWDA, store.Get().Surface.Backend)
	assert.Equal(t, 3.5, store.Get().Gesture.Sensitivity)
}

func TestStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.ini")
	store := NewStore(path)
	store.Update(func(s *Settings) {
		s.Gesture.Sensitivity = 1.5
		s.Cursor.Color = "white"
	})
	require.NoError(t, store.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.Get(), reloaded.Get())
}

func TestStore_Set(t *testing.T) {
	store := NewStore("")

	s, err := store.Set("gesture.swipe_threshold", "75")
	require.NoError(t, err)
	assert.Equal(t, 75.0, s.Gesture.SwipeThreshold)
	assert.Equal(t, 75.0, store.Get().Gesture.SwipeThreshold)

	s, err = store.Set("gesture.sensitivity", "-3")
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.Gesture.Sensitivity)

	_, err = store.Set("gesture.sensitivity", "fast")
	assert.Error(t, err)

	_, err = store.Set("gesture.warp", "1")
	assert.Error(t, err)

	_, err = store.Set("sensitivity", "1")
	assert.Error(t, err)

	// failed sets leave the snapshot untouched
	assert.Equal(t, 0.5, store.Get().Gesture.Sensitivity)
}

func TestStore_SubscribeAndCancel(t *testing.T) {
	store := NewStore("")

	var seen []float64
	cancel := store.Subscribe(func(s Settings) {
		seen = append(seen, s.Gesture.Sensitivity)
	})

	store.Update(func(s *Settings) { s.Gesture.Sensitivity = 3 })
	_, err := store.Set("gesture.sensitivity", "4")
	require.NoError(t, err)

	cancel()
	store.Update(func(s *Settings) { s.Gesture.Sensitivity = 5 })

	assert.Equal(t, []float64{3, 4}, seen)
}

func TestStore_Values(t *testing.T) {
	values, err := NewStore("").Values()
	require.NoError(t, err)

	index := map[string]string{}
	for _, kv := range values {
		index[kv[0]] = kv[1]
	}
	assert.Equal(t, "2.5", index["gesture.sensitivity"])
	assert.Equal(t, "red", index["cursor.color"])
	assert.Equal(t, "adb", index["surface.backend"])
}

func TestSettings_Params(t *testing.T) {
	s := Defaults()
	gp := s.GestureParams()
	assert.Equal(t, s.Gesture.Sensitivity, gp.Sensitivity)
	assert.Equal(t, s.Gesture.Slop, gp.Slop)

	sp := s.StrokeParams()
	assert.Equal(t, s.Stroke.ScrollGain, sp.ScrollGain)
	assert.Equal(t, stroke.DefaultParams(), sp)

	s.Stroke.ZoomStartOffset = 80
	s.Stroke.ZoomInnerOffset = 20
	s.Stroke.ZoomOuterOffset = 250
	sp = s.Sanitize().StrokeParams()
	assert.Equal(t, 80.0, sp.ZoomStartOffset)
	assert.Equal(t, 20.0, sp.ZoomInnerOffset)
	assert.Equal(t, 250.0, sp.ZoomOuterOffset)
}

func TestSanitize_ZoomOffsetsMustBracketStart(t *testing.T) {
	s := Defaults()
	s.Stroke.ZoomStartOffset = 150
	s.Stroke.ZoomInnerOffset = 10
	s.Stroke.ZoomOuterOffset = 120

	got := s.Sanitize()
	assert.Equal(t, Defaults().Stroke, got.Stroke)
}

func TestLoad_ReadsZoomOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	content := "[stroke]\nzoom_start_offset = 60\nzoom_outer_offset = 300\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := Load(path)
	require.NoError(t, err)

	got := store.Get().Stroke
	assert.Equal(t, 60.0, got.ZoomStartOffset)
	assert.Equal(t, Defaults().Stroke.ZoomInnerOffset, got.ZoomInnerOffset)
	assert.Equal(t, 300.0, got.ZoomOuterOffset)
}
