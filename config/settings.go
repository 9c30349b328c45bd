// Package config holds the user-tunable settings: gesture thresholds, stroke
// gains, cursor appearance and the target surface backend.
package config

import (
	"math"
	"strings"

	"github.com/mobile-next/remotepad/gesture"
	"github.com/mobile-next/remotepad/stroke"
)

const (
	BackendADB    = "adb"
	BackendWDA    = "wda"
	BackendStatic = "static"
)

// CursorColors are the glyph colors the presentation layer can render.
var CursorColors = []string{"red", "blue", "green", "white"}

type GestureSettings struct {
	Sensitivity      float64 `ini:"sensitivity"`
	PinchThreshold   float64 `ini:"pinch_threshold"`
	SwipeThreshold   float64 `ini:"swipe_threshold"`
	SwipeVerticalCap float64 `ini:"swipe_vertical_cap"`
	ScrollThreshold  float64 `ini:"scroll_threshold"`
	Slop             float64 `ini:"slop"`
}

type StrokeSettings struct {
	ScrollGain      float64 `ini:"scroll_gain"`
	SwipeLength     float64 `ini:"swipe_length"`
	ZoomStartOffset float64 `ini:"zoom_start_offset"`
	ZoomInnerOffset float64 `ini:"zoom_inner_offset"`
	ZoomOuterOffset float64 `ini:"zoom_outer_offset"`
}

type CursorSettings struct {
	Size   int     `ini:"size"`
	Color  string  `ini:"color"`
	StartX float64 `ini:"start_x"`
	StartY float64 `ini:"start_y"`
}

type SurfaceSettings struct {
	Backend    string `ini:"backend"`
	ADBSerial  string `ini:"adb_serial"`
	WDAAddress string `ini:"wda_address"`
	Width      int    `ini:"width"`
	Height     int    `ini:"height"`
}

// Settings is a full snapshot; it is passed by value so a frame always sees
// one consistent set of thresholds.
type Settings struct {
	Gesture GestureSettings
	Stroke  StrokeSettings
	Cursor  CursorSettings
	Surface SurfaceSettings
}

func Defaults() Settings {
	sp := stroke.DefaultParams()
	return Settings{
		Gesture: GestureSettings{
			Sensitivity:      2.5,
			PinchThreshold:   50,
			SwipeThreshold:   60,
			SwipeVerticalCap: 40,
			ScrollThreshold:  8,
			Slop:             8,
		},
		Stroke: StrokeSettings{
			ScrollGain:      sp.ScrollGain,
			SwipeLength:     sp.SwipeLength,
			ZoomStartOffset: sp.ZoomStartOffset,
			ZoomInnerOffset: sp.ZoomInnerOffset,
			ZoomOuterOffset: sp.ZoomOuterOffset,
		},
		Cursor: CursorSettings{
			Size:   40,
			Color:  "red",
			StartX: 500,
			StartY: 500,
		},
		Surface: SurfaceSettings{
			Backend:    BackendADB,
			WDAAddress: "localhost:8100",
			Width:      1920,
			Height:     1080,
		},
	}
}

// Sanitize clamps every value to a usable range. The classifier relies on
// this and never validates thresholds itself.
func (s Settings) Sanitize() Settings {
	d := Defaults()

	s.Gesture.Sensitivity = clampFloat(s.Gesture.Sensitivity, 0.5, 10, d.Gesture.Sensitivity)
	s.Gesture.PinchThreshold = clampFloat(s.Gesture.PinchThreshold, 1, math.MaxFloat64, d.Gesture.PinchThreshold)
	s.Gesture.SwipeThreshold = clampFloat(s.Gesture.SwipeThreshold, 1, math.MaxFloat64, d.Gesture.SwipeThreshold)
	s.Gesture.SwipeVerticalCap = clampFloat(s.Gesture.SwipeVerticalCap, 1, math.MaxFloat64, d.Gesture.SwipeVerticalCap)
	s.Gesture.ScrollThreshold = clampFloat(s.Gesture.ScrollThreshold, 1, math.MaxFloat64, d.Gesture.ScrollThreshold)
	s.Gesture.Slop = clampFloat(s.Gesture.Slop, 0, math.MaxFloat64, d.Gesture.Slop)

	s.Stroke.ScrollGain = clampFloat(s.Stroke.ScrollGain, 1, 100, d.Stroke.ScrollGain)
	s.Stroke.SwipeLength = clampFloat(s.Stroke.SwipeLength, 10, math.MaxFloat64, d.Stroke.SwipeLength)
	s.Stroke.ZoomStartOffset = clampFloat(s.Stroke.ZoomStartOffset, 1, math.MaxFloat64, d.Stroke.ZoomStartOffset)
	s.Stroke.ZoomInnerOffset = clampFloat(s.Stroke.ZoomInnerOffset, 0, math.MaxFloat64, d.Stroke.ZoomInnerOffset)
	s.Stroke.ZoomOuterOffset = clampFloat(s.Stroke.ZoomOuterOffset, 1, math.MaxFloat64, d.Stroke.ZoomOuterOffset)
	// zoom strokes must pinch inward and spread outward from the start offset
	if s.Stroke.ZoomInnerOffset >= s.Stroke.ZoomStartOffset || s.Stroke.ZoomOuterOffset <= s.Stroke.ZoomStartOffset {
		s.Stroke.ZoomStartOffset = d.Stroke.ZoomStartOffset
		s.Stroke.ZoomInnerOffset = d.Stroke.ZoomInnerOffset
		s.Stroke.ZoomOuterOffset = d.Stroke.ZoomOuterOffset
	}

	if s.Cursor.Size < 10 {
		s.Cursor.Size = 10
	}
	if s.Cursor.Size > 150 {
		s.Cursor.Size = 150
	}
	s.Cursor.Color = strings.ToLower(strings.TrimSpace(s.Cursor.Color))
	if !isCursorColor(s.Cursor.Color) {
		s.Cursor.Color = d.Cursor.Color
	}
	s.Cursor.StartX = clampFloat(s.Cursor.StartX, 0, math.MaxFloat64, d.Cursor.StartX)
	s.Cursor.StartY = clampFloat(s.Cursor.StartY, 0, math.MaxFloat64, d.Cursor.StartY)

	s.Surface.Backend = strings.ToLower(strings.TrimSpace(s.Surface.Backend))
	switch s.Surface.Backend {
	case BackendADB, BackendWDA, BackendStatic:
	default:
		s.Surface.Backend = d.Surface.Backend
	}
	if s.Surface.WDAAddress == "" {
		s.Surface.WDAAddress = d.Surface.WDAAddress
	}
	if s.Surface.Width < 0 {
		s.Surface.Width = 0
	}
	if s.Surface.Height < 0 {
		s.Surface.Height = 0
	}

	return s
}

// GestureParams returns the classifier thresholds.
func (s Settings) GestureParams() gesture.Params {
	return gesture.Params{
		Sensitivity:      s.Gesture.Sensitivity,
		PinchThreshold:   s.Gesture.PinchThreshold,
		SwipeThreshold:   s.Gesture.SwipeThreshold,
		SwipeVerticalCap: s.Gesture.SwipeVerticalCap,
		ScrollThreshold:  s.Gesture.ScrollThreshold,
		Slop:             s.Gesture.Slop,
	}
}

// StrokeParams returns the synthesizer shape.
func (s Settings) StrokeParams() stroke.Params {
	return stroke.Params{
		ScrollGain:      s.Stroke.ScrollGain,
		ZoomStartOffset: s.Stroke.ZoomStartOffset,
		ZoomInnerOffset: s.Stroke.ZoomInnerOffset,
		ZoomOuterOffset: s.Stroke.ZoomOuterOffset,
		SwipeLength:     s.Stroke.SwipeLength,
	}
}

func isCursorColor(c string) bool {
	for _, known := range CursorColors {
		if c == known {
			return true
		}
	}
	return false
}

func clampFloat(v, min, max, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
