package types

// SurfaceInfo describes a target display surface in a JSON-friendly form.
type SurfaceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Size     Size   `json:"size"`
	Default  bool   `json:"default"`
}

// CursorInfo represents the cursor state reported by the engine.
type CursorInfo struct {
	Position Point  `json:"position"`
	Bounds   Size   `json:"bounds"`
	Target   string `json:"target,omitempty"`
	Visible  bool   `json:"visible"`
}
