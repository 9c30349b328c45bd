package stroke

// IsPress reports whether the stroke stays in place, i.e. a tap or long press.
func (s Stroke) IsPress() bool {
	return s.Start == s.End
}
