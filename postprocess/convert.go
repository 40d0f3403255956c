package postprocess

// Corners converts a center form box to corner form pixel coordinates.
// Values are truncated toward zero, not rounded, and are not clamped to the
// image bounds so boxes extending past the image edge are passed through.
func Corners(b Box) BoxRect {

	x := float64(b.X)
	y := float64(b.Y)
	w := float64(b.W)
	h := float64(b.H)

	return BoxRect{
		Left:   int(x - w/2),
		Top:    int(y - h/2),
		Right:  int(x + w/2),
		Bottom: int(y + h/2),
	}
}
