package postprocess

// overlap returns the length of the overlap of two 1D segments given by
// their center and length.  The result is negative when they do not meet.
func overlap(x1, w1, x2, w2 float32) float32 {

	l1 := x1 - w1/2
	l2 := x2 - w2/2
	left := max(l1, l2)

	r1 := x1 + w1/2
	r2 := x2 + w2/2
	right := min(r1, r2)

	return right - left
}

// Intersection returns the overlapping area of two boxes
func (b Box) Intersection(o Box) float32 {

	w := overlap(b.X, b.W, o.X, o.W)
	h := overlap(b.Y, b.H, o.Y, o.H)

	if w < 0 || h < 0 {
		return 0
	}

	return w * h
}

// Union returns the combined area covered by two boxes
func (b Box) Union(o Box) float32 {
	return b.W*b.H + o.W*o.H - b.Intersection(o)
}

// IoU works out the Intersection over Union value of two boxes
func (b Box) IoU(o Box) float32 {

	union := b.Union(o)

	if union <= 0 {
		return 0
	}

	return b.Intersection(o) / union
}
