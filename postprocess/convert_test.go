package postprocess

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorners(t *testing.T) {

	tests := []struct {
		name string
		box  Box
		want BoxRect
	}{
		{"whole pixels", Box{X: 100, Y: 100, W: 40, H: 60}, BoxRect{Left: 80, Top: 70, Right: 120, Bottom: 130}},
		{"truncates", Box{X: 10.7, Y: 5.2, W: 3, H: 3}, BoxRect{Left: 9, Top: 3, Right: 12, Bottom: 6}},
		{"truncates toward zero", Box{X: 0, Y: 0, W: 3, H: 3}, BoxRect{Left: -1, Top: -1, Right: 1, Bottom: 1}},
		{"not clamped", Box{X: 5, Y: 5, W: 100, H: 100}, BoxRect{Left: -45, Top: -45, Right: 55, Bottom: 55}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Corners(tc.box))
		})
	}
}

func TestCornersRoundTrip(t *testing.T) {

	for cx := float32(50); cx < 300; cx += 13.37 {
		for w := float32(1.5); w <= 100; w += 7.3 {

			box := Box{X: cx, Y: cx + 1.25, W: w, H: w + 0.5}
			back := Corners(box).Center()

			assert.LessOrEqual(t, math.Abs(float64(back.X-box.X)), 1.0, "cx=%f w=%f", cx, w)
			assert.LessOrEqual(t, math.Abs(float64(back.Y-box.Y)), 1.0, "cy=%f h=%f", box.Y, box.H)
			assert.LessOrEqual(t, math.Abs(float64(back.W-box.W)), 1.0, "cx=%f w=%f", cx, w)
			assert.LessOrEqual(t, math.Abs(float64(back.H-box.H)), 1.0, "cy=%f h=%f", box.Y, box.H)
		}
	}
}

func TestBoxRectRect(t *testing.T) {

	r := BoxRect{Left: 80, Top: 70, Right: 120, Bottom: 130}

	assert.Equal(t, image.Rect(80, 70, 120, 130), r.Rect())
	assert.Equal(t, Box{X: 100, Y: 100, W: 40, H: 60}, r.Center())
}
