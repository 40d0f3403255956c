package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the text label to the bounding box
	Alignment Alignment
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     Black,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Left,
	}
}

// Options defines how detections are drawn onto an image
type Options struct {
	// Color of the bounding box lines and label background
	Color color.RGBA
	// LineThickness of the bounding box in pixels
	LineThickness int
	// Labels enables drawing "<class> <confidence>" above each box
	Labels bool
	// Font used for labels
	Font Font
}

// DefaultOptions returns yellow boxes two pixels thick without labels
func DefaultOptions() Options {
	return Options{
		Color:         Yellow,
		LineThickness: 2,
		Labels:        false,
		Font:          DefaultFont(),
	}
}
