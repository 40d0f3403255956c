package render

import "image/color"

var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// Yellow is the default box colour
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)
