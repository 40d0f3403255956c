package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-darknet/postprocess"
	"gocv.io/x/gocv"
)

// boxLabel holds a precalculated label so all labels can be drawn after the
// boxes
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// labelText formats the label drawn for detection i of the record
func labelText(rec postprocess.OutputRecord, i int) string {
	return fmt.Sprintf("%s %.2f", rec.Classes[i], rec.Confidences[i])
}

// DetectionBoxes renders the bounding boxes of the output record onto img
func DetectionBoxes(img *gocv.Mat, rec postprocess.OutputRecord, opts Options) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0)
	font := opts.Font

	for i, box := range rec.Boxes {

		// draw rectangle around detected object
		gocv.Rectangle(img, box.Rect(), opts.Color, opts.LineThickness)

		if !opts.Labels {
			continue
		}

		// create text for label
		text := labelText(rec, i)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// Calculate the alignment of text label
		var centerX int

		switch font.Alignment {
		case Center:
			centerX = (box.Left + box.Right) / 2

		case Right:
			centerX = box.Right - (textSize.X / 2) - font.RightPad + (opts.LineThickness / 2)

		case Left:
			fallthrough
		default:
			centerX = box.Left + (textSize.X / 2) + font.LeftPad - (opts.LineThickness / 2)
		}

		// Adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, box.Top-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			box.Top-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, box.Top)

		boxLabels = append(boxLabels, boxLabel{
			rect:    bRect,
			clr:     opts.Color,
			text:    text,
			textPos: labelPosition,
		})
	}

	// draw labels last so they are the top most layer and are not crossed by
	// the lines of neighbouring boxes
	for _, box := range boxLabels {
		gocv.Rectangle(img, box.rect, box.clr, -1)

		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
