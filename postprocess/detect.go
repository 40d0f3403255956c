package postprocess

import (
	"image"
)

// Box is a bounding box in center form as produced by the darknet region
// layers, in pixel units of the source image
type Box struct {
	// X and Y are the center coordinates of the box
	X float32
	Y float32
	// W and H are the width and height of the box
	W float32
	H float32
}

// Detection is a single raw detection copied out of the darknet detection
// buffer for one image
type Detection struct {
	// Box is the center form bounding box
	Box Box
	// Prob is the per class probability vector, its length is the number of
	// classes the Model was trained with
	Prob []float32
	// Objectness is the confidence that the region contains any object
	Objectness float32
}

// Clone returns a deep copy of the detection so the probability vector can
// be modified independently
func (d Detection) Clone() Detection {

	prob := make([]float32, len(d.Prob))
	copy(prob, d.Prob)

	return Detection{
		Box:        d.Box,
		Prob:       prob,
		Objectness: d.Objectness,
	}
}

// BoxRect are the corner form pixel dimensions of the bounding box of a
// detected object
type BoxRect struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Rect returns the box as an image.Rectangle.  The rectangle is not
// canonicalised or clamped to any image bounds.
func (b BoxRect) Rect() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(b.Left, b.Top),
		Max: image.Pt(b.Right, b.Bottom),
	}
}

// Center converts the corner form box back into center form
func (b BoxRect) Center() Box {
	return Box{
		X: float32(b.Left+b.Right) / 2,
		Y: float32(b.Top+b.Bottom) / 2,
		W: float32(b.Right - b.Left),
		H: float32(b.Bottom - b.Top),
	}
}

// RankedResult defines the attributes of a single class of an object detected
type RankedResult struct {
	// Label is the class name from the dataset metadata
	Label string
	// Class is the index of Label in the dataset metadata
	Class int
	// Confidence is the class probability of the detection, always > 0
	Confidence float32
	// Box is the center form bounding box of the detection
	Box Box
}

// OutputRecord is the per image result handed back to the caller.  The three
// slices are parallel and in descending confidence order.
type OutputRecord struct {
	// Classes are the predicted class labels
	Classes []string
	// Confidences are the class probabilities
	Confidences []float32
	// Boxes are the corner form pixel boxes
	Boxes []BoxRect
}

// NewOutputRecord converts ranked results into an OutputRecord
func NewOutputRecord(results []RankedResult) OutputRecord {

	rec := OutputRecord{
		Classes:     make([]string, 0, len(results)),
		Confidences: make([]float32, 0, len(results)),
		Boxes:       make([]BoxRect, 0, len(results)),
	}

	for _, res := range results {
		rec.Classes = append(rec.Classes, res.Label)
		rec.Confidences = append(rec.Confidences, res.Confidence)
		rec.Boxes = append(rec.Boxes, Corners(res.Box))
	}

	return rec
}

// Len returns the number of detections in the record
func (o OutputRecord) Len() int {
	return len(o.Classes)
}
