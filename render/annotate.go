package render

import (
	"github.com/pkg/errors"
	"github.com/swdee/go-darknet/postprocess"
	"gocv.io/x/gocv"
)

var (
	// ErrRead is returned when the source image can not be read or decoded
	ErrRead = errors.New("error reading image")
	// ErrWrite is returned when the annotated image can not be written
	ErrWrite = errors.New("error writing image")
)

// GoCV annotates images using OpenCV for decoding, drawing and encoding.  The
// output format is chosen by OpenCV from the destination file extension.
type GoCV struct {
	Options Options
}

// NewGoCV returns a GoCV annotator using the given drawing options
func NewGoCV(opts Options) *GoCV {
	return &GoCV{
		Options: opts,
	}
}

// Annotate reads the src image, draws the boxes of rec on it and writes the
// result to dst
func (g *GoCV) Annotate(src, dst string, rec postprocess.OutputRecord) error {

	img := gocv.IMRead(src, gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		return errors.Wrapf(ErrRead, "%s", src)
	}

	DetectionBoxes(&img, rec, g.Options)

	if ok := gocv.IMWrite(dst, img); !ok {
		return errors.Wrapf(ErrWrite, "%s", dst)
	}

	return nil
}
