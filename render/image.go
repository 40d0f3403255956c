package render

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/swdee/go-darknet/postprocess"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality matches the OpenCV imwrite default
const DefaultJPEGQuality = 95

// Image annotates images in pure Go without requiring OpenCV.  Input can be
// any format registered with the image package, output is always JPEG.
type Image struct {
	Options Options
	// Quality is the JPEG encoding quality 1-100
	Quality int
}

// NewImage returns an Image annotator using the given drawing options
func NewImage(opts Options) *Image {
	return &Image{
		Options: opts,
		Quality: DefaultJPEGQuality,
	}
}

// Annotate reads the src image, draws the boxes of rec on it and writes the
// result to dst as JPEG
func (a *Image) Annotate(src, dst string, rec postprocess.OutputRecord) error {

	in, err := os.Open(src)

	if err != nil {
		return errors.Wrapf(ErrRead, "%s: %v", src, err)
	}

	defer in.Close()

	decoded, _, err := image.Decode(in)

	if err != nil {
		return errors.Wrapf(ErrRead, "%s: %v", src, err)
	}

	bounds := decoded.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), decoded, bounds.Min, draw.Src)

	Draw(canvas, rec, a.Options)

	out, err := os.Create(dst)

	if err != nil {
		return errors.Wrapf(ErrWrite, "%s: %v", dst, err)
	}

	err = jpeg.Encode(out, canvas, &jpeg.Options{Quality: a.Quality})

	if cerr := out.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return errors.Wrapf(ErrWrite, "%s: %v", dst, err)
	}

	return nil
}

// Draw renders the bounding boxes of the output record onto img.  Lines
// outside the image bounds are clipped.
func Draw(img draw.Image, rec postprocess.OutputRecord, opts Options) {

	thickness := max(opts.LineThickness, 1)
	// spread the line either side of the box edge like OpenCV does
	lo := -(thickness / 2)
	hi := lo + thickness

	for _, box := range rec.Boxes {
		for d := lo; d < hi; d++ {
			hLine(img, box.Left+lo, box.Right+hi-1, box.Top+d, opts.Color)
			hLine(img, box.Left+lo, box.Right+hi-1, box.Bottom+d, opts.Color)
			vLine(img, box.Left+d, box.Top+lo, box.Bottom+hi-1, opts.Color)
			vLine(img, box.Right+d, box.Top+lo, box.Bottom+hi-1, opts.Color)
		}
	}

	if !opts.Labels {
		return
	}

	face := basicfont.Face7x13
	pad := opts.Font

	for i, box := range rec.Boxes {

		text := labelText(rec, i)
		width := font.MeasureString(face, text).Ceil()
		height := face.Metrics().Height.Ceil()

		bg := image.Rect(box.Left+lo, box.Top-height-pad.TopPad-pad.BottomPad,
			box.Left+width+pad.LeftPad+pad.RightPad, box.Top)
		draw.Draw(img, bg, image.NewUniform(opts.Color), image.Point{}, draw.Src)

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(pad.Color),
			Face: face,
			Dot:  fixed.P(box.Left+pad.LeftPad, box.Top-pad.BottomPad),
		}
		d.DrawString(text)
	}
}

// hLine draws a horizontal line from x0 to x1 inclusive
func hLine(img draw.Image, x0, x1, y int, clr color.Color) {

	b := img.Bounds()

	if y < b.Min.Y || y >= b.Max.Y {
		return
	}

	for x := max(x0, b.Min.X); x <= min(x1, b.Max.X-1); x++ {
		img.Set(x, y, clr)
	}
}

// vLine draws a vertical line from y0 to y1 inclusive
func vLine(img draw.Image, x, y0, y1 int, clr color.Color) {

	b := img.Bounds()

	if x < b.Min.X || x >= b.Max.X {
		return
	}

	for y := max(y0, b.Min.Y); y <= min(y1, b.Max.Y-1); y++ {
		img.Set(x, y, clr)
	}
}
