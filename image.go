package darknet

/*
#cgo CFLAGS: -I${SRCDIR}
#include "darknet_api.h"
#include <stdlib.h>
*/
import "C"
import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is an image loaded by darknet into its planar float format
type Image struct {
	img C.image
	// freed is a flag to indicate if the C image data has been released
	freed bool
	sync.Mutex
}

// LoadImageColor wraps C.load_image_color and loads a 3 channel image from
// file.  When w and h are non zero the image is resized to those dimensions,
// pass 0 for both to keep the original size.  The returned image must be
// released with Free.
func LoadImageColor(file string, w, h int) (*Image, error) {

	if err := checkFile(file); err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "%v", err)
	}

	// darknet exits the process on a file it can not decode, so make sure
	// the header is readable first
	if err := decodeConfig(file); err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "%v", err)
	}

	cFile := C.CString(file)
	defer C.free(unsafe.Pointer(cFile))

	img := C.load_image_color(cFile, C.int(w), C.int(h))

	if img.data == nil {
		return nil, errors.Wrapf(ErrImageLoad, "C.load_image_color returned no data for %s", file)
	}

	return &Image{img: img}, nil
}

// Free wraps C.free_image and releases the image data.  Calling Free more
// than once is safe.
func (i *Image) Free() {
	i.Lock()
	defer i.Unlock()

	if i.freed {
		return
	}

	i.freed = true
	C.free_image(i.img)
	i.img.data = nil
}

// Width returns the image width in pixels
func (i *Image) Width() int {
	return int(i.img.w)
}

// Height returns the image height in pixels
func (i *Image) Height() int {
	return int(i.img.h)
}

// Channels returns the number of colour channels
func (i *Image) Channels() int {
	return int(i.img.c)
}

// headerMagic are the leading bytes of formats darknet can load but Go has
// no decoder for
var headerMagic = [][]byte{
	[]byte("P1"), []byte("P2"), []byte("P3"),
	[]byte("P4"), []byte("P5"), []byte("P6"),
	[]byte("8BPS"),
	[]byte("#?RADIANCE"), []byte("#?RGBE"),
	{0x53, 0x80, 0xf6, 0x34},
}

// tgaImageTypes are the TGA image types stb_image accepts
var tgaImageTypes = map[byte]bool{1: true, 2: true, 3: true, 9: true, 10: true, 11: true}

// decodeConfig reads the image header to check the format is one darknet can
// load.  Formats the image package can decode are fully parsed, the rest are
// matched by their leading bytes.
func decodeConfig(file string) error {

	f, err := os.Open(file)

	if err != nil {
		return errors.Wrapf(err, "error opening %s", file)
	}

	defer f.Close()

	_, _, err = image.DecodeConfig(f)

	if err == nil {
		return nil
	}

	if !errors.Is(err, image.ErrFormat) {
		return errors.Wrapf(err, "error decoding %s", file)
	}

	header := make([]byte, 18)

	if _, err := f.ReadAt(header, 0); err != nil && err != io.EOF {
		return errors.Wrapf(err, "error reading %s", file)
	}

	if knownHeader(header, filepath.Ext(file)) {
		return nil
	}

	return errors.Wrapf(image.ErrFormat, "error decoding %s", file)
}

// knownHeader reports if the header matches a format darknet decodes.  TGA
// has no magic number so it is only checked for files with a .tga extension.
func knownHeader(header []byte, ext string) bool {

	for _, magic := range headerMagic {
		if bytes.HasPrefix(header, magic) {
			return true
		}
	}

	if strings.EqualFold(ext, ".tga") && len(header) >= 3 {
		return header[1] <= 1 && tgaImageTypes[header[2]]
	}

	return false
}
