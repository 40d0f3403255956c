package darknet

/*
#cgo CFLAGS: -I${SRCDIR}
#include "darknet_api.h"

#define DN_OFFSET(rec, field) \
	static size_t dn_offset_##rec##_##field(void) { return offsetof(rec, field); }

DN_OFFSET(box, x)
DN_OFFSET(box, y)
DN_OFFSET(box, w)
DN_OFFSET(box, h)
DN_OFFSET(detection, bbox)
DN_OFFSET(detection, classes)
DN_OFFSET(detection, prob)
DN_OFFSET(detection, mask)
DN_OFFSET(detection, objectness)
DN_OFFSET(detection, sort_class)
DN_OFFSET(image, w)
DN_OFFSET(image, h)
DN_OFFSET(image, c)
DN_OFFSET(image, data)
*/
import "C"
import (
	"fmt"
	"io"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// rawBox mirrors the C box record
type rawBox struct {
	X float32
	Y float32
	W float32
	H float32
}

// rawDetection mirrors the C detection record.  Detection buffers returned
// by get_network_boxes are read through this type so its layout must match
// the library exactly.
type rawDetection struct {
	BBox    rawBox
	Classes int32
	// Prob points to Classes float values owned by the library
	Prob *float32
	// Mask is only set for instance segmentation networks
	Mask       *float32
	Objectness float32
	SortClass  int32
}

// rawImage mirrors the C image record
type rawImage struct {
	W    int32
	H    int32
	C    int32
	Data *float32
}

// FieldLayout is the offset of one field of a record on both sides of the
// cgo boundary
type FieldLayout struct {
	Record  string
	Field   string
	GoValue uintptr
	CValue  uintptr
}

// Match reports if the Go and C values agree
func (f FieldLayout) Match() bool {
	return f.GoValue == f.CValue
}

// String returns the layout entry in human readable format
func (f FieldLayout) String() string {
	return fmt.Sprintf("%s.%s go=%d c=%d", f.Record, f.Field, f.GoValue, f.CValue)
}

// Layout returns the sizes and field offsets of the Go mirror records next
// to the C declarations
func Layout() []FieldLayout {

	var b rawBox
	var d rawDetection
	var im rawImage

	off := func(v C.size_t) uintptr {
		return uintptr(v)
	}

	return []FieldLayout{
		{"box", "sizeof", unsafe.Sizeof(b), uintptr(C.sizeof_box)},
		{"box", "x", unsafe.Offsetof(b.X), off(C.dn_offset_box_x())},
		{"box", "y", unsafe.Offsetof(b.Y), off(C.dn_offset_box_y())},
		{"box", "w", unsafe.Offsetof(b.W), off(C.dn_offset_box_w())},
		{"box", "h", unsafe.Offsetof(b.H), off(C.dn_offset_box_h())},
		{"detection", "sizeof", unsafe.Sizeof(d), uintptr(C.sizeof_detection)},
		{"detection", "bbox", unsafe.Offsetof(d.BBox), off(C.dn_offset_detection_bbox())},
		{"detection", "classes", unsafe.Offsetof(d.Classes), off(C.dn_offset_detection_classes())},
		{"detection", "prob", unsafe.Offsetof(d.Prob), off(C.dn_offset_detection_prob())},
		{"detection", "mask", unsafe.Offsetof(d.Mask), off(C.dn_offset_detection_mask())},
		{"detection", "objectness", unsafe.Offsetof(d.Objectness), off(C.dn_offset_detection_objectness())},
		{"detection", "sort_class", unsafe.Offsetof(d.SortClass), off(C.dn_offset_detection_sort_class())},
		{"image", "sizeof", unsafe.Sizeof(im), uintptr(C.sizeof_image)},
		{"image", "w", unsafe.Offsetof(im.W), off(C.dn_offset_image_w())},
		{"image", "h", unsafe.Offsetof(im.H), off(C.dn_offset_image_h())},
		{"image", "c", unsafe.Offsetof(im.C), off(C.dn_offset_image_c())},
		{"image", "data", unsafe.Offsetof(im.Data), off(C.dn_offset_image_data())},
	}
}

var (
	layoutOnce sync.Once
	layoutErr  error
)

// ValidateLayout checks the Go mirror records match the C records.  The
// check runs once per process, later calls return the first result.
func ValidateLayout() error {

	layoutOnce.Do(func() {
		for _, f := range Layout() {
			if !f.Match() {
				layoutErr = errors.Wrapf(ErrLayoutMismatch, "%s", f.String())
				return
			}
		}
	})

	return layoutErr
}

// writeLayout prints the record layout table
func writeLayout(w io.Writer) {
	for _, f := range Layout() {
		fmt.Fprintf(w, "  %s\n", f.String())
	}
}
