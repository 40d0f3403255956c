package darknet

/*
#cgo CFLAGS: -I${SRCDIR}
#include "darknet_api.h"
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/swdee/go-darknet/postprocess"
)

// Detections holds the detection buffer returned by get_network_boxes.  The
// buffer is owned by the C library until Free is called.
type Detections struct {
	dets *C.detection
	num  int
	// freed is a flag to indicate if the C buffer has been released
	freed bool
	sync.Mutex
}

// Len returns the number of detections in the buffer
func (d *Detections) Len() int {
	return d.num
}

// Copy reads the buffer into Go memory.  The classes parameter is the number
// of class probabilities held per detection, it comes from the metadata and
// is used in place of the per record count.
func (d *Detections) Copy(classes int) ([]postprocess.Detection, error) {
	d.Lock()
	defer d.Unlock()

	if d.freed {
		return nil, errors.New("detections have been freed")
	}

	if classes <= 0 {
		return nil, errors.Errorf("invalid class count %d", classes)
	}

	if d.num == 0 || d.dets == nil {
		return []postprocess.Detection{}, nil
	}

	raw := unsafe.Slice((*rawDetection)(unsafe.Pointer(d.dets)), d.num)
	out := make([]postprocess.Detection, d.num)

	for i, r := range raw {
		prob := make([]float32, classes)

		if r.Prob != nil {
			copy(prob, unsafe.Slice(r.Prob, classes))
		}

		out[i] = postprocess.Detection{
			Box: postprocess.Box{
				X: r.BBox.X,
				Y: r.BBox.Y,
				W: r.BBox.W,
				H: r.BBox.H,
			},
			Prob:       prob,
			Objectness: r.Objectness,
		}
	}

	return out, nil
}

// Free wraps C.free_detections and releases the buffer.  Calling Free more
// than once is safe.
func (d *Detections) Free() {
	d.Lock()
	defer d.Unlock()

	if d.freed {
		return
	}

	d.freed = true

	if d.dets != nil {
		C.free_detections(d.dets, C.int(d.num))
	}

	d.dets = nil
}
