package darknet

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo LDFLAGS: -ldarknet -lm
#include "darknet_api.h"
#include <stdlib.h>
*/
import "C"
import (
	"os"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// Network defines a darknet network instance loaded from a config and
// weights file
type Network struct {
	net *C.network
	// closed is a flag to indicate if the C network has been released
	closed bool
	sync.Mutex
}

// LoadNetwork wraps C.load_network.  Provide the full path and filename of
// the network config and weights files.  When clear is true the number of
// images the weights were trained on is reset.
func LoadNetwork(cfgFile, weightsFile string, clear bool) (*Network, error) {

	if err := ValidateLayout(); err != nil {
		return nil, err
	}

	// darknet exits the process on a missing file, so check in Go first
	for _, file := range []string{cfgFile, weightsFile} {
		if err := checkFile(file); err != nil {
			return nil, errors.Wrapf(ErrNetworkLoad, "%v", err)
		}
	}

	cCfg := C.CString(cfgFile)
	defer C.free(unsafe.Pointer(cCfg))

	cWeights := C.CString(weightsFile)
	defer C.free(unsafe.Pointer(cWeights))

	cClear := C.int(0)

	if clear {
		cClear = 1
	}

	net := C.load_network(cCfg, cWeights, cClear)

	if net == nil {
		return nil, errors.Wrapf(ErrNetworkLoad, "C.load_network returned nil for %s, %s",
			cfgFile, weightsFile)
	}

	return &Network{net: net}, nil
}

// Close wraps C.free_network and releases the network.  Calling Close more
// than once is safe.
func (n *Network) Close() {
	n.Lock()
	defer n.Unlock()

	if n.closed {
		return
	}

	n.closed = true

	if n.net != nil {
		C.free_network(n.net)
	}

	n.net = nil
}

// Width returns the input width of the network, or 0 after Close
func (n *Network) Width() int {
	n.Lock()
	defer n.Unlock()

	if n.net == nil {
		return 0
	}

	return int(C.network_width(n.net))
}

// Height returns the input height of the network, or 0 after Close
func (n *Network) Height() int {
	n.Lock()
	defer n.Unlock()

	if n.net == nil {
		return 0
	}

	return int(C.network_height(n.net))
}

// ResetRNN wraps C.reset_rnn and clears the state of recurrent layers so the
// next prediction does not depend on earlier images
func (n *Network) ResetRNN() error {
	n.Lock()
	defer n.Unlock()

	if n.net == nil {
		return ErrClosed
	}

	C.reset_rnn(n.net)

	return nil
}

// predict wraps C.network_predict_image.  The returned pointer is the output
// of the last layer and is owned by the network.
func (n *Network) predict(img *Image) (*C.float, error) {

	if n.net == nil {
		return nil, ErrClosed
	}

	out := C.network_predict_image(n.net, img.img)

	if out == nil {
		return nil, errors.Wrap(ErrPredict, "C.network_predict_image returned nil")
	}

	return out, nil
}

// Predict runs the network on the image and returns the first count values
// of the output layer, copied into Go memory
func (n *Network) Predict(img *Image, count int) ([]float32, error) {

	out, err := n.predict(img)

	if err != nil {
		return nil, err
	}

	scores := make([]float32, count)
	copy(scores, unsafe.Slice((*float32)(unsafe.Pointer(out)), count))

	return scores, nil
}

// NetworkBoxes wraps C.get_network_boxes and returns the detections of the
// last prediction scaled to an image of w x h pixels.  When relative is true
// box coordinates are left relative to the image size.  The returned buffer
// must be released with Free.
func (n *Network) NetworkBoxes(w, h int, thresh, hier float32, relative bool) (*Detections, error) {

	if n.net == nil {
		return nil, ErrClosed
	}

	cRelative := C.int(0)

	if relative {
		cRelative = 1
	}

	var num C.int

	dets := C.get_network_boxes(n.net, C.int(w), C.int(h), C.float(thresh), C.float(hier),
		nil, cRelative, &num)

	if dets == nil && num > 0 {
		return nil, errors.Wrap(ErrPredict, "C.get_network_boxes returned nil")
	}

	return &Detections{
		dets: dets,
		num:  int(num),
	}, nil
}

// checkFile returns an error if the file does not exist or is a directory
func checkFile(file string) error {

	info, err := os.Stat(file)

	if err != nil {
		return errors.Wrapf(err, "file %s", file)
	}

	if info.IsDir() {
		return errors.Errorf("file %s is a directory", file)
	}

	return nil
}
