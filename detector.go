package darknet

import (
	"github.com/pkg/errors"
	"github.com/swdee/go-darknet/postprocess"
)

// Params are the thresholds used when decoding network output
type Params struct {
	// Thresh is the minimum probability for a class to be kept
	Thresh float32
	// HierThresh is the threshold used by hierarchical (tree) classifiers
	HierThresh float32
	// NMS is the IoU threshold for non-max suppression, 0 disables it
	NMS float32
	// NMSMode selects the score NMS ranks detections by
	NMSMode postprocess.NMSMode
	// ResetRNN clears recurrent layer state before each image so results do
	// not depend on the images processed before it
	ResetRNN bool
}

// DefaultParams returns the thresholds darknet's detector uses by default
func DefaultParams() Params {
	return Params{
		Thresh:     0.5,
		HierThresh: 0.5,
		NMS:        0.45,
		NMSMode:    postprocess.NMSByObject,
	}
}

// Detector runs a network and decodes its output into ranked results
type Detector struct {
	net    *Network
	meta   *Metadata
	params Params
}

// NewDetector returns a Detector for the network and its class metadata
func NewDetector(net *Network, meta *Metadata, params Params) *Detector {
	return &Detector{
		net:    net,
		meta:   meta,
		params: params,
	}
}

// Params returns the thresholds the detector was created with
func (d *Detector) Params() Params {
	return d.params
}

// Detect runs object detection on the image file and returns the results
// sorted by descending confidence.  Box coordinates are in pixels of the
// source image in center form.
func (d *Detector) Detect(file string) ([]postprocess.RankedResult, error) {

	img, err := LoadImageColor(file, 0, 0)

	if err != nil {
		return nil, err
	}

	defer img.Free()

	if d.params.ResetRNN {
		if err := d.net.ResetRNN(); err != nil {
			return nil, err
		}
	}

	if _, err := d.net.predict(img); err != nil {
		return nil, errors.Wrapf(err, "error predicting %s", file)
	}

	boxes, err := d.net.NetworkBoxes(img.Width(), img.Height(),
		d.params.Thresh, d.params.HierThresh, false)

	if err != nil {
		return nil, errors.Wrapf(err, "error getting boxes for %s", file)
	}

	defer boxes.Free()

	dets, err := boxes.Copy(d.meta.Classes)

	if err != nil {
		return nil, errors.Wrapf(err, "error reading boxes for %s", file)
	}

	if d.params.NMS > 0 {
		postprocess.NMS(dets, d.meta.Classes, d.params.NMS, d.params.NMSMode)
	}

	return postprocess.Extract(dets, d.meta.Names)
}

// Classify runs a classifier network on the image file and returns every
// class score sorted by descending score
func (d *Detector) Classify(file string) ([]postprocess.Classification, error) {

	img, err := LoadImageColor(file, 0, 0)

	if err != nil {
		return nil, err
	}

	defer img.Free()

	scores, err := d.net.Predict(img, d.meta.Classes)

	if err != nil {
		return nil, errors.Wrapf(err, "error predicting %s", file)
	}

	return postprocess.RankClasses(scores, d.meta.Names)
}
