// Package config holds the settings of a detection run.  Defaults match the
// stock YOLOv3 COCO setup and can be overridden with DARKNET_* environment
// variables.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/swdee/go-darknet/postprocess"
)

// ErrInvalidConfig is returned when a setting is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Renderer names
const (
	RendererGoCV  = "gocv"
	RendererImage = "image"
)

// environment variable names
const (
	EnvCfg        = "DARKNET_CFG"
	EnvWeights    = "DARKNET_WEIGHTS"
	EnvData       = "DARKNET_DATA"
	EnvThresh     = "DARKNET_THRESH"
	EnvHierThresh = "DARKNET_HIER_THRESH"
	EnvNMS        = "DARKNET_NMS"
	EnvNMSMode    = "DARKNET_NMS_MODE"
	EnvRenderer   = "DARKNET_RENDERER"
	EnvLabels     = "DARKNET_LABELS"
	EnvResetRNN   = "DARKNET_RESET_RNN"
)

// Config defines the settings of a detection run
type Config struct {
	// Dataset is the directory of input images
	Dataset string
	// OutputFolder is the directory annotated images are written to
	OutputFolder string
	// NetworkCfg is the darknet network configuration file
	NetworkCfg string
	// Weights is the darknet weights file
	Weights string
	// Data is the darknet data file naming the class count and names file
	Data string
	// Thresh is the minimum probability for a class to be kept
	Thresh float32
	// HierThresh is the threshold used when walking hierarchical class trees
	HierThresh float32
	// NMS is the IoU threshold for Non-Maximum Suppression, 0 disables it
	NMS float32
	// NMSMode selects how detections are ranked during suppression
	NMSMode postprocess.NMSMode
	// Renderer is either "gocv" or "image"
	Renderer string
	// Labels enables drawing class labels above boxes
	Labels bool
	// ResetRNN clears recurrent layer state before every image
	ResetRNN bool
	// LineThickness of the drawn boxes
	LineThickness int
}

// Default returns the settings of the stock YOLOv3 COCO run
func Default() Config {
	return Config{
		Dataset:       "input_image/",
		OutputFolder:  "output_images/",
		NetworkCfg:    "cfg/yolov3.cfg",
		Weights:       "yolov3.weights",
		Data:          "cfg/coco.data",
		Thresh:        0.5,
		HierThresh:    0.5,
		NMS:           0.45,
		NMSMode:       postprocess.NMSByObject,
		Renderer:      RendererGoCV,
		Labels:        false,
		LineThickness: 2,
	}
}

// LoadEnv overrides settings from any DARKNET_* environment variables that
// are set
func (c *Config) LoadEnv() error {

	if v, ok := lookup(EnvCfg); ok {
		c.NetworkCfg = v
	}

	if v, ok := lookup(EnvWeights); ok {
		c.Weights = v
	}

	if v, ok := lookup(EnvData); ok {
		c.Data = v
	}

	floats := []struct {
		env string
		dst *float32
	}{
		{EnvThresh, &c.Thresh},
		{EnvHierThresh, &c.HierThresh},
		{EnvNMS, &c.NMS},
	}

	for _, f := range floats {
		v, ok := lookup(f.env)

		if !ok {
			continue
		}

		val, err := cast.ToFloat32E(v)

		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", f.env, v, err)
		}

		*f.dst = val
	}

	if v, ok := lookup(EnvNMSMode); ok {
		mode, err := postprocess.ParseNMSMode(v)

		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s: %v", EnvNMSMode, err)
		}

		c.NMSMode = mode
	}

	if v, ok := lookup(EnvRenderer); ok {
		c.Renderer = strings.ToLower(v)
	}

	bools := []struct {
		env string
		dst *bool
	}{
		{EnvLabels, &c.Labels},
		{EnvResetRNN, &c.ResetRNN},
	}

	for _, b := range bools {
		v, ok := lookup(b.env)

		if !ok {
			continue
		}

		val, err := cast.ToBoolE(v)

		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", b.env, v, err)
		}

		*b.dst = val
	}

	return c.Validate()
}

// Validate checks the settings are usable
func (c Config) Validate() error {

	for name, v := range map[string]float32{
		"thresh":      c.Thresh,
		"hier_thresh": c.HierThresh,
	} {
		if v < 0 || v > 1 {
			return errors.Wrapf(ErrInvalidConfig, "%s %v must be between 0 and 1", name, v)
		}
	}

	if c.NMS < 0 {
		return errors.Wrapf(ErrInvalidConfig, "nms %v must not be negative", c.NMS)
	}

	if c.Renderer != RendererGoCV && c.Renderer != RendererImage {
		return errors.Wrapf(ErrInvalidConfig, "unknown renderer %q", c.Renderer)
	}

	if c.LineThickness < 1 {
		return errors.Wrapf(ErrInvalidConfig, "line thickness %d must be positive", c.LineThickness)
	}

	for name, v := range map[string]string{
		"network cfg": c.NetworkCfg,
		"weights":     c.Weights,
		"data":        c.Data,
		"dataset":     c.Dataset,
		"output":      c.OutputFolder,
	} {
		if v == "" {
			return errors.Wrapf(ErrInvalidConfig, "%s path is empty", name)
		}
	}

	return nil
}

// lookup returns the trimmed value of a non empty environment variable
func lookup(env string) (string, bool) {

	v, ok := os.LookupEnv(env)
	v = strings.TrimSpace(v)

	if !ok || v == "" {
		return "", false
	}

	return v, true
}
