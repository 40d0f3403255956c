package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-darknet/postprocess"
)

func TestDefault(t *testing.T) {

	c := Default()

	require.NoError(t, c.Validate())
	assert.Equal(t, "input_image/", c.Dataset)
	assert.Equal(t, "output_images/", c.OutputFolder)
	assert.Equal(t, float32(0.5), c.Thresh)
	assert.Equal(t, float32(0.5), c.HierThresh)
	assert.Equal(t, float32(0.45), c.NMS)
	assert.Equal(t, postprocess.NMSByObject, c.NMSMode)
	assert.False(t, c.ResetRNN)
}

func TestLoadEnv(t *testing.T) {

	t.Setenv(EnvCfg, "cfg/yolov3-tiny.cfg")
	t.Setenv(EnvWeights, " yolov3-tiny.weights ")
	t.Setenv(EnvThresh, "0.25")
	t.Setenv(EnvNMS, "0")
	t.Setenv(EnvNMSMode, "sort")
	t.Setenv(EnvRenderer, "IMAGE")
	t.Setenv(EnvLabels, "true")
	t.Setenv(EnvResetRNN, "1")

	c := Default()
	require.NoError(t, c.LoadEnv())

	assert.Equal(t, "cfg/yolov3-tiny.cfg", c.NetworkCfg)
	assert.Equal(t, "yolov3-tiny.weights", c.Weights)
	assert.Equal(t, "cfg/coco.data", c.Data)
	assert.Equal(t, float32(0.25), c.Thresh)
	assert.Equal(t, float32(0.5), c.HierThresh)
	assert.Equal(t, float32(0), c.NMS)
	assert.Equal(t, postprocess.NMSBySortedClass, c.NMSMode)
	assert.Equal(t, RendererImage, c.Renderer)
	assert.True(t, c.Labels)
	assert.True(t, c.ResetRNN)
}

func TestLoadEnvInvalid(t *testing.T) {

	tests := []struct {
		env, value string
	}{
		{EnvThresh, "high"},
		{EnvThresh, "1.5"},
		{EnvNMS, "-0.1"},
		{EnvNMSMode, "greedy"},
		{EnvRenderer, "svg"},
		{EnvLabels, "maybe"},
		{EnvResetRNN, "sometimes"},
	}

	for _, tc := range tests {
		t.Run(tc.env+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.env, tc.value)

			c := Default()
			assert.ErrorIs(t, c.LoadEnv(), ErrInvalidConfig)
		})
	}
}

func TestValidateEmptyPath(t *testing.T) {

	c := Default()
	c.Weights = ""

	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}
