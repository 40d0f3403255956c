package darknet

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-darknet/postprocess"
	"golang.org/x/image/tiff"
)

func TestValidateLayout(t *testing.T) {

	require.NoError(t, ValidateLayout())

	// second call returns the cached result
	require.NoError(t, ValidateLayout())

	for _, f := range Layout() {
		assert.True(t, f.Match(), f.String())
	}
}

func TestLayoutCoversRecords(t *testing.T) {

	fields := make(map[string]bool)

	for _, f := range Layout() {
		fields[f.Record+"."+f.Field] = true
	}

	for _, want := range []string{
		"box.sizeof", "detection.sizeof", "image.sizeof",
		"detection.prob", "detection.objectness", "image.data",
	} {
		assert.True(t, fields[want], want)
	}
}

func TestFieldLayoutString(t *testing.T) {

	f := FieldLayout{Record: "detection", Field: "prob", GoValue: 24, CValue: 24}

	assert.Equal(t, "detection.prob go=24 c=24", f.String())
	assert.True(t, f.Match())

	f.CValue = 20
	assert.False(t, f.Match())
}

func TestWriteLayout(t *testing.T) {

	var buf bytes.Buffer
	writeLayout(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(Layout()))
	assert.Contains(t, buf.String(), "box.x go=0 c=0")
}

func TestDetectionsGuard(t *testing.T) {

	d := &Detections{}

	dets, err := d.Copy(3)
	require.NoError(t, err)
	assert.Empty(t, dets)
	assert.Equal(t, 0, d.Len())

	_, err = d.Copy(0)
	assert.Error(t, err)

	d.Free()
	d.Free()

	_, err = d.Copy(3)
	assert.Error(t, err)
}

func TestDefaultParams(t *testing.T) {

	p := DefaultParams()

	assert.Equal(t, float32(0.5), p.Thresh)
	assert.Equal(t, float32(0.5), p.HierThresh)
	assert.Equal(t, float32(0.45), p.NMS)
	assert.Equal(t, postprocess.NMSByObject, p.NMSMode)
}

func TestLoadMissingFiles(t *testing.T) {

	dir := t.TempDir()

	_, err := LoadNetwork(dir+"/missing.cfg", dir+"/missing.weights", false)
	assert.ErrorIs(t, err, ErrNetworkLoad)

	_, err = LoadMetadata(dir + "/missing.data")
	assert.ErrorIs(t, err, ErrMetadataLoad)

	_, err = LoadImageColor(dir+"/missing.jpg", 0, 0)
	assert.ErrorIs(t, err, ErrImageLoad)

	// a directory is not a loadable file
	_, err = LoadImageColor(dir, 0, 0)
	assert.ErrorIs(t, err, ErrImageLoad)
}

func TestDecodeConfigFormats(t *testing.T) {

	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, img, nil))

	tests := []struct {
		name    string
		file    string
		content []byte
		ok      bool
	}{
		{"tiff", "a.tif", buf.Bytes(), true},
		{"ppm", "b.ppm", []byte("P6\n2 2\n255\n\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"), true},
		{"pgm", "c.pgm", []byte("P5\n1 1\n255\n\x80"), true},
		{"psd", "d.psd", append([]byte("8BPS"), make([]byte, 22)...), true},
		{"hdr", "e.hdr", []byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 1 +X 1\n"), true},
		{"tga", "f.tga", append([]byte{0, 0, 2}, make([]byte, 15)...), true},
		{"tga header without extension", "g.dat", append([]byte{0, 0, 2}, make([]byte, 15)...), false},
		{"text", "h.jpg", []byte("not an image"), false},
		{"empty", "i.png", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(path, tc.content, 0o644))

			err := decodeConfig(path)

			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, image.ErrFormat)
			}
		})
	}
}

func TestClosedNetwork(t *testing.T) {

	n := &Network{}
	n.Close()
	n.Close()

	assert.Equal(t, 0, n.Width())
	assert.Equal(t, 0, n.Height())
	assert.ErrorIs(t, n.ResetRNN(), ErrClosed)

	_, err := n.NetworkBoxes(10, 10, 0.5, 0.5, false)
	assert.ErrorIs(t, err, ErrClosed)

	var buf bytes.Buffer
	assert.ErrorIs(t, n.Query(&buf, nil), ErrClosed)
}
