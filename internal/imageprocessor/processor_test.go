package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	return img
}

func TestCoverCrop(t *testing.T) {
	assert.Equal(t, image.Rect(100, 0, 500, 400), CoverCrop(image.Rect(0, 0, 600, 400), 400, 400))
	assert.Equal(t, image.Rect(0, 100, 300, 200), CoverCrop(image.Rect(0, 0, 300, 300), 1500, 500))
}

func TestProcessImage_AvatarCover(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(900, 600), nil))

	res, err := NewProcessor(80).ProcessImage(&buf, SizeAvatar)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", res.Format)
	assert.Equal(t, "jpg", res.Ext())
	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 400, res.Height)

	w, h, err := GetImageDimensions(bytes.NewReader(res.Data.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 400, h)
}

func TestProcessImage_PNGBannerKeepsFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(300, 300)))

	res, err := NewProcessor(0).ProcessImage(&buf, SizeBanner)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, 1500, res.Width)
	assert.Equal(t, 500, res.Height)
}

func TestProcessImage_ContainDoesNotUpscale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(320, 200)))

	res, err := NewProcessor(85).ProcessImage(&buf, SizePortfolio)
	require.NoError(t, err)
	assert.Equal(t, 320, res.Width)
	assert.Equal(t, 200, res.Height)
}

func TestIsValidImage(t *testing.T) {
	assert.False(t, IsValidImage(strings.NewReader("not an image")))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(2, 2)))
	assert.True(t, IsValidImage(&buf))
}
