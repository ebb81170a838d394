package storage

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	path := filepath.Join(dir, "upload.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestNormalizeImage_ReencodesAsWebP(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 40, 30)

	outPath, contentType, err := NormalizeImage(path)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", contentType)
	assert.Equal(t, ".webp", filepath.Ext(outPath))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestNormalizeImage_DownsizesLargeImages(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 4096, 1024)

	outPath, _, err := NormalizeImage(path)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, imageMaxDimension, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestNormalizeImage_RejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.png")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho not an image\n"), 0o644))

	_, _, err := NormalizeImage(path)
	assert.Error(t, err)
}

func TestResizeToFit_KeepsSmallImagesUntouched(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Equal(t, src, resizeToFit(src, 2048))

	shrunk := resizeToFit(image.NewRGBA(image.Rect(0, 0, 1000, 4000)), 2048)
	assert.Equal(t, 512, shrunk.Bounds().Dx())
	assert.Equal(t, 2048, shrunk.Bounds().Dy())
}
