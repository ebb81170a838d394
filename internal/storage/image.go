package storage

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // register webp decoding
)

const (
	// imageMaxDimension caps the longest edge of stored avatars, covers and
	// thumbnails.
	imageMaxDimension = 2048
	webpQuality       = 70
)

func isAllowedImageMIME(mime string) bool {
	switch mime {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// NormalizeImage validates an uploaded image file, downsizes anything larger
// than imageMaxDimension on its longest edge and re-encodes the result as
// WebP next to the input file. Returns the new path and its content type.
func NormalizeImage(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil {
		return "", "", fmt.Errorf("read image header: %w", err)
	}
	if mime := http.DetectContentType(head[:n]); !isAllowedImageMIME(mime) {
		return "", "", fmt.Errorf("unsupported image type %s", mime)
	}

	if _, err := f.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("rewind image: %w", err)
	}
	src, _, err := image.Decode(f)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	src = resizeToFit(src, imageMaxDimension)

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".webp"
	out, err := os.Create(outPath)
	if err != nil {
		return "", "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := webp.Encode(out, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", "", fmt.Errorf("encode webp: %w", err)
	}
	return outPath, "image/webp", nil
}

// resizeToFit scales the image down so neither edge exceeds max, keeping the
// aspect ratio. Images already within bounds are returned untouched.
func resizeToFit(src image.Image, max int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return src
	}

	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
