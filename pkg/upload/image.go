package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// CompressImage decodes any registered raster format, scales it down so the
// longer side is at most maxDimension and re-encodes it as JPEG.
func CompressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("upload: failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := scaledSize(bounds.Dx(), bounds.Dy(), maxDimension)

	var out image.Image = img
	if width != bounds.Dx() || height != bounds.Dy() {
		resized := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		out = resized
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("upload: failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// scaledSize keeps the aspect ratio while bounding the longer side.
func scaledSize(width, height, maxDimension int) (int, int) {
	if maxDimension <= 0 || (width <= maxDimension && height <= maxDimension) {
		return width, height
	}
	if width >= height {
		h := height * maxDimension / width
		if h < 1 {
			h = 1
		}
		return maxDimension, h
	}
	w := width * maxDimension / height
	if w < 1 {
		w = 1
	}
	return w, maxDimension
}
