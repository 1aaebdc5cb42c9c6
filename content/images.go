package content

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 800
	jpegQuality   = 80
	maxCoverSize  = 10 << 20 // 10MB
)

// Cover is a processed project cover image.
type Cover struct {
	Width  int
	Height int
	Data   []byte
}

// processCover decodes an image from src, scales it down to maxCoverWidth
// when wider, and re-encodes it as JPEG.
func processCover(src io.Reader) (Cover, error) {
	img, _, err := image.Decode(io.LimitReader(src, maxCoverSize))
	if err != nil {
		return Cover{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxCoverWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Cover{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Cover{Width: w, Height: h, Data: buf.Bytes()}, nil
}
