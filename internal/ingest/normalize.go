package ingest

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	maxDimension = 1200
	jpegQuality  = 85
)

// Normalize decodes an uploaded poster image, scales it to fit inside a
// 1200x1200 box without upscaling, and re-encodes it as JPEG. The returned
// bytes are what gets stored and what the model sees.
func Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImageProcessing, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrImageProcessing, err)
	}
	return buf.Bytes(), nil
}
