package picture

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	// register webp so uploads from browsers that re-encode decode too
	_ "golang.org/x/image/webp"
)

const (
	// every stored picture is exactly TargetSize x TargetSize
	TargetSize = 150

	// ContentType tags every stored blob; it matches what Normalize emits.
	ContentType = "image/jpeg"

	jpegQuality = 85
)

// Normalize decodes an uploaded image, crops it cover-fit to the target
// square and re-encodes it as JPEG. It is a pure transform: same input,
// same output, no state between calls.
func Normalize(input []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	// scale to fully cover the square, cropping overflow from the edges
	out := imaging.Fill(src, TargetSize, TargetSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrBadImage, err)
	}
	return buf.Bytes(), nil
}
