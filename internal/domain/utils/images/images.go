package images

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/nfnt/resize"
)

// Thumbnail reads the image at src, scales it down to fit maxDim on its
// longest side and writes the result to dst as PNG. Smaller images are kept
// as is.
func Thumbnail(src, dst string, maxDim uint) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return err
	}

	thumb := resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3)

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, thumb)
}
