package img

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Image struct {
	Img    image.Image
	Bounds image.Rectangle
	// Format is the name of the format the image was decoded from (jpeg, png, webp, ...)
	Format string
}

type PipelineStage interface {
	Process(img *Image) error
}

func NewImageFromReader(r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Image{
		Img:    img,
		Bounds: img.Bounds(),
		Format: format,
	}, nil
}

func NewImageFromFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return NewImageFromReader(f)
}

func (p *Image) Width() int {
	return p.Bounds.Dx()
}

func (p *Image) Height() int {
	return p.Bounds.Dy()
}

// Write encodes the image as png or jpeg; quality only applies to jpeg
func (p *Image) Write(w io.Writer, format string, quality int) error {
	var encoder imgio.Encoder
	switch format {
	case "png":
		encoder = imgio.PNGEncoder()
	case "jpeg", "jpg":
		encoder = imgio.JPEGEncoder(quality)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return encoder(w, p.Img)
}

// Pipeline runs the stages in order. Each stage replaces Img with a new image.
func (p *Image) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
		p.Bounds = p.Img.Bounds()
	}
	return nil
}
