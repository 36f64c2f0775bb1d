package stage

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/rm-hull/gdm-auto-blur/internal/img"
	"golang.org/x/image/draw"
)

type FillStage struct {
	Width  int
	Height int
}

// Process crops the image around its centre to the Width:Height aspect ratio and then
// resamples it to exactly Width x Height using Catmull-Rom interpolation
func (s *FillStage) Process(p *img.Image) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid fill size %dx%d", s.Width, s.Height)
	}

	cropped := transform.Crop(p.Img, CenterCrop(p.Bounds, s.Width, s.Height))

	dst := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)
	p.Img = dst
	return nil
}

// CenterCrop returns the largest rectangle centred in bounds with the width:height aspect ratio
func CenterCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	srcW, srcH := bounds.Dx(), bounds.Dy()
	cropW, cropH := srcW, srcH
	if srcW*height > srcH*width {
		cropW = srcH * width / height
	} else {
		cropH = srcW * height / width
	}
	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
