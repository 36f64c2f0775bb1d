package stage

import (
	"github.com/disintegration/imaging"
	"github.com/rm-hull/gdm-auto-blur/internal/img"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur whose standard deviation is Sigma pixels
// Higher Sigma values result in a more pronounced blur effect, zero leaves the image as is
// Alpha is weighted through the kernel, so an opaque image stays opaque
func (s *GaussianBlurStage) Process(p *img.Image) error {
	p.Img = imaging.Blur(p.Img, s.Sigma)
	return nil
}
