package stage

import (
	"github.com/anthonynsimon/bild/convolution"
	"github.com/rm-hull/gdm-auto-blur/internal/img"
)

// 5x5 low-pass kernel, heavily weighted to the centre
var smoothMoreWeights = []float64{
	1, 1, 1, 1, 1,
	1, 5, 5, 5, 1,
	1, 5, 44, 5, 1,
	1, 5, 5, 5, 1,
	1, 1, 1, 1, 1,
}

type SmoothMoreStage struct{}

// Process applies a fixed mild smoothing convolution
// This softens the banding and edge artifacts a large Gaussian blur leaves behind
func (s *SmoothMoreStage) Process(p *img.Image) error {
	k := convolution.NewKernel(5, 5)
	copy(k.Matrix, smoothMoreWeights)
	p.Img = convolution.Convolve(p.Img, k.Normalized(), &convolution.Options{
		Bias:      0,
		Wrap:      false,
		KeepAlpha: true,
	})
	return nil
}
