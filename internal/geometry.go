package internal

import "math"

// BlurScaler keeps perceived blur proportional to screen real estate by scaling a sigma
// calibrated against the reference resolution to the actual image size.
type BlurScaler struct {
	ReferenceWidth  int
	ReferenceHeight int
	HeightAware     bool
	Precision       int
}

func NewBlurScaler(cfg Config) BlurScaler {
	return BlurScaler{
		ReferenceWidth:  cfg.ReferenceWidth,
		ReferenceHeight: cfg.ReferenceHeight,
		HeightAware:     cfg.HeightAware,
		Precision:       cfg.SigmaPrecision,
	}
}

func (s BlurScaler) Scale(nominal float64, width, height int) float64 {
	sigma := nominal * float64(width) / float64(s.ReferenceWidth)
	if s.HeightAware {
		sigma *= float64(height) / float64(s.ReferenceHeight)
	}
	p := math.Pow10(s.Precision)
	return math.Round(sigma*p) / p
}
