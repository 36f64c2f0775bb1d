package stage

import (
	"fmt"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/rm-hull/gdm-auto-blur/internal/img"
)

type BrightnessStage struct {
	Factor float64
}

// Process multiplies every colour channel by Factor
// Values below 1.0 darken, above 1.0 brighten, and 1.0 leaves the colours unchanged
// Alpha is preserved and channels are clamped to it, as the working image is alpha-premultiplied
func (s *BrightnessStage) Process(p *img.Image) error {
	if s.Factor < 0 || math.IsNaN(s.Factor) || math.IsInf(s.Factor, 0) {
		return fmt.Errorf("invalid brightness factor %g", s.Factor)
	}
	scale := func(v, limit uint8) uint8 {
		return uint8(math.Min(math.Round(float64(v)*s.Factor), float64(limit)))
	}
	p.Img = adjust.Apply(p.Img, func(c color.RGBA) color.RGBA {
		return color.RGBA{scale(c.R, c.A), scale(c.G, c.A), scale(c.B, c.A), c.A}
	})
	return nil
}
