package costack

import(
	"github.com/abworrall/costacker/pkg/cmath"
)

// A Wcs maps pixel coordinates to a flat sky frame and back. An
// affine mapping is all the warper needs - the resampling engine
// only ever composes one WCS with the inverse of another.
type Wcs struct {
	PixToSky cmath.Aff3
}

func NewWcs() Wcs {
	return Wcs{PixToSky: cmath.Identity()}
}

func (w Wcs)PixelToSky(x, y float64) (float64, float64) {
	return w.PixToSky.Apply(x, y)
}

func (w Wcs)SkyToPixel(sx, sy float64) (float64, float64, error) {
	inv, err := w.PixToSky.Invert()
	if err != nil {
		return 0, 0, err
	}
	x, y := inv.Apply(sx, sy)
	return x, y, nil
}
