package costack

import(
	"fmt"
	"image"

	"github.com/abworrall/costacker/pkg/cmath"
)

// An Exposure is a calibrated image: a pixel-value plane, a parallel
// per-pixel variance plane, a parallel quality-mask plane, the
// photometric calibration, and a WCS. The three planes must share
// identical bounds in the parent pixel frame.
type Exposure struct {
	Image    cmath.FloatPlane
	Variance cmath.FloatPlane
	Mask     cmath.MaskPlane
	Cal      PhotoCal
	Wcs      Wcs
	Filter   string
}

// NewExposure allocates an all-zero exposure over `bounds`.
func NewExposure(bounds image.Rectangle) Exposure {
	return Exposure{
		Image:    cmath.NewFloatPlane(bounds),
		Variance: cmath.NewFloatPlane(bounds),
		Mask:     cmath.NewMaskPlane(bounds),
		Wcs:      NewWcs(),
	}
}

func (e Exposure)Bounds() image.Rectangle { return e.Image.Bounds() }

func (e Exposure)CheckDimensions() error {
	if e.Image.Bounds() != e.Variance.Bounds() || e.Image.Bounds() != e.Mask.Bounds() {
		return fmt.Errorf("%w: image %v, variance %v, mask %v", ErrDimensionMismatch,
			e.Image.Bounds(), e.Variance.Bounds(), e.Mask.Bounds())
	}
	return nil
}

// Normalized returns a deep copy with pixel values scaled by
// `scaleFac` (and variance by its square, since variance is in
// squared flux units). The receiver is untouched - photometric
// normalization is a pure function, not a hidden mutation.
func (e Exposure)Normalized(scaleFac float64) Exposure {
	e2 := e
	e2.Image = e.Image.Copy()
	e2.Variance = e.Variance.Copy()
	e2.Mask = e.Mask.Copy()

	e2.Image.Scale(scaleFac)
	e2.Variance.Scale(scaleFac * scaleFac)
	return e2
}

func (e Exposure)String() string {
	return fmt.Sprintf("exposure[%v, %s, filter=%s]", e.Bounds(), e.Cal, e.Filter)
}
