package costack

import(
	"image"
	"math"

	"github.com/abworrall/costacker/pkg/cmath"
)

// A Warper resamples an exposure onto a requested grid + WCS. The
// result has exactly the requested bounds; target pixels that fall
// outside the source footprint carry the NO_DATA bit and no usable
// signal.
type Warper interface {
	Warp(bounds image.Rectangle, wcs Wcs, exp Exposure) (Exposure, error)
}

// AffineWarper resamples through the composed affine sky mapping:
// target pixel -> sky -> source pixel. Pixel/variance planes get
// bilinear interpolation, the mask plane nearest-neighbour (mask
// bits can't be blended).
type AffineWarper struct{}

func NewAffineWarper() AffineWarper { return AffineWarper{} }

func (aw AffineWarper)Warp(bounds image.Rectangle, wcs Wcs, exp Exposure) (Exposure, error) {
	if err := exp.CheckDimensions(); err != nil {
		return Exposure{}, err
	}

	srcInv, err := exp.Wcs.PixToSky.Invert()
	if err != nil {
		return Exposure{}, err
	}
	toSrc := srcInv.Mult(wcs.PixToSky) // target pixel -> source pixel

	out := NewExposure(bounds)
	out.Wcs = wcs
	out.Cal = exp.Cal
	out.Filter = exp.Filter

	noData := NoDataBitMask()
	src := exp.Bounds()

	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			sx, sy := toSrc.Apply(float64(x), float64(y))

			x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
			if x0 < src.Min.X || y0 < src.Min.Y || x0+1 >= src.Max.X || y0+1 >= src.Max.Y {
				out.Mask.Or(x, y, noData)
				continue
			}

			fx, fy := sx - float64(x0), sy - float64(y0)
			out.Image.Set(x, y, bilinear(exp.Image, x0, y0, fx, fy))
			out.Variance.Set(x, y, bilinear(exp.Variance, x0, y0, fx, fy))

			// Nearest neighbour for the mask
			nx, ny := int(math.Round(sx)), int(math.Round(sy))
			out.Mask.Set(x, y, exp.Mask.Get(nx, ny))
		}
	}

	return out, nil
}

func bilinear(fp cmath.FloatPlane, x0, y0 int, fx, fy float64) float64 {
	return fp.Get(x0,   y0  ) * (1-fx) * (1-fy) +
		fp.Get(x0+1, y0  ) *    fx  * (1-fy) +
		fp.Get(x0,   y0+1) * (1-fx) *    fy  +
		fp.Get(x0+1, y0+1) *    fx  *    fy
}
