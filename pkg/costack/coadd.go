package costack

import(
	"fmt"
	"image"
	"log"
	"math"
	"sync"

	"github.com/abworrall/costacker/pkg/cmath"
)

// A Coadd accumulates resampled exposures into a weighted-average
// composite over a fixed pixel grid. The geometry (bbox, wcs), bad
// pixel mask and zero point are fixed at construction; AddExposure
// folds exposures in one at a time; GetCoadd/GetWeightMap derive
// read-only products from the current state at any point.
type Coadd struct {
	mu           sync.Mutex // each AddExposure is one transaction; readers never see a torn update

	bbox         image.Rectangle
	wcs          Wcs
	badPixelMask uint32
	zeroPoint    float64
	cal          PhotoCal
	statsCtrl    StatsControl

	// Accumulator state. Only AddExposure mutates these.
	sum          cmath.FloatPlane // sum of weight * normalized pixel value
	varSum       cmath.FloatPlane // sum of weight^2 * normalized variance
	mask         cmath.MaskPlane  // OR of contributing exposures' mask bits
	weightMap    cmath.FloatPlane // sum of weights of unmasked contributions
	depthMap     cmath.MaskPlane  // count of unmasked contributions
}

// {{{ NewCoadd

// NewCoadd creates an empty coadd over `bbox`. The badPlaneNames are
// the mask planes whose pixels are rejected from accumulation - they
// should include an edge-indicating plane (EDGE or NO_DATA) so that
// warped-in border pixels don't pollute the average.
func NewCoadd(bbox image.Rectangle, wcs Wcs, badPlaneNames []string, coaddZeroPoint float64) (*Coadd, error) {
	badPixelMask, err := PlaneBitMask(badPlaneNames...)
	if err != nil {
		return nil, err
	}

	cal := NewPhotoCalFromZeroPoint(coaddZeroPoint)
	if math.Abs(cal.Magnitude(1.0) - coaddZeroPoint) > 1.0e-4 {
		return nil, fmt.Errorf("%w: mag(flux=1) = %0.4f != %0.4f", ErrBadZeroPoint,
			cal.Magnitude(1.0), coaddZeroPoint)
	}

	return &Coadd{
		bbox:         bbox,
		wcs:          wcs,
		badPixelMask: badPixelMask,
		zeroPoint:    coaddZeroPoint,
		cal:          cal,
		statsCtrl:    StatsControl{NumSigmaClip: 3.0, NumIter: 2, AndMask: badPixelMask},
		sum:          cmath.NewFloatPlane(bbox),
		varSum:       cmath.NewFloatPlane(bbox),
		mask:         cmath.NewMaskPlane(bbox),
		weightMap:    cmath.NewFloatPlane(bbox),
		depthMap:     cmath.NewMaskPlane(bbox),
	}, nil
}

// }}}
// {{{ c.AddExposure

// AddExposure folds one exposure into the coadd. The exposure must
// already be background-subtracted, warped onto the coadd grid, and
// photometrically calibrated.
//
// Returns the overlap region (in the parent frame) and the weight
// the exposure was added with: weightFactor / clipped mean variance.
// An exposure with no usable variance signal is rejected with
// ErrDegenerateVariance and leaves the accumulator untouched.
func (c *Coadd)AddExposure(exp Exposure, weightFactor float64) (image.Rectangle, float64, error) {
	if err := exp.CheckDimensions(); err != nil {
		return image.Rectangle{}, 0, err
	}
	if weightFactor <= 0.0 {
		return image.Rectangle{}, 0, fmt.Errorf("weightFactor %g, must be > 0", weightFactor)
	}

	// Normalize a copy so flux is 1.0 at the coadd zero point. The
	// caller's exposure is never touched.
	scaleFac := 1.0 / exp.Cal.Flux(c.zeroPoint)
	norm := exp.Normalized(scaleFac)

	weight, err := ExposureWeight(norm, weightFactor, c.statsCtrl)
	if err != nil {
		return image.Rectangle{}, 0, err
	}

	log.Printf("add exposure to coadd; scaled by %0.3g; weight=%0.3g\n", scaleFac, weight)
	RecordWeight(weight)

	c.mu.Lock()
	defer c.mu.Unlock()

	overlap := c.bbox.Intersect(norm.Bounds())
	if overlap.Empty() {
		return image.Rectangle{}, 0, nil
	}

	// The masked weighted fold. EDGE is reserved for coverage
	// tracking, so it never propagates from input masks.
	edgeBits := EdgeBitMask()
	for y:=overlap.Min.Y; y<overlap.Max.Y; y++ {
		for x:=overlap.Min.X; x<overlap.Max.X; x++ {
			bits := norm.Mask.Get(x,y)
			c.mask.Or(x, y, bits &^ edgeBits)

			if bits & c.badPixelMask != 0 {
				continue
			}

			c.sum.Add(x, y, weight * norm.Image.Get(x,y))
			c.varSum.Add(x, y, weight*weight * norm.Variance.Get(x,y))
			c.weightMap.Add(x, y, weight)
			c.depthMap.Incr(x, y)
		}
	}

	return overlap, weight, nil
}

// }}}
// {{{ SetCoaddEdgeBits

// SetCoaddEdgeBits flags every pixel that never received any weight:
// weightMap == 0 sets the EDGE bit, anything else clears it. Pure
// function of the weight map, so rerunning it changes nothing.
func SetCoaddEdgeBits(mask *cmath.MaskPlane, weightMap cmath.FloatPlane) {
	edgeBits := EdgeBitMask()
	bounds := weightMap.Bounds()
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			if weightMap.Get(x,y) == 0.0 {
				mask.Or(x, y, edgeBits)
			} else {
				mask.Clear(x, y, edgeBits)
			}
		}
	}
}

// }}}
// {{{ c.GetCoadd

// GetCoadd normalizes the accumulated sums into the final coadd:
// sum/weight per pixel, variance sum/weight^2, EDGE bits where no
// exposure contributed. It works on copies, so the accumulator keeps
// running - call it again after more AddExposures and it reflects
// the new state. Zero-weight pixels hold indeterminate values; the
// EDGE bit is what marks them meaningless.
func (c *Coadd)GetCoadd() Exposure {
	c.mu.Lock()
	defer c.mu.Unlock()

	img := c.sum.Copy()
	vr := c.varSum.Copy()
	msk := c.mask.Copy()

	SetCoaddEdgeBits(&msk, c.weightMap)

	for y:=c.bbox.Min.Y; y<c.bbox.Max.Y; y++ {
		for x:=c.bbox.Min.X; x<c.bbox.Max.X; x++ {
			if w := c.weightMap.Get(x,y); w > 0.0 {
				img.Set(x, y, img.Get(x,y) / w)
				vr.Set(x, y, vr.Get(x,y) / (w*w))
			}
		}
	}

	return Exposure{
		Image:    img,
		Variance: vr,
		Mask:     msk,
		Cal:      c.cal,
		Wcs:      c.wcs,
	}
}

// }}}
// {{{ c.Get{WeightMap,DepthMap,BadPixelMask,BBox,Wcs,CoaddZeroPoint}

// GetWeightMap returns a copy of the per-pixel sum of contributed
// weights.
func (c *Coadd)GetWeightMap() cmath.FloatPlane {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weightMap.Copy()
}

// GetDepthMap returns a copy of the per-pixel count of contributing
// exposures.
func (c *Coadd)GetDepthMap() cmath.MaskPlane {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depthMap.Copy()
}

func (c *Coadd)GetBadPixelMask() uint32     { return c.badPixelMask }
func (c *Coadd)GetBBox() image.Rectangle    { return c.bbox }
func (c *Coadd)GetWcs() Wcs                 { return c.wcs }
func (c *Coadd)GetCoaddZeroPoint() float64  { return c.zeroPoint }

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
