package costack

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/costacker/pkg/cmath"
)

// StatsControl configures the sigma-clipped statistics used for
// per-exposure weight estimation. Pure configuration, no state.
type StatsControl struct {
	NumSigmaClip float64 // discard samples more than this many stddevs from the mean
	NumIter      int     // how many clip-and-recompute passes
	AndMask      uint32  // reject samples whose mask intersects these bits
}

func NewStatsControl() StatsControl {
	return StatsControl{
		NumSigmaClip: 3.0,
		NumIter:      2,
	}
}

// ClippedMeanVariance computes the sigma-clipped mean of the variance
// plane, ignoring pixels whose mask intersects sc.AndMask. This is
// what turns a whole variance image into the single scalar that
// weights an exposure.
func ClippedMeanVariance(variance cmath.FloatPlane, mask cmath.MaskPlane, sc StatsControl) (float64, error) {
	if variance.Bounds() != mask.Bounds() {
		return 0, fmt.Errorf("%w: variance %v vs mask %v", ErrDimensionMismatch,
			variance.Bounds(), mask.Bounds())
	}

	bounds := variance.Bounds()
	samples := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			if mask.Get(x,y) & sc.AndMask != 0 {
				continue
			}
			if v := variance.Get(x,y); !math.IsNaN(v) {
				samples = append(samples, v)
			}
		}
	}

	for i:=0; i<sc.NumIter; i++ {
		if len(samples) == 0 {
			break
		}

		mean, stddev := stat.MeanStdDev(samples, nil)
		if stddev == 0.0 || math.IsNaN(stddev) {
			break // uniform variance, nothing left to clip
		}

		kept := samples[:0]
		for _,v := range samples {
			if math.Abs(v - mean) <= sc.NumSigmaClip * stddev {
				kept = append(kept, v)
			}
		}
		samples = kept
	}

	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: no variance samples survived masking+clipping", ErrDegenerateVariance)
	}

	meanVar := stat.Mean(samples, nil)
	if meanVar <= 0.0 || math.IsNaN(meanVar) {
		return 0, fmt.Errorf("%w: clipped mean variance %g", ErrDegenerateVariance, meanVar)
	}

	return meanVar, nil
}

// ExposureWeight is `multiplier / clippedMeanVariance` - low-noise
// exposures get proportionally more say in the coadd.
func ExposureWeight(exp Exposure, multiplier float64, sc StatsControl) (float64, error) {
	meanVar, err := ClippedMeanVariance(exp.Variance, exp.Mask, sc)
	if err != nil {
		return 0, err
	}
	return multiplier / meanVar, nil
}
