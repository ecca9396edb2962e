package costack

import(
	"fmt"
	"math"
)

// PhotoCal is the photometric calibration of an image: FluxMag0 is
// the flux (in counts) of a zeroth-magnitude source, which pins down
// the whole flux<->magnitude scaling.
type PhotoCal struct {
	FluxMag0 float64
}

// NewPhotoCalFromZeroPoint builds a calibration whose zero point is
// the given magnitude, i.e. a source of that magnitude has flux 1.0.
func NewPhotoCalFromZeroPoint(zeroPoint float64) PhotoCal {
	return PhotoCal{FluxMag0: math.Pow(10, 0.4*zeroPoint)}
}

// Flux returns the flux of a source of magnitude `mag`.
func (pc PhotoCal)Flux(mag float64) float64 {
	return pc.FluxMag0 * math.Pow(10, -0.4*mag)
}

// Magnitude returns the magnitude of a source of flux `flux`.
func (pc PhotoCal)Magnitude(flux float64) float64 {
	return -2.5 * math.Log10(flux / pc.FluxMag0)
}

func (pc PhotoCal)String() string {
	return fmt.Sprintf("photocal[fluxmag0=%g]", pc.FluxMag0)
}
