package costack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoCalZeroPointRoundTrip(t *testing.T) {
	for _,zp := range []float64{0.0, 25.0, 27.0, 31.4} {
		cal := NewPhotoCalFromZeroPoint(zp)
		assert.InDelta(t, zp, cal.Magnitude(1.0), 1e-9, "flux 1.0 sits at the zero point")
		assert.InDelta(t, 1.0, cal.Flux(zp), 1e-9)
	}
}

func TestPhotoCalScaling(t *testing.T) {
	cal := NewPhotoCalFromZeroPoint(25.0)

	// 2.5 magnitudes brighter = 10x the flux
	assert.InDelta(t, 10.0, cal.Flux(22.5), 1e-9)
	assert.InDelta(t, 0.1, cal.Flux(27.5), 1e-9)

	// And back again
	assert.InDelta(t, 22.5, cal.Magnitude(10.0), 1e-9)
	assert.InDelta(t, 27.5, cal.Magnitude(0.1), 1e-9)
}
