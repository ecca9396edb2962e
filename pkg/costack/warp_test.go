package costack

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/costacker/pkg/cmath"
)

// TestWarpIdentity: same WCS on both sides, target inside the source
// footprint - every plane comes through exactly (bilinear at integer
// offsets is exact).
func TestWarpIdentity(t *testing.T) {
	src := makeExposure(image.Rect(0, 0, 8, 8), 0.0, 4.0)
	for y:=0; y<8; y++ {
		for x:=0; x<8; x++ {
			src.Image.Set(x, y, float64(10*y + x))
		}
	}
	badBits, err := PlaneBitMask(PlaneBad)
	require.NoError(t, err)
	src.Mask.Or(3, 3, badBits)
	src.Filter = "g"

	target := image.Rect(1, 1, 6, 6)
	warped, err := NewAffineWarper().Warp(target, NewWcs(), src)
	require.NoError(t, err)

	assert.Equal(t, target, warped.Bounds())
	assert.Equal(t, "g", warped.Filter)
	for y:=target.Min.Y; y<target.Max.Y; y++ {
		for x:=target.Min.X; x<target.Max.X; x++ {
			assert.InDelta(t, float64(10*y + x), warped.Image.Get(x,y), 1e-12)
			assert.InDelta(t, 4.0, warped.Variance.Get(x,y), 1e-12)
		}
	}
	assert.Equal(t, badBits, warped.Mask.Get(3, 3), "mask bits carry over nearest-neighbour")
	assert.Zero(t, warped.Mask.Get(2, 2))
}

// TestWarpNoData: target pixels outside the source footprint carry
// NO_DATA and nothing else.
func TestWarpNoData(t *testing.T) {
	src := makeExposure(image.Rect(0, 0, 4, 4), 7.0, 4.0)

	target := image.Rect(0, 0, 10, 10)
	warped, err := NewAffineWarper().Warp(target, NewWcs(), src)
	require.NoError(t, err)

	noData := NoDataBitMask()
	assert.NotZero(t, warped.Mask.Get(8, 8) & noData)
	assert.Equal(t, 0.0, warped.Image.Get(8, 8))
	assert.Zero(t, warped.Mask.Get(1, 1) & noData)
	assert.InDelta(t, 7.0, warped.Image.Get(1, 1), 1e-12)
}

// TestWarpTranslation: an exposure positioned on the sky by its WCS
// lands at the right place in the target frame.
func TestWarpTranslation(t *testing.T) {
	src := makeExposure(image.Rect(0, 0, 4, 4), 7.0, 4.0)
	src.Wcs = Wcs{PixToSky: cmath.Identity().Translate(10, 20)}

	target := image.Rect(0, 0, 16, 26)
	warped, err := NewAffineWarper().Warp(target, NewWcs(), src)
	require.NoError(t, err)

	noData := NoDataBitMask()
	assert.Zero(t, warped.Mask.Get(11, 21) & noData)
	assert.InDelta(t, 7.0, warped.Image.Get(11, 21), 1e-12)
	assert.NotZero(t, warped.Mask.Get(5, 5) & noData, "before the footprint starts")
}

// TestWarpThenAdd: the full pipeline contract - warp onto the coadd
// grid with NO_DATA in the borders, then accumulate. NO_DATA is a
// bad plane, so only the real footprint contributes.
func TestWarpThenAdd(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	coadd := makeCoadd(t, bounds)

	src := makeExposure(image.Rect(0, 0, 5, 5), 12.0, 4.0)
	warped, err := NewAffineWarper().Warp(bounds, coadd.GetWcs(), src)
	require.NoError(t, err)

	_, weight, err := coadd.AddExposure(warped, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, weight, 1e-12)

	wm := coadd.GetWeightMap()
	assert.InDelta(t, 0.25, wm.Get(2, 2), 1e-12)
	assert.Equal(t, 0.0, wm.Get(8, 8), "NO_DATA region contributes nothing")

	final := coadd.GetCoadd()
	assert.InDelta(t, 12.0, final.Image.Get(2, 2), 1e-12)
	assert.NotZero(t, final.Mask.Get(8, 8) & EdgeBitMask())
}

func TestWarpDegenerateWcs(t *testing.T) {
	src := makeExposure(image.Rect(0, 0, 4, 4), 7.0, 4.0)
	src.Wcs = Wcs{PixToSky: cmath.Identity().Scale(0, 1)}

	_, err := NewAffineWarper().Warp(image.Rect(0, 0, 4, 4), NewWcs(), src)
	assert.Error(t, err)
}
