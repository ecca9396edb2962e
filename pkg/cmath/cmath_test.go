package cmath

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatPlaneParentFrameAddressing(t *testing.T) {
	bounds := image.Rect(10, 20, 14, 26)
	fp := NewFloatPlane(bounds)

	assert.Equal(t, bounds, fp.Bounds())
	assert.Equal(t, 4, fp.Dx())
	assert.Equal(t, 6, fp.Dy())

	fp.Set(10, 20, 1.5) // top-left corner, in parent coordinates
	fp.Set(13, 25, 2.5) // bottom-right corner
	assert.Equal(t, 1.5, fp.Get(10, 20))
	assert.Equal(t, 2.5, fp.Get(13, 25))
	assert.Equal(t, 0.0, fp.Get(11, 21))
}

func TestFloatPlaneCopyIsIndependent(t *testing.T) {
	fp := NewFloatPlane(image.Rect(0, 0, 3, 3))
	fp.Fill(7.0)

	cp := fp.Copy()
	cp.Set(1, 1, -1.0)

	assert.Equal(t, 7.0, fp.Get(1, 1), "copy must not alias the original")
	assert.Equal(t, -1.0, cp.Get(1, 1))
}

func TestFloatPlaneScale(t *testing.T) {
	fp := NewFloatPlane(image.Rect(0, 0, 2, 2))
	fp.Fill(3.0)
	fp.Scale(2.0)
	assert.Equal(t, 6.0, fp.Get(1, 1))
}

// TestFloatPlaneAddPlane verifies partial-accumulator merge: folding
// planes together elementwise over their overlap, in either order.
func TestFloatPlaneAddPlane(t *testing.T) {
	p1 := NewFloatPlane(image.Rect(0, 0, 4, 4))
	p1.Fill(1.0)
	p2 := NewFloatPlane(image.Rect(2, 2, 6, 6))
	p2.Fill(10.0)

	a := p1.Copy()
	a.AddPlane(p2)
	assert.Equal(t, 11.0, a.Get(2, 2))
	assert.Equal(t, 11.0, a.Get(3, 3))
	assert.Equal(t, 1.0, a.Get(0, 0), "outside the overlap is untouched")

	// Merging the other way round gives the same overlap values
	b := p2.Copy()
	b.AddPlane(p1)
	assert.Equal(t, a.Get(2, 2), b.Get(2, 2))
	assert.Equal(t, a.Get(3, 3), b.Get(3, 3))
}

func TestMaskPlaneBitOps(t *testing.T) {
	mp := NewMaskPlane(image.Rect(5, 5, 8, 8))

	mp.Or(6, 6, 0x5)
	mp.Or(6, 6, 0x3)
	assert.Equal(t, uint32(0x7), mp.Get(6, 6))

	mp.Clear(6, 6, 0x1)
	assert.Equal(t, uint32(0x6), mp.Get(6, 6))

	mp.Incr(7, 7)
	mp.Incr(7, 7)
	assert.Equal(t, uint32(2), mp.Get(7, 7))
}

func TestAff3InvertRoundTrip(t *testing.T) {
	m := Identity().Translate(3, -7).Rotate(30).Scale(2, 0.5)
	inv, err := m.Invert()
	require.NoError(t, err)

	x, y := m.Apply(11, 13)
	rx, ry := inv.Apply(x, y)
	assert.InDelta(t, 11.0, rx, 1e-12)
	assert.InDelta(t, 13.0, ry, 1e-12)
}

func TestAff3InvertDegenerate(t *testing.T) {
	m := Identity().Scale(0, 1)
	_, err := m.Invert()
	assert.Error(t, err)
}
