package cmath

import(
	"fmt"
	"image"
	"math"
)

// A FloatPlane is a grid of floats positioned somewhere in a shared
// parent pixel frame - `bounds.Min` is the top-left corner of the
// plane in that frame. All Get/Set coordinates are parent-frame
// coordinates, not local array indices.
type FloatPlane struct {
	bounds image.Rectangle
	stride int
	values []float64
}

func NewFloatPlane(bounds image.Rectangle) FloatPlane {
	return FloatPlane{
		bounds: bounds,
		stride: bounds.Dx(),
		values: make([]float64, bounds.Dx()*bounds.Dy()),
	}
}

func (fp FloatPlane)Bounds() image.Rectangle { return fp.bounds }
func (fp FloatPlane)Dx() int                 { return fp.bounds.Dx() }
func (fp FloatPlane)Dy() int                 { return fp.bounds.Dy() }

func (fp FloatPlane)index(x, y int) int {
	return fp.stride*(y-fp.bounds.Min.Y) + (x - fp.bounds.Min.X)
}

func (fp *FloatPlane)Set(x, y int, v float64) { fp.values[fp.index(x,y)] = v }
func (fp *FloatPlane)Add(x, y int, v float64) { fp.values[fp.index(x,y)] += v }
func (fp FloatPlane)Get(x, y int) float64     { return fp.values[fp.index(x,y)] }

func (fp *FloatPlane)Fill(v float64) {
	for i:=0; i<len(fp.values); i++ {
		fp.values[i] = v
	}
}

// Scale multiplies every value in place.
func (fp *FloatPlane)Scale(f float64) {
	for i:=0; i<len(fp.values); i++ {
		fp.values[i] *= f
	}
}

func (p1 FloatPlane)Copy() FloatPlane {
	p2 := FloatPlane{bounds: p1.bounds, stride: p1.stride, values: make([]float64, len(p1.values))}
	copy(p2.values, p1.values)
	return p2
}

// AddPlane folds `p2` into `p1` elementwise, over the region where they
// overlap. This is how partial accumulators get merged - elementwise
// addition commutes, so merge order doesn't matter.
func (p1 *FloatPlane)AddPlane(p2 FloatPlane) {
	overlap := p1.bounds.Intersect(p2.bounds)
	for y:=overlap.Min.Y; y<overlap.Max.Y; y++ {
		for x:=overlap.Min.X; x<overlap.Max.X; x++ {
			p1.Add(x, y, p2.Get(x,y))
		}
	}
}

func (fp FloatPlane)Stats() string {
	min := math.MaxFloat64
	max := -1.0 * min

	for i:=0; i<len(fp.values); i++ {
		if fp.values[i] > max { max = fp.values[i] }
		if fp.values[i] < min { min = fp.values[i] }
	}
	return fmt.Sprintf("fp[%dx%d @(%d,%d), vals{%f,%f}]", fp.Dx(), fp.Dy(),
		fp.bounds.Min.X, fp.bounds.Min.Y, min, max)
}
