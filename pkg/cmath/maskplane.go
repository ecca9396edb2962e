package cmath

import(
	"image"
)

// A MaskPlane is a grid of bitmask values, parallel to a FloatPlane
// and addressed in the same parent pixel frame. Also used for the
// depth map, where the values are plain counters rather than bits.
type MaskPlane struct {
	bounds image.Rectangle
	stride int
	values []uint32
}

func NewMaskPlane(bounds image.Rectangle) MaskPlane {
	return MaskPlane{
		bounds: bounds,
		stride: bounds.Dx(),
		values: make([]uint32, bounds.Dx()*bounds.Dy()),
	}
}

func (mp MaskPlane)Bounds() image.Rectangle { return mp.bounds }
func (mp MaskPlane)Dx() int                 { return mp.bounds.Dx() }
func (mp MaskPlane)Dy() int                 { return mp.bounds.Dy() }

func (mp MaskPlane)index(x, y int) int {
	return mp.stride*(y-mp.bounds.Min.Y) + (x - mp.bounds.Min.X)
}

func (mp *MaskPlane)Set(x, y int, v uint32)     { mp.values[mp.index(x,y)] = v }
func (mp MaskPlane)Get(x, y int) uint32         { return mp.values[mp.index(x,y)] }
func (mp *MaskPlane)Or(x, y int, bits uint32)   { mp.values[mp.index(x,y)] |= bits }
func (mp *MaskPlane)Clear(x, y int, bits uint32){ mp.values[mp.index(x,y)] &^= bits }
func (mp *MaskPlane)Incr(x, y int)              { mp.values[mp.index(x,y)]++ }

func (mp *MaskPlane)Fill(v uint32) {
	for i:=0; i<len(mp.values); i++ {
		mp.values[i] = v
	}
}

func (p1 MaskPlane)Copy() MaskPlane {
	p2 := MaskPlane{bounds: p1.bounds, stride: p1.stride, values: make([]uint32, len(p1.values))}
	copy(p2.values, p1.values)
	return p2
}
