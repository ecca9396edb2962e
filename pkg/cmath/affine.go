package cmath

// Basic affine transformations, used for the pixel<->sky mappings

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Use a local type so we can hang methods off it
type Aff3 f64.Aff3

// Cut-n-pasted from image@0.7.0/draw/scale:matMul
func (p Aff3)Mult(q Aff3) Aff3 {
	return Aff3{
		p[3*0+0]*q[3*0+0] + p[3*0+1]*q[3*1+0],
		p[3*0+0]*q[3*0+1] + p[3*0+1]*q[3*1+1],
		p[3*0+0]*q[3*0+2] + p[3*0+1]*q[3*1+2] + p[3*0+2],
		p[3*1+0]*q[3*0+0] + p[3*1+1]*q[3*1+0],
		p[3*1+0]*q[3*0+1] + p[3*1+1]*q[3*1+1],
		p[3*1+0]*q[3*0+2] + p[3*1+1]*q[3*1+2] + p[3*1+2],
	}
}

func Identity() Aff3 {
	return Aff3{1, 0, 0,   0, 1, 0}
}

func (m1 Aff3)Translate(tx, ty float64) Aff3 {
	return m1.Mult(Aff3{1, 0, tx,   0, 1, ty})
}

func (m1 Aff3)Scale(sx, sy float64) Aff3 {
	return m1.Mult(Aff3{sx, 0, 0,   0, sy, 0})
}

func (m1 Aff3)Rotate(thetaDeg float64) Aff3 {
	cosTheta := math.Cos(thetaDeg * math.Pi / 180.0)
	sinTheta := math.Sin(thetaDeg * math.Pi / 180.0)
	return m1.Mult(Aff3{cosTheta, -1*sinTheta, 0,    sinTheta, cosTheta, 0})
}

// Apply maps the point (x,y) through the transform.
func (m Aff3)Apply(x, y float64) (float64, float64) {
	return m[3*0+0]*x + m[3*0+1]*y + m[3*0+2],
		m[3*1+0]*x + m[3*1+1]*y + m[3*1+2]
}

// Invert returns the inverse transform. Fails on degenerate
// transforms (zero determinant), which would mean the mapping
// collapses the plane.
func (m Aff3)Invert() (Aff3, error) {
	det := m[3*0+0]*m[3*1+1] - m[3*0+1]*m[3*1+0]
	if det == 0.0 {
		return Identity(), fmt.Errorf("aff3 %v is not invertible", m)
	}

	return Aff3{
		 m[3*1+1] / det,
		-m[3*0+1] / det,
		(m[3*0+1]*m[3*1+2] - m[3*1+1]*m[3*0+2]) / det,
		-m[3*1+0] / det,
		 m[3*0+0] / det,
		(m[3*1+0]*m[3*0+2] - m[3*0+0]*m[3*1+2]) / det,
	}, nil
}
