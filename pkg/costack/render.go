package costack

import(
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mdouchement/hdr/codec/rgbe"

	"github.com/abworrall/costacker/pkg/cmath"
)

// {{{ hdrPlane / WriteCoaddHDR

// hdrPlane adapts a FloatPlane into an hdr.Image so the coadd can be
// written out as Radiance HDR, the only common float image format.
type hdrPlane struct {
	fp cmath.FloatPlane
}

var _ hdr.Image = hdrPlane{}

func (hp hdrPlane)ColorModel() color.Model { return hdrcolor.RGBModel }
func (hp hdrPlane)Bounds() image.Rectangle { return hp.fp.Bounds() }
func (hp hdrPlane)At(x, y int) color.Color { return hp.HDRAt(x,y) }
func (hp hdrPlane)Size() int               { return hp.fp.Dx() * hp.fp.Dy() }

func (hp hdrPlane)HDRAt(x, y int) hdrcolor.Color {
	v := hp.fp.Get(x,y)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0.0
	}
	return hdrcolor.RGB{R:v, G:v, B:v}
}

func WriteCoaddHDR(fp cmath.FloatPlane, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, hdrPlane{fp})
	}
}

// }}}
// {{{ WriteCoaddPreview

// WriteCoaddPreview saves a simple grayscale of the plane, scaled to
// its value range and gamma-expanded to look normal for human vision.
func WriteCoaddPreview(fp cmath.FloatPlane, title, filename string) error {
	min, max := planeRange(fp)
	bounds := fp.Bounds()

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fp.Dx(), fp.Dy()}})
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			v := fp.Get(x,y)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = min
			}
			gray := gammaExpand((v - min) / (max - min))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x - bounds.Min.X, y - bounds.Min.Y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 20, 20)
	return dc.SavePNG(filename)
}

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
func gammaExpand(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// }}}
// {{{ WriteWeightMapPNG

// WriteWeightMapPNG renders the weight map as a heatmap - deep blue
// for zero coverage through to red for the deepest pixels.
func WriteWeightMapPNG(fp cmath.FloatPlane, filename string) error {
	_, max := planeRange(fp)
	bounds := fp.Bounds()

	img := image.NewRGBA(image.Rectangle{Max: image.Point{fp.Dx(), fp.Dy()}})
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			t := 0.0
			if max > 0.0 {
				t = fp.Get(x,y) / max
			}
			// Hue 240 (blue) down to 0 (red)
			col := colorful.Hsv(240.0 * (1.0 - t), 1.0, 1.0)
			img.Set(x - bounds.Min.X, y - bounds.Min.Y, col)
		}
	}

	return WritePNG(img, filename)
}

// }}}

func planeRange(fp cmath.FloatPlane) (float64, float64) {
	min, max := math.MaxFloat64, -math.MaxFloat64
	bounds := fp.Bounds()
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			v := fp.Get(x,y)
			if math.IsNaN(v) || math.IsInf(v, 0) { continue }
			if v > max { max = v }
			if v < min { min = v }
		}
	}
	if min >= max {
		min, max = 0.0, 1.0
	}
	return min, max
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
