package costack

import(
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"

	"github.com/abworrall/costacker/pkg/cmath"
)

// LoadExposure reads a Radiance .hdr file and builds an Exposure
// from it. An .hdr file is just a float image - the variance plane,
// photometric calibration and sky position all come from the config
// sidecar for this file.
func LoadExposure(filename string, opts InputOptions) (Exposure, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return Exposure{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	m, _, err := image.Decode(reader)
	if err != nil {
		return Exposure{}, fmt.Errorf("hdr loading '%s': %v", filename, err)
	}
	hdrImg, ok := m.(hdr.Image)
	if !ok {
		return Exposure{}, fmt.Errorf("'%s' decoded to %T, not an HDR image", filename, m)
	}

	bounds := hdrImg.Bounds()
	exp := NewExposure(bounds)
	exp.Cal = NewPhotoCalFromZeroPoint(opts.ZeroPoint)
	exp.Filter = opts.Filter
	exp.Wcs = Wcs{PixToSky: cmath.Identity().Translate(opts.Offset[0], opts.Offset[1])}
	exp.Variance.Fill(opts.Variance)

	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			r, g, b, _ := hdrImg.HDRAt(x,y).HDRRGBA()
			exp.Image.Set(x, y, (r + g + b) / 3.0)
		}
	}

	return exp, nil
}

// LoadInputs loads every non-yaml file named on the command line,
// looking up each one's calibration in the config by base filename.
func LoadInputs(c Configuration, filenames []string) ([]Exposure, error) {
	exps := []Exposure{}

	for _,filename := range filenames {
		if strings.ToLower(filepath.Ext(filename)) == ".yaml" {
			continue
		}

		opts, exists := c.Inputs[filepath.Base(filename)]
		if !exists {
			return nil, fmt.Errorf("input '%s' has no calibration entry in the config", filename)
		}

		exp, err := LoadExposure(filename, opts)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}

	return exps, nil
}
