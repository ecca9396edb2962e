package costack

import(
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

coadd:
  badmaskplanes: [BAD, SAT, EDGE, NO_DATA]
  coaddzeropoint: 27.0
  bounds:
    min: {x: 0, y: 0}
    max: {x: 2048, y: 2048}
  stats:
    numsigmaclip: 3.0
    numiter: 2

rendering:
  outputfilename: coadd.hdr
  previewfilename: coadd.png
  weightmapfilename: weightmap.png

inputs:
  visit-101.hdr: {zeropoint: 26.5, filter: g, variance: 4.0, offset: [0, 0]}
  visit-102.hdr: {zeropoint: 26.7, filter: g, variance: 3.1, offset: [-5, 2]}

*/

type StatsOptions struct {
	NumSigmaClip float64
	NumIter      int
}

type CoaddOptions struct {
	BadMaskPlanes  []string
	CoaddZeroPoint float64
	Bounds         image.Rectangle
	Stats          StatsOptions
}

// InputOptions is the calibration sidecar for one input file. Plain
// image formats carry no variance plane or photometric headers, so
// these come from the config.
type InputOptions struct {
	ZeroPoint float64    // photometric zero point of this exposure (mag)
	Filter    string
	Variance  float64    // constant per-pixel variance for this exposure
	Offset    [2]float64 // position of the exposure in the shared sky frame
}

type RenderOptions struct {
	OutputFilename    string // final coadd, Radiance HDR
	PreviewFilename   string // grayscale preview PNG
	WeightMapFilename string // weight map heatmap PNG
}

type Configuration struct {
	Coadd     CoaddOptions
	Rendering RenderOptions
	Inputs    map[string]InputOptions
}

func NewConfiguration() Configuration {
	return Configuration{
		Inputs: map[string]InputOptions{},
	}
}

func LoadConfiguration(filename string) (Configuration, error) {
	c := NewConfiguration()

	if contents,err := os.ReadFile(filename); err != nil {
		return c, fmt.Errorf("read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("parse '%s': %v", filename, err)
	}

	return c, c.FinalizeConfiguration()
}

// FinalizeConfiguration does sanity checks and fills in defaults.
func (c *Configuration)FinalizeConfiguration() error {
	if len(c.Coadd.BadMaskPlanes) == 0 {
		c.Coadd.BadMaskPlanes = []string{PlaneBad, PlaneSat, PlaneIntrp, PlaneCR, PlaneEdge, PlaneNoData}
	}
	if _,err := PlaneBitMask(c.Coadd.BadMaskPlanes...); err != nil {
		return err
	}

	if c.Coadd.Stats.NumSigmaClip == 0.0 { c.Coadd.Stats.NumSigmaClip = 3.0 }
	if c.Coadd.Stats.NumIter == 0        { c.Coadd.Stats.NumIter = 2 }

	if c.Coadd.Bounds.Empty() {
		return fmt.Errorf("coadd bounds %v are empty", c.Coadd.Bounds)
	}

	if c.Rendering.OutputFilename == ""    { c.Rendering.OutputFilename = "coadd.hdr" }
	if c.Rendering.PreviewFilename == ""   { c.Rendering.PreviewFilename = "coadd.png" }
	if c.Rendering.WeightMapFilename == "" { c.Rendering.WeightMapFilename = "weightmap.png" }

	for name,in := range c.Inputs {
		if in.Variance <= 0.0 {
			return fmt.Errorf("input '%s': variance %g, must be > 0", name, in.Variance)
		}
	}

	return nil
}

// NewCoaddFromConfig builds a Coadd per the config, including the
// per-instance stats-control overrides.
func NewCoaddFromConfig(c Configuration) (*Coadd, error) {
	coadd, err := NewCoadd(c.Coadd.Bounds, NewWcs(), c.Coadd.BadMaskPlanes, c.Coadd.CoaddZeroPoint)
	if err != nil {
		return nil, err
	}
	coadd.statsCtrl.NumSigmaClip = c.Coadd.Stats.NumSigmaClip
	coadd.statsCtrl.NumIter = c.Coadd.Stats.NumIter
	return coadd, nil
}
