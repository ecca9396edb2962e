package main

import(
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abworrall/costacker/pkg/costack"
)

var(
	Log *log.Logger

	fOutputFilename string
	fPreviewFilename string
	fWeightMapFilename string
	fWeightFactor float64
)

func init() {
	flag.StringVar(&fOutputFilename, "o", "", "name of output coadd file (Radiance HDR)")
	flag.StringVar(&fPreviewFilename, "preview", "", "name of grayscale preview PNG")
	flag.StringVar(&fWeightMapFilename, "weightmap", "", "name of weight map heatmap PNG")
	flag.Float64Var(&fWeightFactor, "weightfactor", 1.0, "extra weight multiplier applied to every exposure")
	flag.Parse()

	Log = log.New(os.Stdout,"", log.Ldate|log.Ltime)
	log.Printf("Starting\n")
}

func main() {
	cfg, err := loadConfig(flag.Args())
	if err != nil {
		Log.Fatal(err)
	}

	// Override the config file with command line args, if relevant
	if fOutputFilename != "" { cfg.Rendering.OutputFilename = fOutputFilename }
	if fPreviewFilename != "" { cfg.Rendering.PreviewFilename = fPreviewFilename }
	if fWeightMapFilename != "" { cfg.Rendering.WeightMapFilename = fWeightMapFilename }

	coadd, err := costack.NewCoaddFromConfig(cfg)
	if err != nil {
		Log.Fatal(err)
	}

	exps, err := costack.LoadInputs(cfg, flag.Args())
	if err != nil {
		Log.Fatal(err)
	}
	if len(exps) == 0 {
		Log.Fatal("no input exposures named on the command line")
	}

	warper := costack.NewAffineWarper()
	filters := costack.NewFilterTracker()

	for _,exp := range exps {
		warped, err := warper.Warp(coadd.GetBBox(), coadd.GetWcs(), exp)
		if err != nil {
			log.Printf("warp failed, skipping %s: %v\n", exp, err)
			continue
		}

		overlap, weight, err := coadd.AddExposure(warped, fWeightFactor)
		if err != nil {
			// Recoverable - a degenerate exposure just doesn't contribute
			log.Printf("add failed, skipping %s: %v\n", exp, err)
			continue
		}

		filters.Add(exp.Filter)
		log.Printf("added %s: overlap=%v, weight=%0.3g\n", exp, overlap, weight)
	}

	final := coadd.GetCoadd()
	log.Printf("coadd image:  %s\n", final.Image.Stats())
	log.Printf("weight map:   %s\n", coadd.GetWeightMap().Stats())
	log.Printf("filter:       %s\n", filters.Filter())
	log.Printf("weight histogram:\n%s\n", costack.WeightHist)

	if err := costack.WriteCoaddHDR(final.Image, cfg.Rendering.OutputFilename); err != nil {
		Log.Fatal(err)
	}
	if err := costack.WriteCoaddPreview(final.Image, "coadd", cfg.Rendering.PreviewFilename); err != nil {
		Log.Fatal(err)
	}
	if err := costack.WriteWeightMapPNG(coadd.GetWeightMap(), cfg.Rendering.WeightMapFilename); err != nil {
		Log.Fatal(err)
	}

	log.Printf("output files written '%s', '%s', '%s'\n", cfg.Rendering.OutputFilename,
		cfg.Rendering.PreviewFilename, cfg.Rendering.WeightMapFilename)
}

func loadConfig(args []string) (costack.Configuration, error) {
	for _,arg := range args {
		if strings.ToLower(filepath.Ext(arg)) == ".yaml" {
			cfg, err := costack.LoadConfiguration(arg)
			if err == nil {
				log.Printf("Loaded base configuration from %s\n", arg)
			}
			return cfg, err
		}
	}
	return costack.Configuration{}, fmt.Errorf("no .yaml config file named on the command line")
}
