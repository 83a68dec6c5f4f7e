// particlesize computes the mean particle diameter of the bed material from
// its sieve analysis and exports the particle-size distribution figure.
//
// Output:
//   <out>/particleSize.tiff
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fluidbed/postproc/internal/export"
	"github.com/fluidbed/postproc/internal/sieve"
)

const (
	chartWidthIn  = 6.0
	chartHeightIn = 4.5
)

func main() {
	outDir := flag.String("out", "output", "Output directory for the exported figure")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	var zapLogger *zap.Logger
	var err error
	if *debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Printf("can't initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	sink, err := export.NewSink(*outDir)
	if err != nil {
		log.Errorf("cannot prepare output directory: %v", err)
		os.Exit(1)
	}

	bins := sieve.DefaultTable()

	d, err := sieve.Diameter(bins)
	if err != nil {
		log.Errorf("diameter computation failed: %v", err)
		os.Exit(1)
	}
	log.Infof("mean particle diameter: %.1f um", d*1e6)

	b, err := sieve.DistributionChart(bins)
	if err != nil {
		log.Errorf("chart assembly failed: %v", err)
		os.Exit(1)
	}
	if err := sink.Save(b.Plot(), chartWidthIn, chartHeightIn, "particleSize.tiff"); err != nil {
		log.Errorf("chart export failed: %v", err)
		os.Exit(1)
	}
	log.Infof("wrote %s", sink.Path("particleSize.tiff"))
}
