// postdynamic renders the step-response comparison figures for one test
// run: simulated model output overlaid on the rig measurements.
//
// Inputs are two CSV datasets (header row names the channels, first column
// is time in seconds) and a yaml run configuration.
//
// Output:
//   <output-dir>/stepRespContr<run>.tiff
//   <output-dir>/stepRespValve<run>.tiff
//   <output-dir>/stepRespAll<run>.tiff
// and, for the reference run, de-titled Figure8/9/10 in tiff and eps.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fluidbed/postproc/internal/export"
	"github.com/fluidbed/postproc/internal/report"
	"github.com/fluidbed/postproc/internal/series"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to config file (default: ./config.yaml)")
	simFile := flag.String("sim", "", "CSV dataset with the simulated channels")
	measFile := flag.String("meas", "", "CSV dataset with the measured channels")
	run := flag.Int("run", 1, "Test run index used in titles and file names")
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

	if *simFile == "" || *measFile == "" {
		log.Error("both -sim and -meas datasets are required, run with -h for help")
		os.Exit(1)
	}

	filename, _ := filepath.Abs(*cfgFile)
	cfg, err := report.NewConfig(filename)
	if err != nil {
		log.Errorf("error reading config file: %v", err)
		os.Exit(1)
	}

	sim, err := series.ReadCSV(*simFile)
	if err != nil {
		log.Errorf("cannot load simulated dataset: %v", err)
		os.Exit(1)
	}
	meas, err := series.ReadCSV(*measFile)
	if err != nil {
		log.Errorf("cannot load measured dataset: %v", err)
		os.Exit(1)
	}

	sink, err := export.NewSink(cfg.OutputDir)
	if err != nil {
		log.Errorf("cannot prepare output directory: %v", err)
		os.Exit(1)
	}

	rep, err := report.New(cfg, sink, log)
	if err != nil {
		log.Errorf("cannot create reporter: %v", err)
		os.Exit(1)
	}
	if err := rep.Report(*run, sim, meas); err != nil {
		log.Errorf("report generation failed: %v", err)
		os.Exit(1)
	}
}
