package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SetpointConfig describes the commanded bed-level step applied during the
// test runs: the level held before the step and the level commanded after.
type SetpointConfig struct {
	Initial float64 `yaml:"initial"`
	Target  float64 `yaml:"target"`
}

// Config holds the run parameters of the dynamic-response reports.
type Config struct {
	// OutputDir receives every exported chart.
	OutputDir string `yaml:"output-dir"`

	// Probes are the bed-level probe positions in meters, low to high.
	Probes []float64 `yaml:"probe-positions"`

	// ControlProbe indexes into Probes and selects the position used for
	// closed-loop control.
	ControlProbe int `yaml:"control-probe"`

	// BedOffset is added to every measured level before plotting. The rig
	// reports levels relative to the distributor plate.
	BedOffset float64 `yaml:"bed-height-offset"`

	// StepTime is the setpoint step instant in seconds from run start.
	StepTime float64 `yaml:"step-time"`

	Setpoint SetpointConfig `yaml:"setpoint"`

	// ReferenceRun selects the run whose charts additionally become the
	// de-titled publication figures.
	ReferenceRun int `yaml:"reference-run"`

	// InsetImage is the pre-rendered reference figure placed inside the
	// multi-probe chart.
	InsetImage string `yaml:"inset-image"`
}

// NewConfig creates a config object from the given yaml file.
func NewConfig(filename string) (Config, error) {
	var cfg Config

	raw, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("config: cannot read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse %s: %w", filename, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output-dir is required")
	}
	if len(c.Probes) == 0 {
		return fmt.Errorf("at least one probe position is required")
	}
	if c.ControlProbe < 0 || c.ControlProbe >= len(c.Probes) {
		return fmt.Errorf("control-probe %d outside probe list of length %d", c.ControlProbe, len(c.Probes))
	}
	return nil
}
