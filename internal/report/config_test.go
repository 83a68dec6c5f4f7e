package report

import (
	"os"
	"path/filepath"
	"testing"
)

const configFixture = `output-dir: figures
probe-positions: [0.21, 0.45, 0.69, 0.93]
control-probe: 2
bed-height-offset: 0.04
step-time: 10
setpoint:
  initial: 0.30
  target: 0.40
reference-run: 1
inset-image: assets/rig.png
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return path
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, configFixture))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.OutputDir != "figures" {
		t.Fatalf("output dir %q", cfg.OutputDir)
	}
	if len(cfg.Probes) != 4 || cfg.Probes[3] != 0.93 {
		t.Fatalf("unexpected probes %v", cfg.Probes)
	}
	if cfg.ControlProbe != 2 {
		t.Fatalf("control probe %d, want 2", cfg.ControlProbe)
	}
	if cfg.Setpoint.Target != 0.40 {
		t.Fatalf("setpoint target %g, want 0.40", cfg.Setpoint.Target)
	}
}

func TestNewConfigControlProbeOutOfRange(t *testing.T) {
	bad := `output-dir: figures
probe-positions: [0.21]
control-probe: 3
`
	if _, err := NewConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected error for out-of-range control probe")
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNewConfigBadYaml(t *testing.T) {
	if _, err := NewConfig(writeConfig(t, "probe-positions: [0.21")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
