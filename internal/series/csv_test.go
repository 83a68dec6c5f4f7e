package series

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFixture(t, "t,valve,level_0.21m\n0,0.2,0.31\n1.5,0.8,0.35\n3,0.8,0.4\n")

	d, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	valve, err := d.Channel(ValveChannel)
	if err != nil {
		t.Fatalf("valve channel: %v", err)
	}
	if len(valve) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(valve))
	}
	if valve[1].T != 1.5 || valve[1].V != 0.8 {
		t.Fatalf("unexpected sample %+v", valve[1])
	}

	level, err := d.Level(0.21)
	if err != nil {
		t.Fatalf("level channel: %v", err)
	}
	if level.MaxTime() != 3 {
		t.Fatalf("level max time %g, want 3", level.MaxTime())
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeFixture(t, "t,valve\n")
	if _, err := ReadCSV(path); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReadCSVBadNumber(t *testing.T) {
	path := writeFixture(t, "t,valve\n0,0.2\n1,abc\n")
	if _, err := ReadCSV(path); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
