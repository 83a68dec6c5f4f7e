package export

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

func testPlot(t *testing.T) *plot.Plot {
	t.Helper()
	p := plot.New()
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	p.Add(line)
	return p
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s, err := NewSink(dir)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if err := s.EnsureDir(); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("output path is not a directory")
	}
}

func TestSaveFormats(t *testing.T) {
	s, err := NewSink(t.TempDir())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	for _, name := range []string{"a.png", "b.tiff", "c.eps"} {
		if err := s.Save(testPlot(t), 4, 3, name); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		info, err := os.Stat(s.Path(name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	s, err := NewSink(t.TempDir())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if err := s.Save(testPlot(t), 4, 3, "a.bmp"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
