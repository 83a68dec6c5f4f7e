// Package export writes rendered charts to an output directory. Raster
// formats are encoded at 300 DPI for the print pipeline; eps serves the
// vector pipeline.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrIOFailure reports a directory or file write problem.
var ErrIOFailure = errors.New("i/o failure")

const rasterDPI = 300

// Sink exports charts into one output directory.
type Sink struct {
	Dir string
}

// NewSink returns a sink rooted at dir, creating the directory if absent.
func NewSink(dir string) (*Sink, error) {
	s := &Sink{Dir: dir}
	if err := s.EnsureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureDir creates the output directory. Safe to call repeatedly.
func (s *Sink) EnsureDir() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: cannot create directory %s: %v", ErrIOFailure, s.Dir, err)
	}
	return nil
}

// Path returns the full output path for a file name.
func (s *Sink) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Save renders the plot at widthIn×heightIn inches and writes it under the
// sink directory. The format follows the file extension: png, tif/tiff, eps.
func (s *Sink) Save(p *plot.Plot, widthIn, heightIn float64, name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".tif", ".tiff", ".eps":
	default:
		return fmt.Errorf("export: unsupported format %q for %s", ext, name)
	}

	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("%w: cannot create %s: %v", ErrIOFailure, name, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)

	switch ext {
	case ".eps":
		c := vgeps.NewTitle(w, h, name)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(bw)
	default:
		c := vgimg.NewWith(
			vgimg.UseWH(w, h),
			vgimg.UseDPI(rasterDPI),
		)
		p.Draw(draw.New(c))
		if ext == ".png" {
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(bw)
		} else {
			_, err = vgimg.TiffCanvas{Canvas: c}.WriteTo(bw)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: cannot encode %s: %v", ErrIOFailure, name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: cannot write %s: %v", ErrIOFailure, name, err)
	}
	return nil
}
