// Package sieve computes the mean particle diameter from a sieve analysis
// and renders the particle-size distribution figure.
package sieve

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/fluidbed/postproc/internal/chart"
	"github.com/fluidbed/postproc/internal/series"
)

// ErrInvalidInput reports an empty or malformed sieve table.
var ErrInvalidInput = errors.New("invalid input")

// MeshBin is one row of a sieve analysis: screen aperture in meters and the
// mass fraction retained on that screen. Tables are ordered by strictly
// decreasing Size and end with the pan bin, Size = 0.
type MeshBin struct {
	Size    float64
	Residue float64
}

// DefaultTable is the sieve analysis of the bed material used in the study.
// Residues sum to 1 (mass conservation), not enforced here.
func DefaultTable() []MeshBin {
	return []MeshBin{
		{Size: 425e-6, Residue: 0.0},
		{Size: 300e-6, Residue: 0.022},
		{Size: 212e-6, Residue: 0.147},
		{Size: 150e-6, Residue: 0.475},
		{Size: 106e-6, Residue: 0.288},
		{Size: 75e-6, Residue: 0.064},
		{Size: 53e-6, Residue: 0.004},
		{Size: 0, Residue: 0.0},
	}
}

// MeanSizes returns the representative size per bin: the two-point average
// of the bin's aperture and the next one, except the last bin which keeps
// its aperture unchanged. Same length as the input.
func MeanSizes(bins []MeshBin) []float64 {
	out := make([]float64, len(bins))
	for i := range bins {
		if i == len(bins)-1 {
			out[i] = bins[i].Size
			continue
		}
		out[i] = (bins[i].Size + bins[i+1].Size) / 2
	}
	return out
}

// Diameter returns the residue-weighted mean particle diameter in meters.
func Diameter(bins []MeshBin) (float64, error) {
	if len(bins) == 0 {
		return 0, fmt.Errorf("%w: empty sieve table", ErrInvalidInput)
	}
	mean := MeanSizes(bins)
	d := 0.0
	for i, b := range bins {
		d += b.Residue * mean[i]
	}
	return d, nil
}

// DistributionChart builds the particle-size distribution figure: residue
// against raw aperture ("Sieve") and against the representative size
// ("Linear"), both in micrometers, x axis spanning [0, largest aperture].
func DistributionChart(bins []MeshBin) (*chart.Builder, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("%w: empty sieve table", ErrInvalidInput)
	}

	const toMicron = 1e6
	mean := MeanSizes(bins)

	raw := make(series.Series, len(bins))
	lin := make(series.Series, len(bins))
	maxSize := 0.0
	for i, bin := range bins {
		raw[i] = series.Sample{T: bin.Size * toMicron, V: bin.Residue}
		lin[i] = series.Sample{T: mean[i] * toMicron, V: bin.Residue}
		if bin.Size > maxSize {
			maxSize = bin.Size
		}
	}

	b := chart.New("Particle size distribution", "mesh size (um)", "residue (-)")

	sieveStyle := draw.LineStyle{
		Color: plotutil.Color(0),
		Width: vg.Points(1.5),
	}
	linearStyle := draw.LineStyle{
		Color:  plotutil.Color(1),
		Width:  vg.Points(1.5),
		Dashes: plotutil.Dashes(1),
	}

	if err := b.Line(raw, sieveStyle); err != nil {
		return nil, err
	}
	if err := b.Line(lin, linearStyle); err != nil {
		return nil, err
	}

	b.Legend([]chart.LegendEntry{
		{Label: "Sieve", Style: sieveStyle},
		{Label: "Linear", Style: linearStyle},
	})
	b.XRange(0, maxSize*toMicron)

	return b, nil
}
