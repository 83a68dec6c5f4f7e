package sieve

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultTableMassConservation(t *testing.T) {
	sum := 0.0
	for _, b := range DefaultTable() {
		sum += b.Residue
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("residues sum to %.12f, want 1.0", sum)
	}
}

func TestDefaultTableOrdering(t *testing.T) {
	bins := DefaultTable()
	for i := 1; i < len(bins); i++ {
		if bins[i].Size >= bins[i-1].Size {
			t.Fatalf("sizes not strictly decreasing at bin %d: %g >= %g", i, bins[i].Size, bins[i-1].Size)
		}
	}
	if bins[len(bins)-1].Size != 0 {
		t.Fatalf("last bin is not the pan: size %g", bins[len(bins)-1].Size)
	}
}

func TestMeanSizes(t *testing.T) {
	bins := DefaultTable()
	mean := MeanSizes(bins)
	if len(mean) != len(bins) {
		t.Fatalf("mean sizes length %d, want %d", len(mean), len(bins))
	}
	last := len(bins) - 1
	if mean[last] != bins[last].Size {
		t.Fatalf("last mean size %g, want unchanged %g", mean[last], bins[last].Size)
	}
	want := (bins[0].Size + bins[1].Size) / 2
	if mean[0] != want {
		t.Fatalf("first mean size %g, want %g", mean[0], want)
	}
}

func TestDiameterPinned(t *testing.T) {
	// Regression oracle for the study's sieve analysis, hand-computed from
	// the table: 123.305 um.
	d, err := Diameter(DefaultTable())
	if err != nil {
		t.Fatalf("diameter: %v", err)
	}
	if math.Abs(d-123.305e-6) > 1e-12 {
		t.Fatalf("diameter %.9g m, want 123.305e-6 m", d)
	}
}

func TestDiameterEmptyTable(t *testing.T) {
	_, err := Diameter(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDistributionChartXRange(t *testing.T) {
	b, err := DistributionChart(DefaultTable())
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	p := b.Plot()
	if p.X.Min != 0 {
		t.Fatalf("x min %g, want 0", p.X.Min)
	}
	if p.X.Max != 425 {
		t.Fatalf("x max %g um, want 425", p.X.Max)
	}
}

func TestDistributionChartEmptyTable(t *testing.T) {
	_, err := DistributionChart(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
