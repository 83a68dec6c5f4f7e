// Package chart wraps gonum/plot behind an explicit builder so that every
// figure is assembled on its own chart context instead of ambient
// current-figure state. The builder carries the publication styling shared
// by all figures and a legend built from an explicit entry list.
package chart

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/fluidbed/postproc/internal/series"
)

// ErrMissingAsset reports a pre-rendered asset (the inset reference figure)
// that is absent or unreadable.
var ErrMissingAsset = errors.New("missing asset")

// LegendEntry describes one legend row: a label and the line style drawn as
// its thumbnail. Entries are independent of the lines actually plotted.
type LegendEntry struct {
	Label string
	Style draw.LineStyle
}

// lineThumb draws a legend thumbnail for a LegendEntry.
type lineThumb struct {
	sty draw.LineStyle
}

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(t.sty, c.Min.X, y, c.Max.X, y)
}

// Builder assembles one chart. Zero-value is not usable; construct with New.
type Builder struct {
	p *plot.Plot
}

// New returns a builder for a titled, labeled, styled chart.
func New(title, xlabel, ylabel string) *Builder {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	style(p)
	return &Builder{p: p}
}

// Line adds a series as a line with the given style.
func (b *Builder) Line(s series.Series, sty draw.LineStyle) error {
	if len(s) == 0 {
		return fmt.Errorf("chart: empty series")
	}
	pts := make(plotter.XYs, len(s))
	for i, p := range s {
		pts[i].X = p.T
		pts[i].Y = p.V
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: cannot build line: %w", err)
	}
	line.LineStyle = sty
	b.p.Add(line)
	return nil
}

// VerticalMarker adds a vertical line at x spanning [ymin, ymax]. Used for
// the step-change instant on the actuator chart.
func (b *Builder) VerticalMarker(x, ymin, ymax float64, sty draw.LineStyle) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
	if err != nil {
		return fmt.Errorf("chart: cannot build marker: %w", err)
	}
	line.LineStyle = sty
	b.p.Add(line)
	return nil
}

// Inset decodes a pre-rendered image file and places it in data coordinates
// at [x0,x1]×[y0,y1].
func (b *Builder) Inset(path string, x0, y0, x1, y1 float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingAsset, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingAsset, path, err)
	}
	b.p.Add(plotter.NewImage(img, x0, y0, x1, y1))
	return nil
}

// Legend attaches the entry list as the chart legend.
func (b *Builder) Legend(entries []LegendEntry) {
	for _, e := range entries {
		b.p.Legend.Add(e.Label, lineThumb{sty: e.Style})
	}
	b.p.Legend.Top = true
}

// XRange pins the x axis to exactly [min, max].
func (b *Builder) XRange(min, max float64) {
	b.p.X.Min = min
	b.p.X.Max = max
}

// YRange pins the y axis to exactly [min, max].
func (b *Builder) YRange(min, max float64) {
	b.p.Y.Min = min
	b.p.Y.Max = max
}

// StripTitle removes the title for the de-titled publication exports.
func (b *Builder) StripTitle() {
	b.p.Title.Text = ""
}

// Plot exposes the underlying plot for export.
func (b *Builder) Plot() *plot.Plot {
	return b.p
}

// limitedTicker produces at most maxLabels evenly spaced tick labels
// formatted with labelFmt.
func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func style(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)

	p.X.LineStyle.Width = vg.Points(1.2)
	p.Y.LineStyle.Width = vg.Points(1.2)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)

	p.X.Tick.LineStyle.Width = vg.Points(1.0)
	p.Y.Tick.LineStyle.Width = vg.Points(1.0)
	p.X.Tick.Length = vg.Points(5)
	p.Y.Tick.Length = vg.Points(5)

	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.X.Tick.Marker = limitedTicker(8, "%.0f")
	p.Y.Tick.Marker = limitedTicker(8, "%.2f")
}
