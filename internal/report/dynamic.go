// Package report renders the step-response comparison figures for one test
// run: controlled bed level, actuator command, and the multi-probe overlay.
package report

import (
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/fluidbed/postproc/internal/chart"
	"github.com/fluidbed/postproc/internal/export"
	"github.com/fluidbed/postproc/internal/series"
)

// Chart geometry shared by all three figures, in inches.
const (
	chartWidthIn  = 6.0
	chartHeightIn = 4.5
)

// Reporter renders and exports the dynamic-response charts. Each call to
// Report is stateless; the reporter only carries configuration and the
// export sink.
type Reporter struct {
	cfg  Config
	sink *export.Sink
	log  *zap.SugaredLogger
}

// New returns a reporter for the given configuration.
func New(cfg Config, sink *export.Sink, logger *zap.SugaredLogger) (*Reporter, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &Reporter{cfg: cfg, sink: sink, log: logger}, nil
}

// Report renders the three comparison charts for one test run and exports
// them as stepRespContr<run>, stepRespValve<run> and stepRespAll<run>. For
// the configured reference run each chart is additionally exported twice
// more, de-titled, as Figure<n> in tiff and eps for the two publication
// pipelines. A failing chart aborts the remaining ones; files already
// written stay on disk.
func (r *Reporter) Report(run int, sim, meas *series.Dataset) error {
	charts := []struct {
		kind   string
		figure int
		build  func(run int, sim, meas *series.Dataset) (*chart.Builder, error)
	}{
		{kind: "Contr", figure: 8, build: r.controlledLevelChart},
		{kind: "Valve", figure: 9, build: r.actuatorChart},
		{kind: "All", figure: 10, build: r.multiProbeChart},
	}

	for _, c := range charts {
		b, err := c.build(run, sim, meas)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("stepResp%s%d.tiff", c.kind, run)
		if err := r.sink.Save(b.Plot(), chartWidthIn, chartHeightIn, name); err != nil {
			return err
		}
		r.log.Infof("wrote %s", r.sink.Path(name))

		if run != r.cfg.ReferenceRun {
			continue
		}
		b.StripTitle()
		for _, ext := range []string{"tiff", "eps"} {
			fig := fmt.Sprintf("Figure%d.%s", c.figure, ext)
			if err := r.sink.Save(b.Plot(), chartWidthIn, chartHeightIn, fig); err != nil {
				return err
			}
			r.log.Infof("wrote %s", r.sink.Path(fig))
		}
	}
	return nil
}

// setpointSeries synthesizes the commanded level trajectory over [0, tmax]:
// the initial level until the step instant, the target level after.
func (r *Reporter) setpointSeries(tmax float64) series.Series {
	return series.Series{
		{T: 0, V: r.cfg.Setpoint.Initial},
		{T: r.cfg.StepTime, V: r.cfg.Setpoint.Initial},
		{T: r.cfg.StepTime, V: r.cfg.Setpoint.Target},
		{T: tmax, V: r.cfg.Setpoint.Target},
	}
}

func (r *Reporter) controlledLevelChart(run int, sim, meas *series.Dataset) (*chart.Builder, error) {
	pos := r.cfg.Probes[r.cfg.ControlProbe]

	measured, err := meas.Level(pos)
	if err != nil {
		return nil, err
	}
	measured = measured.Shift(r.cfg.BedOffset)

	simulated, err := sim.Level(pos)
	if err != nil {
		return nil, err
	}

	tmax := math.Max(measured.MaxTime(), simulated.MaxTime())
	setpoint := r.setpointSeries(tmax)

	measStyle := draw.LineStyle{Color: plotutil.Color(0), Width: vg.Points(1.5)}
	simStyle := draw.LineStyle{Color: plotutil.Color(1), Width: vg.Points(1.5), Dashes: plotutil.Dashes(1)}
	spStyle := draw.LineStyle{Color: color.Black, Width: vg.Points(1), Dashes: plotutil.Dashes(2)}

	b := chart.New(fmt.Sprintf("Controlled bed level, test %d", run), "t (s)", "bed level (m)")
	if err := b.Line(measured, measStyle); err != nil {
		return nil, err
	}
	if err := b.Line(simulated, simStyle); err != nil {
		return nil, err
	}
	if err := b.Line(setpoint, spStyle); err != nil {
		return nil, err
	}
	b.Legend([]chart.LegendEntry{
		{Label: "measured", Style: measStyle},
		{Label: "simulated", Style: simStyle},
		{Label: "setpoint", Style: spStyle},
	})
	b.XRange(0, tmax)
	return b, nil
}

func (r *Reporter) actuatorChart(run int, sim, meas *series.Dataset) (*chart.Builder, error) {
	measured, err := meas.Channel(series.ValveChannel)
	if err != nil {
		return nil, err
	}
	simulated, err := sim.Channel(series.ValveChannel)
	if err != nil {
		return nil, err
	}

	vals := append(measured.Values(), simulated.Values()...)
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: empty actuator channels", series.ErrInvalidInput)
	}
	tmax := math.Max(measured.MaxTime(), simulated.MaxTime())

	measStyle := draw.LineStyle{Color: plotutil.Color(0), Width: vg.Points(1.5)}
	simStyle := draw.LineStyle{Color: plotutil.Color(1), Width: vg.Points(1.5), Dashes: plotutil.Dashes(1)}
	markStyle := draw.LineStyle{Color: color.Gray{Y: 128}, Width: vg.Points(1), Dashes: plotutil.Dashes(2)}

	b := chart.New(fmt.Sprintf("Actuator command, test %d", run), "t (s)", "valve opening (-)")
	if err := b.Line(measured, measStyle); err != nil {
		return nil, err
	}
	if err := b.Line(simulated, simStyle); err != nil {
		return nil, err
	}
	if err := b.VerticalMarker(r.cfg.StepTime, floats.Min(vals), floats.Max(vals), markStyle); err != nil {
		return nil, err
	}
	b.Legend([]chart.LegendEntry{
		{Label: "measured", Style: measStyle},
		{Label: "simulated", Style: simStyle},
	})
	b.XRange(0, tmax)
	return b, nil
}

func (r *Reporter) multiProbeChart(run int, sim, meas *series.Dataset) (*chart.Builder, error) {
	b := chart.New(fmt.Sprintf("Bed level at all probes, test %d", run), "t (s)", "bed level (m)")

	var (
		measuredVals []float64
		tmax         float64
		entries      []chart.LegendEntry
	)
	for i, pos := range r.cfg.Probes {
		measured, err := meas.Level(pos)
		if err != nil {
			return nil, err
		}
		measured = measured.Shift(r.cfg.BedOffset)

		simulated, err := sim.Level(pos)
		if err != nil {
			return nil, err
		}

		solid := draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(1.2)}
		dashed := draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(1.2), Dashes: plotutil.Dashes(1)}

		if err := b.Line(measured, solid); err != nil {
			return nil, err
		}
		if err := b.Line(simulated, dashed); err != nil {
			return nil, err
		}

		measuredVals = append(measuredVals, measured.Values()...)
		tmax = math.Max(tmax, math.Max(measured.MaxTime(), simulated.MaxTime()))
		entries = append(entries, chart.LegendEntry{
			Label: fmt.Sprintf("z = %.2f m", pos),
			Style: solid,
		})
	}
	if len(measuredVals) == 0 {
		return nil, fmt.Errorf("%w: no measured probe data", series.ErrInvalidInput)
	}

	// Measured data sets the window: 5% headroom below, 15% above to leave
	// room for the legend and the inset.
	ymin := floats.Min(measuredVals)
	ymax := floats.Max(measuredVals)
	span := ymax - ymin
	ylo := ymin - 0.05*span
	yhi := ymax + 0.15*span
	b.YRange(ylo, yhi)

	// Inset reference figure sits in the lower right quarter of the chart.
	x0 := 0.60 * tmax
	x1 := 0.92 * tmax
	y0 := ylo + 0.06*(yhi-ylo)
	y1 := ylo + 0.38*(yhi-ylo)
	if err := b.Inset(r.cfg.InsetImage, x0, y0, x1, y1); err != nil {
		return nil, err
	}

	entries = append(entries,
		chart.LegendEntry{Label: "measured", Style: draw.LineStyle{Color: color.Black, Width: vg.Points(1.2)}},
		chart.LegendEntry{Label: "simulated", Style: draw.LineStyle{Color: color.Black, Width: vg.Points(1.2), Dashes: plotutil.Dashes(1)}},
	)
	b.Legend(entries)
	b.XRange(0, tmax)
	return b, nil
}
