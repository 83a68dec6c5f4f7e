// Package series holds the time-series model shared by the dynamic-response
// reports: named channels of (time, value) samples coming from either the
// simulation output or the measurement rig. Simulated and measured channels
// are kept on their own time grids; overlay happens at plot time without
// any resampling.
package series

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissingChannel reports a channel lookup for a name the dataset
	// does not carry.
	ErrMissingChannel = errors.New("missing channel")

	// ErrInvalidInput reports an empty or malformed data table.
	ErrInvalidInput = errors.New("invalid input")
)

// Sample is one (time, value) point. Time is seconds from run start.
type Sample struct {
	T float64
	V float64
}

// Series is an ordered sequence of samples on one channel.
type Series []Sample

// Times returns the time column.
func (s Series) Times() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.T
	}
	return out
}

// Values returns the value column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.V
	}
	return out
}

// MaxTime returns the largest timestamp in the series, 0 for an empty one.
func (s Series) MaxTime() float64 {
	max := 0.0
	for _, p := range s {
		if p.T > max {
			max = p.T
		}
	}
	return max
}

// Shift returns a copy of the series with dv added to every value. Used to
// apply the bed-height offset to measured levels.
func (s Series) Shift(dv float64) Series {
	out := make(Series, len(s))
	for i, p := range s {
		out[i] = Sample{T: p.T, V: p.V + dv}
	}
	return out
}

// FromSlices pairs a time column with a value column.
func FromSlices(t, v []float64) (Series, error) {
	if len(t) != len(v) {
		return nil, fmt.Errorf("%w: time and value columns differ in length (%d vs %d)", ErrInvalidInput, len(t), len(v))
	}
	s := make(Series, len(t))
	for i := range t {
		s[i] = Sample{T: t[i], V: v[i]}
	}
	return s, nil
}

// ValveChannel names the actuator command channel in both datasets.
const ValveChannel = "valve"

// LevelChannel names the bed-level channel for a probe position in meters.
// Positions are formatted to centimeter precision so simulated and measured
// datasets agree on the key.
func LevelChannel(pos float64) string {
	return fmt.Sprintf("level_%.2fm", pos)
}

// Dataset is a named collection of channels from one source (one simulation
// run or one measurement log).
type Dataset struct {
	name     string
	channels map[string]Series
}

// NewDataset returns an empty dataset labeled with its source name.
func NewDataset(name string) *Dataset {
	return &Dataset{
		name:     name,
		channels: make(map[string]Series),
	}
}

// Name returns the source label given at construction.
func (d *Dataset) Name() string { return d.name }

// Add stores a channel, replacing any previous series under the same name.
func (d *Dataset) Add(channel string, s Series) {
	d.channels[channel] = s
}

// Channel returns the series stored under the given name.
func (d *Dataset) Channel(channel string) (Series, error) {
	s, ok := d.channels[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q in dataset %q", ErrMissingChannel, channel, d.name)
	}
	return s, nil
}

// Level returns the bed-level series for a probe position.
func (d *Dataset) Level(pos float64) (Series, error) {
	return d.Channel(LevelChannel(pos))
}

// Channels returns the channel names in sorted order.
func (d *Dataset) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for n := range d.channels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MaxTime returns the largest timestamp across all channels.
func (d *Dataset) MaxTime() float64 {
	max := 0.0
	for _, s := range d.channels {
		if t := s.MaxTime(); t > max {
			max = t
		}
	}
	return max
}
