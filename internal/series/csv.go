package series

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ReadCSV loads a dataset from a CSV table. The header row names the
// channels; the first column is time in seconds and every other column
// becomes a channel sampled on that time grid. The dataset is labeled with
// the file path.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: cannot open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: cannot parse %s: %w", path, err)
	}
	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, fmt.Errorf("%w: %s needs a header row and at least one data row", ErrInvalidInput, path)
	}

	header := rows[0]
	cols := make([][]float64, len(header))
	for i := range cols {
		cols[i] = make([]float64, 0, len(rows)-1)
	}
	for rowIdx, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: %s row %d has %d fields, header has %d", ErrInvalidInput, path, rowIdx+2, len(row), len(header))
		}
		for c, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d column %q: %v", ErrInvalidInput, path, rowIdx+2, header[c], err)
			}
			cols[c] = append(cols[c], v)
		}
	}

	d := NewDataset(path)
	for c := 1; c < len(header); c++ {
		s, err := FromSlices(cols[0], cols[c])
		if err != nil {
			return nil, err
		}
		d.Add(header[c], s)
	}
	return d, nil
}
