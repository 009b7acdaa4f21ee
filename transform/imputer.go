package transform

import (
	"sort"
	"strconv"

	"github.com/hungtranvg62/mlproject/apperr"
	"github.com/hungtranvg62/mlproject/dataset"
)

// MedianImputer replaces missing numeric cells with the column median
// learned at fit time. The median is robust to outliers, which the raw
// score columns do have.
type MedianImputer struct {
	Columns []string
	Medians map[string]float64
	Fitted  bool
}

func NewMedianImputer(columns []string) *MedianImputer {
	return &MedianImputer{Columns: columns}
}

func (m *MedianImputer) Name() string { return "median_imputer" }

func (m *MedianImputer) Fit(tbl *dataset.Table) error {
	medians := make(map[string]float64, len(m.Columns))
	for _, name := range m.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return err
		}
		var values []float64
		for i, cell := range cells {
			if dataset.IsMissing(cell) {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return apperr.Wrap(apperr.KindData, err, "column %q has non-numeric value %q at row %d", name, cell, i)
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			return apperr.New(apperr.KindTransform, "column %q is entirely missing, cannot impute a median", name)
		}
		medians[name] = median(values)
	}
	m.Medians = medians
	m.Fitted = true
	return nil
}

func (m *MedianImputer) Apply(tbl *dataset.Table) (*dataset.Table, error) {
	if !m.Fitted {
		return nil, apperr.New(apperr.KindTransform, "median imputer used before fit")
	}
	replaced := make(map[string][]string, len(m.Columns))
	for _, name := range m.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		filled := strconv.FormatFloat(m.Medians[name], 'g', -1, 64)
		out := make([]string, len(cells))
		for i, cell := range cells {
			if dataset.IsMissing(cell) {
				out[i] = filled
			} else {
				out[i] = cell
			}
		}
		replaced[name] = out
	}
	return replaceColumns(tbl, replaced)
}

// ModeImputer replaces missing categorical cells with the most frequent
// category learned at fit time. Frequency ties break lexicographically
// so repeated fits stay deterministic.
type ModeImputer struct {
	Columns []string
	Modes   map[string]string
	Fitted  bool
}

func NewModeImputer(columns []string) *ModeImputer {
	return &ModeImputer{Columns: columns}
}

func (m *ModeImputer) Name() string { return "mode_imputer" }

func (m *ModeImputer) Fit(tbl *dataset.Table) error {
	modes := make(map[string]string, len(m.Columns))
	for _, name := range m.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return err
		}
		counts := make(map[string]int)
		for _, cell := range cells {
			if dataset.IsMissing(cell) {
				continue
			}
			counts[cell]++
		}
		if len(counts) == 0 {
			return apperr.New(apperr.KindTransform, "column %q is entirely missing, cannot impute a mode", name)
		}
		categories := make([]string, 0, len(counts))
		for category := range counts {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		best := categories[0]
		for _, category := range categories[1:] {
			if counts[category] > counts[best] {
				best = category
			}
		}
		modes[name] = best
	}
	m.Modes = modes
	m.Fitted = true
	return nil
}

func (m *ModeImputer) Apply(tbl *dataset.Table) (*dataset.Table, error) {
	if !m.Fitted {
		return nil, apperr.New(apperr.KindTransform, "mode imputer used before fit")
	}
	replaced := make(map[string][]string, len(m.Columns))
	for _, name := range m.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(cells))
		for i, cell := range cells {
			if dataset.IsMissing(cell) {
				out[i] = m.Modes[name]
			} else {
				out[i] = cell
			}
		}
		replaced[name] = out
	}
	return replaceColumns(tbl, replaced)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
