package transform

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/hungtranvg62/mlproject/apperr"
	"github.com/hungtranvg62/mlproject/dataset"
)

// UnknownPolicy decides what happens when a category shows up at
// transform time that was never seen at fit time.
type UnknownPolicy string

const (
	// UnknownError rejects the transform with a descriptive error.
	UnknownError UnknownPolicy = "error"
	// UnknownIgnore encodes the value as an all-zero indicator segment.
	UnknownIgnore UnknownPolicy = "ignore"
)

// ParsePolicy maps a configuration string to an UnknownPolicy.
func ParsePolicy(s string) (UnknownPolicy, error) {
	switch UnknownPolicy(s) {
	case UnknownError, UnknownIgnore:
		return UnknownPolicy(s), nil
	case "":
		return UnknownError, nil
	default:
		return "", apperr.New(apperr.KindConfig, "unknown one-hot policy %q", s)
	}
}

// NumericEncoder parses its columns into a float64 matrix, one output
// column per input column.
type NumericEncoder struct {
	Columns []string
	Fitted  bool
}

func NewNumericEncoder(columns []string) *NumericEncoder {
	return &NumericEncoder{Columns: columns}
}

func (e *NumericEncoder) Name() string { return "numeric_encoder" }

func (e *NumericEncoder) Width() int { return len(e.Columns) }

func (e *NumericEncoder) Fit(tbl *dataset.Table) error {
	for _, name := range e.Columns {
		if !tbl.HasColumn(name) {
			return apperr.New(apperr.KindConfig, "unknown numeric column %q", name)
		}
	}
	e.Fitted = true
	return nil
}

func (e *NumericEncoder) Encode(tbl *dataset.Table) (*mat.Dense, error) {
	if !e.Fitted {
		return nil, apperr.New(apperr.KindTransform, "numeric encoder used before fit")
	}
	rows := tbl.NumRows()
	width := e.Width()
	data := make([]float64, rows*width)
	for j, name := range e.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		for i, cell := range cells {
			if dataset.IsMissing(cell) {
				return nil, apperr.New(apperr.KindTransform, "column %q still has a missing value at row %d after imputation", name, i)
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, apperr.Wrap(apperr.KindData, err, "column %q has non-numeric value %q at row %d", name, cell, i)
			}
			data[i*width+j] = v
		}
	}
	return mat.NewDense(rows, width, data), nil
}

// OneHotEncoder expands each categorical column into one indicator
// column per category. The vocabulary is fixed at fit time and sorted,
// so the output schema is deterministic regardless of row order.
type OneHotEncoder struct {
	Columns    []string
	Categories map[string][]string // per column, sorted
	Policy     UnknownPolicy
	Fitted     bool
}

func NewOneHotEncoder(columns []string, policy UnknownPolicy) *OneHotEncoder {
	if policy == "" {
		policy = UnknownError
	}
	return &OneHotEncoder{Columns: columns, Policy: policy}
}

func (e *OneHotEncoder) Name() string { return "one_hot_encoder" }

func (e *OneHotEncoder) Width() int {
	width := 0
	for _, name := range e.Columns {
		width += len(e.Categories[name])
	}
	return width
}

func (e *OneHotEncoder) Fit(tbl *dataset.Table) error {
	categories := make(map[string][]string, len(e.Columns))
	for _, name := range e.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return apperr.Wrap(apperr.KindConfig, err, "unknown categorical column")
		}
		set := make(map[string]struct{})
		for _, cell := range cells {
			if dataset.IsMissing(cell) {
				return apperr.New(apperr.KindTransform, "column %q still has a missing value, impute before encoding", name)
			}
			set[cell] = struct{}{}
		}
		sorted := make([]string, 0, len(set))
		for category := range set {
			sorted = append(sorted, category)
		}
		sort.Strings(sorted)
		categories[name] = sorted
	}
	e.Categories = categories
	e.Fitted = true
	return nil
}

func (e *OneHotEncoder) Encode(tbl *dataset.Table) (*mat.Dense, error) {
	if !e.Fitted {
		return nil, apperr.New(apperr.KindTransform, "one-hot encoder used before fit")
	}
	rows := tbl.NumRows()
	width := e.Width()
	data := make([]float64, rows*width)
	offset := 0
	for _, name := range e.Columns {
		cells, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		categories := e.Categories[name]
		index := make(map[string]int, len(categories))
		for pos, category := range categories {
			index[category] = pos
		}
		for i, cell := range cells {
			pos, ok := index[cell]
			if !ok {
				if e.Policy == UnknownError {
					return nil, apperr.New(apperr.KindTransform, "category %q in column %q was not seen during fit", cell, name)
				}
				continue // ignore: leave the segment all-zero
			}
			data[i*width+offset+pos] = 1
		}
		offset += len(categories)
	}
	return mat.NewDense(rows, width, data), nil
}
