package transform

import (
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/hungtranvg62/mlproject/apperr"
	"github.com/hungtranvg62/mlproject/dataset"
)

// Transformer is the fit/transform contract. Fit learns state from a
// table; Transform maps a table with the same column schema to a
// numeric matrix. Transform before Fit is an error.
type Transformer interface {
	Fit(tbl *dataset.Table) error
	Transform(tbl *dataset.Table) (*mat.Dense, error)
}

// Step is a table-to-table stage inside a pipeline, such as imputation.
type Step interface {
	Name() string
	Fit(tbl *dataset.Table) error
	Apply(tbl *dataset.Table) (*dataset.Table, error)
}

// Encoder is the terminal pipeline stage that turns a cleaned table
// into a numeric matrix of fixed width.
type Encoder interface {
	Name() string
	Fit(tbl *dataset.Table) error
	Encode(tbl *dataset.Table) (*mat.Dense, error)
	Width() int
}

// Concrete step and encoder types travel inside interface fields when a
// fitted pipeline is serialized.
func init() {
	gob.Register(&MedianImputer{})
	gob.Register(&ModeImputer{})
	gob.Register(&NumericEncoder{})
	gob.Register(&OneHotEncoder{})
}

// Pipeline runs its steps in order over its columns, encodes the result
// and optionally rescales it. The fitted state of every stage is kept
// in exported fields so the whole pipeline serializes.
type Pipeline struct {
	PipelineName string
	Columns      []string
	Steps        []Step
	Encoder      Encoder
	Scaler       *StandardScaler
	Fitted       bool
}

var _ Transformer = (*Pipeline)(nil)

// Fit runs every stage on the pipeline's columns of tbl, threading each
// step's output into the next.
func (p *Pipeline) Fit(tbl *dataset.Table) error {
	if tbl.NumRows() == 0 {
		return apperr.New(apperr.KindTransform, "pipeline %q: empty input table", p.PipelineName)
	}
	cur, err := tbl.Select(p.Columns)
	if err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "pipeline %q", p.PipelineName)
	}
	for _, step := range p.Steps {
		if err := step.Fit(cur); err != nil {
			return err
		}
		if cur, err = step.Apply(cur); err != nil {
			return err
		}
	}
	if err := p.Encoder.Fit(cur); err != nil {
		return err
	}
	if p.Scaler != nil {
		m, err := p.Encoder.Encode(cur)
		if err != nil {
			return err
		}
		if err := p.Scaler.Fit(m); err != nil {
			return err
		}
	}
	p.Fitted = true
	return nil
}

// Transform applies the fitted stages to tbl.
func (p *Pipeline) Transform(tbl *dataset.Table) (*mat.Dense, error) {
	if !p.Fitted {
		return nil, apperr.New(apperr.KindTransform, "pipeline %q used before fit", p.PipelineName)
	}
	if tbl.NumRows() == 0 {
		return nil, apperr.New(apperr.KindTransform, "pipeline %q: empty input table", p.PipelineName)
	}
	cur, err := tbl.Select(p.Columns)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "pipeline %q", p.PipelineName)
	}
	for _, step := range p.Steps {
		if cur, err = step.Apply(cur); err != nil {
			return nil, err
		}
	}
	m, err := p.Encoder.Encode(cur)
	if err != nil {
		return nil, err
	}
	if p.Scaler != nil {
		return p.Scaler.Scale(m)
	}
	return m, nil
}

// replaceColumns rebuilds tbl with the given columns swapped out.
func replaceColumns(tbl *dataset.Table, replaced map[string][]string) (*dataset.Table, error) {
	columns := tbl.Columns()
	rows := make([][]string, tbl.NumRows())
	for i := range rows {
		rows[i] = make([]string, len(columns))
	}
	for j, name := range columns {
		cells, ok := replaced[name]
		if !ok {
			var err error
			if cells, err = tbl.Column(name); err != nil {
				return nil, err
			}
		}
		for i, cell := range cells {
			rows[i][j] = cell
		}
	}
	return dataset.NewTable(columns, rows)
}
