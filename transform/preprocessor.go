package transform

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hungtranvg62/mlproject/apperr"
	"github.com/hungtranvg62/mlproject/dataset"
)

// ColumnTransformer is the preprocessor the pipeline builder produces:
// a numeric chain and a categorical chain fitted independently on their
// column groups, with outputs concatenated numeric-first.
type ColumnTransformer struct {
	Numeric     *Pipeline
	Categorical *Pipeline
	Fitted      bool
}

var _ Transformer = (*ColumnTransformer)(nil)

// NewPreprocessor builds the standard preprocessor: median imputation
// and standard scaling for the numeric columns; mode imputation,
// one-hot encoding and variance-only scaling for the categorical ones.
func NewPreprocessor(numeric, categorical []string, policy UnknownPolicy) *ColumnTransformer {
	ct := &ColumnTransformer{}
	if len(numeric) > 0 {
		ct.Numeric = &Pipeline{
			PipelineName: "num_pipeline",
			Columns:      numeric,
			Steps:        []Step{NewMedianImputer(numeric)},
			Encoder:      NewNumericEncoder(numeric),
			Scaler:       NewStandardScaler(true),
		}
	}
	if len(categorical) > 0 {
		ct.Categorical = &Pipeline{
			PipelineName: "cat_pipeline",
			Columns:      categorical,
			Steps:        []Step{NewModeImputer(categorical)},
			Encoder:      NewOneHotEncoder(categorical, policy),
			Scaler:       NewStandardScaler(false),
		}
	}
	return ct
}

// Fit fits both chains on tbl. The same table feeds both; each chain
// only reads its own columns.
func (ct *ColumnTransformer) Fit(tbl *dataset.Table) error {
	if ct.Numeric == nil && ct.Categorical == nil {
		return apperr.New(apperr.KindConfig, "no feature columns configured")
	}
	if tbl.NumRows() == 0 {
		return apperr.New(apperr.KindTransform, "empty input table")
	}
	if ct.Numeric != nil {
		if err := ct.Numeric.Fit(tbl); err != nil {
			return err
		}
	}
	if ct.Categorical != nil {
		if err := ct.Categorical.Fit(tbl); err != nil {
			return err
		}
	}
	ct.Fitted = true
	return nil
}

// Transform applies both fitted chains and concatenates their outputs,
// numeric block first.
func (ct *ColumnTransformer) Transform(tbl *dataset.Table) (*mat.Dense, error) {
	if !ct.Fitted {
		return nil, apperr.New(apperr.KindTransform, "preprocessor used before fit")
	}
	var numeric, categorical *mat.Dense
	var err error
	if ct.Numeric != nil {
		if numeric, err = ct.Numeric.Transform(tbl); err != nil {
			return nil, err
		}
	}
	if ct.Categorical != nil {
		if categorical, err = ct.Categorical.Transform(tbl); err != nil {
			return nil, err
		}
	}
	switch {
	case numeric != nil && categorical != nil:
		var out mat.Dense
		out.Augment(numeric, categorical)
		return &out, nil
	case numeric != nil:
		return numeric, nil
	default:
		return categorical, nil
	}
}

// Width is the number of feature columns the transformer emits. Only
// meaningful after Fit.
func (ct *ColumnTransformer) Width() int {
	width := 0
	if ct.Numeric != nil {
		width += ct.Numeric.Encoder.Width()
	}
	if ct.Categorical != nil {
		width += ct.Categorical.Encoder.Width()
	}
	return width
}
