package transform

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/hungtranvg62/mlproject/dataset"
)

func studentTable(t *testing.T) *dataset.Table {
	t.Helper()
	return newTable(t,
		[]string{"gender", "lunch", "writing_score", "reading_score"},
		[][]string{
			{"female", "standard", "74", "72"},
			{"male", "standard", "88", "90"},
			{"female", "free/reduced", "44", "47"},
			{"male", "standard", "78", "76"},
		},
	)
}

func TestPreprocessorDeterminism(t *testing.T) {
	tbl := studentTable(t)
	pre := NewPreprocessor(
		[]string{"writing_score", "reading_score"},
		[]string{"gender", "lunch"},
		UnknownError,
	)
	if err := pre.Fit(tbl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := pre.Transform(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pre.Transform(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mat.Equal(first, second) {
		t.Fatal("expected identical output for repeated transforms")
	}
}

func TestPreprocessorShapeAndOrder(t *testing.T) {
	tbl := studentTable(t)
	pre := NewPreprocessor(
		[]string{"writing_score", "reading_score"},
		[]string{"gender", "lunch"},
		UnknownError,
	)
	if err := pre.Fit(tbl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := pre.Transform(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, cols := out.Dims()
	if rows != tbl.NumRows() {
		t.Fatalf("expected %d rows, got %d", tbl.NumRows(), rows)
	}
	// 2 numeric + 2 gender categories + 2 lunch categories
	if cols != 6 {
		t.Fatalf("expected 6 columns, got %d", cols)
	}
	if pre.Width() != 6 {
		t.Fatalf("expected width 6, got %d", pre.Width())
	}
	// numeric block comes first: centered scores carry sign, the
	// indicator block is never negative
	for i := 0; i < rows; i++ {
		for j := 2; j < cols; j++ {
			if out.At(i, j) < 0 {
				t.Fatalf("expected non-negative indicator at (%d,%d), got %v", i, j, out.At(i, j))
			}
		}
	}
}

func TestPreprocessorRowCountOnEval(t *testing.T) {
	train := studentTable(t)
	eval := newTable(t,
		[]string{"gender", "lunch", "writing_score", "reading_score"},
		[][]string{
			{"female", "standard", "60", "62"},
			{"male", "free/reduced", "", "70"},
		},
	)
	pre := NewPreprocessor(
		[]string{"writing_score", "reading_score"},
		[]string{"gender", "lunch"},
		UnknownError,
	)
	if err := pre.Fit(train); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := pre.Transform(eval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, cols := out.Dims()
	if rows != 2 || cols != 6 {
		t.Fatalf("expected 2x6, got %dx%d", rows, cols)
	}
}

func TestPreprocessorUnknownColumn(t *testing.T) {
	tbl := studentTable(t)
	pre := NewPreprocessor([]string{"absent_score"}, []string{"gender"}, UnknownError)
	if err := pre.Fit(tbl); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestPreprocessorEmptyTable(t *testing.T) {
	tbl := newTable(t, []string{"gender", "writing_score"}, nil)
	pre := NewPreprocessor([]string{"writing_score"}, []string{"gender"}, UnknownError)
	if err := pre.Fit(tbl); err == nil {
		t.Fatal("expected error for empty table")
	}
}

func TestPreprocessorTransformBeforeFit(t *testing.T) {
	pre := NewPreprocessor([]string{"writing_score"}, []string{"gender"}, UnknownError)
	if _, err := pre.Transform(studentTable(t)); err == nil {
		t.Fatal("expected error for transform before fit")
	}
}

func TestPreprocessorNoColumns(t *testing.T) {
	pre := NewPreprocessor(nil, nil, UnknownError)
	if err := pre.Fit(studentTable(t)); err == nil {
		t.Fatal("expected error when no columns are configured")
	}
}

func TestPreprocessorNumericOnly(t *testing.T) {
	tbl := studentTable(t)
	pre := NewPreprocessor([]string{"writing_score", "reading_score"}, nil, UnknownError)
	if err := pre.Fit(tbl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := pre.Transform(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, cols := out.Dims(); cols != 2 {
		t.Fatalf("expected 2 columns, got %d", cols)
	}
}
