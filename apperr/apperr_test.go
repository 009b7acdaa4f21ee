package apperr

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
)

func TestNewCarriesKindAndCallSite(t *testing.T) {
	err := New(KindConfig, "missing column %q", "math_score")
	if err.Kind != KindConfig {
		t.Fatalf("expected KindConfig, got %v", err.Kind)
	}
	if !strings.Contains(err.Op, "apperr_test.go:") {
		t.Fatalf("expected call site in Op, got %q", err.Op)
	}
	if !strings.Contains(err.Error(), `missing column "math_score"`) {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	_, cause := os.Open("/nonexistent/path")
	if cause == nil {
		t.Fatal("expected open to fail")
	}
	err := Wrap(KindData, cause, "open dataset")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped cause to satisfy errors.Is, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected errors.As to find *Error")
	}
	if e.Err != cause {
		t.Fatalf("expected original cause, got %v", e.Err)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(New(KindStorage, "boom")); got != KindStorage {
		t.Fatalf("expected KindStorage, got %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Fatalf("expected KindUnknown for foreign error, got %v", got)
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		KindUnknown:   "unknown",
		KindConfig:    "config",
		KindData:      "data",
		KindTransform: "transform",
		KindSerialize: "serialize",
		KindStorage:   "storage",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("expected %q, got %q", want, kind.String())
		}
	}
}
