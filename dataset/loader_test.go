package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoaderRead(t *testing.T) {
	path := writeFile(t, "train.csv", "gender,score\nfemale,72\nmale,69\n")
	loader, err := NewLoader("", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, err := loader.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.NumRows() != 2 || tbl.NumCols() != 2 {
		t.Fatalf("unexpected shape: %dx%d", tbl.NumRows(), tbl.NumCols())
	}
}

func TestLoaderCachesByPath(t *testing.T) {
	path := writeFile(t, "train.csv", "a\n1\n")
	loader, err := NewLoader("utf-8", 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := loader.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Mutating the file must not affect the cached table.
	if err := os.WriteFile(path, []byte("a\n1\n2\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := loader.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected cached table on second read")
	}
}

func TestLoaderEmptyDataset(t *testing.T) {
	path := writeFile(t, "empty.csv", "gender,score\n")
	loader, err := NewLoader("", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := loader.Read(path); err == nil {
		t.Fatal("expected error for dataset without data rows")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader, err := NewLoader("", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := loader.Read(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoaderGBK(t *testing.T) {
	raw := "科目,分数\n数学,72\n"
	encoded, _, err := transform.String(simplifiedchinese.GBK.NewEncoder(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := writeFile(t, "gbk.csv", encoded)

	loader, err := NewLoader("gbk", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, err := loader.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col, err := tbl.Column("科目")
	if err != nil {
		t.Fatalf("expected decoded header, got columns %v", tbl.Columns())
	}
	if col[0] != "数学" {
		t.Fatalf("unexpected decoded cell: %q", col[0])
	}
}

func TestLoaderUnknownEncoding(t *testing.T) {
	if _, err := NewLoader("latin-5", 0, nil); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}
