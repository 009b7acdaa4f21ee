package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/hungtranvg62/mlproject/apperr"
)

const defaultCacheSize = 8

// Loader reads delimited-text datasets. Parsed tables are cached by
// absolute path so the orchestrator can re-read a file for free, and
// non-UTF-8 sources are decoded through x/text.
type Loader struct {
	enc   encoding.Encoding // nil means plain UTF-8
	cache *lru.Cache[string, *Table]
	log   *zap.Logger
}

// NewLoader builds a loader for the named character encoding. Supported
// names: utf-8 (default), gbk, gb18030.
func NewLoader(encodingName string, cacheSize int, log *zap.Logger) (*Loader, error) {
	enc, err := resolveEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, *Table](cacheSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "create dataset cache")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{enc: enc, cache: cache, log: log}, nil
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "gbk":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	default:
		return nil, apperr.New(apperr.KindConfig, "unsupported encoding %q", name)
	}
}

// Read parses the file at path into a Table. The first record is the
// header; at least one data row is required.
func (l *Loader) Read(path string) (*Table, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if tbl, ok := l.cache.Get(key); ok {
		l.log.Debug("dataset cache hit", zap.String("path", path))
		return tbl, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindData, err, "open dataset %s", path)
	}
	defer file.Close()

	var reader io.Reader = file
	if l.enc != nil {
		reader = transform.NewReader(file, l.enc.NewDecoder())
	}

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindData, err, "parse dataset %s", path)
	}
	if len(records) < 2 {
		return nil, apperr.New(apperr.KindData, "dataset %s has no data rows", path)
	}

	tbl, err := NewTable(records[0], records[1:])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindData, err, "dataset %s", path)
	}

	l.cache.Add(key, tbl)
	l.log.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", tbl.NumRows()),
		zap.Int("cols", tbl.NumCols()),
	)
	return tbl, nil
}
