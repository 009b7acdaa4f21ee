package artifact

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/hungtranvg62/mlproject/apperr"
)

// Save serializes obj to path in gob form, creating the parent
// directory if needed and overwriting any existing file.
func Save(path string, obj interface{}) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.Wrap(apperr.KindSerialize, err, "create artifact dir %s", dir)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(apperr.KindSerialize, err, "create artifact %s", path)
	}
	if err := gob.NewEncoder(file).Encode(obj); err != nil {
		file.Close()
		return apperr.Wrap(apperr.KindSerialize, err, "encode artifact %s", path)
	}
	if err := file.Close(); err != nil {
		return apperr.Wrap(apperr.KindSerialize, err, "close artifact %s", path)
	}
	return nil
}

// Load decodes the artifact at path into the value pointed to by into.
func Load(path string, into interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return apperr.Wrap(apperr.KindSerialize, err, "open artifact %s", path)
	}
	defer file.Close()
	if err := gob.NewDecoder(file).Decode(into); err != nil {
		return apperr.Wrap(apperr.KindSerialize, err, "decode artifact %s", path)
	}
	return nil
}
