package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/hungtranvg62/mlproject/apperr"
)

// Config holds every knob the pipeline consumes. It is decoded from a
// YAML file once at startup; no environment variables are read.
type Config struct {
	Data struct {
		TrainPath string `yaml:"train_path"`
		TestPath  string `yaml:"test_path"`
		Encoding  string `yaml:"encoding"`
	} `yaml:"data"`
	Schema struct {
		NumericColumns     []string `yaml:"numeric_columns"`
		CategoricalColumns []string `yaml:"categorical_columns"`
		TargetColumn       string   `yaml:"target_column"`
	} `yaml:"schema"`
	Artifacts struct {
		Dir              string `yaml:"dir"`
		PreprocessorFile string `yaml:"preprocessor_file"`
	} `yaml:"artifacts"`
	Log struct {
		Dir   string `yaml:"dir"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	// Policy for categories seen at transform time but absent at fit
	// time: "error" or "ignore".
	OneHotUnknown string `yaml:"one_hot_unknown"`
}

// Load reads, decodes and validates the configuration file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "open config %s", path)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "decode config %s", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills the schema of the student performance dataset and
// the conventional output locations when the file leaves them out.
func (c *Config) applyDefaults() {
	if len(c.Schema.NumericColumns) == 0 && len(c.Schema.CategoricalColumns) == 0 {
		c.Schema.NumericColumns = []string{"writing_score", "reading_score"}
		c.Schema.CategoricalColumns = []string{
			"gender",
			"race_ethnicity",
			"parental_level_of_education",
			"lunch",
			"test_preparation_course",
		}
	}
	if c.Schema.TargetColumn == "" {
		c.Schema.TargetColumn = "math_score"
	}
	if c.Artifacts.Dir == "" {
		c.Artifacts.Dir = "artifacts"
	}
	if c.Artifacts.PreprocessorFile == "" {
		c.Artifacts.PreprocessorFile = "preprocessor.gob"
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Data.Encoding == "" {
		c.Data.Encoding = "utf-8"
	}
	if c.OneHotUnknown == "" {
		c.OneHotUnknown = "error"
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Data.TrainPath == "" {
		return apperr.New(apperr.KindConfig, "data.train_path is required")
	}
	if c.Data.TestPath == "" {
		return apperr.New(apperr.KindConfig, "data.test_path is required")
	}
	if c.Schema.TargetColumn == "" {
		return apperr.New(apperr.KindConfig, "schema.target_column is required")
	}
	if len(c.Schema.NumericColumns)+len(c.Schema.CategoricalColumns) == 0 {
		return apperr.New(apperr.KindConfig, "schema must list at least one feature column")
	}

	seen := make(map[string]struct{})
	for _, group := range [][]string{c.Schema.NumericColumns, c.Schema.CategoricalColumns} {
		for _, name := range group {
			if name == c.Schema.TargetColumn {
				return apperr.New(apperr.KindConfig, "target column %q listed as a feature", name)
			}
			if _, dup := seen[name]; dup {
				return apperr.New(apperr.KindConfig, "column %q listed twice", name)
			}
			seen[name] = struct{}{}
		}
	}

	switch c.OneHotUnknown {
	case "error", "ignore":
	default:
		return apperr.New(apperr.KindConfig, "one_hot_unknown must be \"error\" or \"ignore\", got %q", c.OneHotUnknown)
	}
	return nil
}

// PreprocessorPath is where the fitted preprocessor artifact is written.
func (c *Config) PreprocessorPath() string {
	return filepath.Join(c.Artifacts.Dir, c.Artifacts.PreprocessorFile)
}
