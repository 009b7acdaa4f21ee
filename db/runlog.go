package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hungtranvg62/mlproject/apperr"
)

// TransformRun is one recorded execution of the data transformation.
type TransformRun struct {
	TrainPath    string
	TestPath     string
	TrainRows    int
	TestRows     int
	FeatureWidth int
	ArtifactPath string
	CreatedAt    time.Time
}

// RunStore keeps the history of transformation runs in SQLite.
type RunStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the run history database at path.
func Open(path string) (*RunStore, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, err, "create database dir %s", dir)
		}
	}

	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "open database %s", path)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS transform_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        train_path TEXT NOT NULL,
        test_path TEXT NOT NULL,
        train_rows INTEGER NOT NULL,
        test_rows INTEGER NOT NULL,
        feature_width INTEGER NOT NULL,
        artifact_path TEXT NOT NULL,
        created_at DATETIME NOT NULL
    );`
	if _, err := database.Exec(schema); err != nil {
		database.Close()
		return nil, apperr.Wrap(apperr.KindStorage, err, "create schema in %s", path)
	}

	return &RunStore{db: database}, nil
}

// Record inserts a run. A zero CreatedAt defaults to now.
func (s *RunStore) Record(run TransformRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
        INSERT INTO transform_runs (
            train_path, test_path, train_rows, test_rows,
            feature_width, artifact_path, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.TrainPath,
		run.TestPath,
		run.TrainRows,
		run.TestRows,
		run.FeatureWidth,
		run.ArtifactPath,
		run.CreatedAt,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, err, "record transform run")
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *RunStore) Recent(limit int) ([]TransformRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
        SELECT train_path, test_path, train_rows, test_rows,
               feature_width, artifact_path, created_at
        FROM transform_runs
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "query transform runs")
	}
	defer rows.Close()

	var runs []TransformRun
	for rows.Next() {
		var run TransformRun
		if err := rows.Scan(
			&run.TrainPath,
			&run.TestPath,
			&run.TrainRows,
			&run.TestRows,
			&run.FeatureWidth,
			&run.ArtifactPath,
			&run.CreatedAt,
		); err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, err, "scan transform run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "iterate transform runs")
	}
	return runs, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}
