package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hungtranvg62/mlproject/config"
	"github.com/hungtranvg62/mlproject/dataset"
	"github.com/hungtranvg62/mlproject/db"
	"github.com/hungtranvg62/mlproject/logger"
	"github.com/hungtranvg62/mlproject/pipeline"
)

func main() {
	// 1. Load config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// 2. Initialize logging
	log, err := logger.Init(cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Open the run history store
	var runs *db.RunStore
	if cfg.Database.Path != "" {
		runs, err = db.Open(cfg.Database.Path)
		if err != nil {
			log.Error("failed to open run store", zap.Error(err))
			os.Exit(1)
		}
		defer runs.Close()
	}

	// 4. Run the data transformation
	loader, err := dataset.NewLoader(cfg.Data.Encoding, 0, log)
	if err != nil {
		log.Error("failed to build dataset loader", zap.Error(err))
		os.Exit(1)
	}

	dt := pipeline.NewDataTransformation(cfg, loader, runs, log)
	result, err := dt.Run(cfg.Data.TrainPath, cfg.Data.TestPath)
	if err != nil {
		log.Error("data transformation failed", zap.Error(err))
		os.Exit(1)
	}

	trainRows, trainCols := result.Train.Dims()
	testRows, testCols := result.Test.Dims()
	log.Info("data transformation completed",
		zap.Int("train_rows", trainRows),
		zap.Int("train_cols", trainCols),
		zap.Int("test_rows", testRows),
		zap.Int("test_cols", testCols),
		zap.String("artifact", result.ArtifactPath),
	)
}
