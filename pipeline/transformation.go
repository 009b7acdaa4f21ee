package pipeline

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/hungtranvg62/mlproject/apperr"
	"github.com/hungtranvg62/mlproject/artifact"
	"github.com/hungtranvg62/mlproject/config"
	"github.com/hungtranvg62/mlproject/dataset"
	"github.com/hungtranvg62/mlproject/db"
	"github.com/hungtranvg62/mlproject/logger"
	"github.com/hungtranvg62/mlproject/transform"
)

// DataTransformation drives one preprocessing run: load both tables,
// fit the preprocessor on the training features only, transform both,
// append the target column, persist the fitted preprocessor.
type DataTransformation struct {
	cfg    *config.Config
	loader *dataset.Loader
	runs   *db.RunStore // nil disables run recording
	log    *zap.Logger
}

// Result carries the model-ready arrays and the artifact location.
type Result struct {
	Train        *mat.Dense
	Test         *mat.Dense
	ArtifactPath string
}

func NewDataTransformation(cfg *config.Config, loader *dataset.Loader, runs *db.RunStore, log *zap.Logger) *DataTransformation {
	return &DataTransformation{
		cfg:    cfg,
		loader: loader,
		runs:   runs,
		log:    logger.OrNop(log),
	}
}

// Run executes the transformation over the train and test files. The
// test table never influences fitting.
func (dt *DataTransformation) Run(trainPath, testPath string) (*Result, error) {
	trainTbl, err := dt.loader.Read(trainPath)
	if err != nil {
		return nil, err
	}
	testTbl, err := dt.loader.Read(testPath)
	if err != nil {
		return nil, err
	}
	dt.log.Info("read train and test data completed",
		zap.Int("train_rows", trainTbl.NumRows()),
		zap.Int("test_rows", testTbl.NumRows()),
	)

	target := dt.cfg.Schema.TargetColumn
	trainX, trainY, err := trainTbl.SplitTarget(target)
	if err != nil {
		return nil, err
	}
	testX, testY, err := testTbl.SplitTarget(target)
	if err != nil {
		return nil, err
	}

	policy, err := transform.ParsePolicy(dt.cfg.OneHotUnknown)
	if err != nil {
		return nil, err
	}
	pre := transform.NewPreprocessor(
		dt.cfg.Schema.NumericColumns,
		dt.cfg.Schema.CategoricalColumns,
		policy,
	)
	dt.log.Info("obtained preprocessing object",
		zap.Strings("numeric_columns", dt.cfg.Schema.NumericColumns),
		zap.Strings("categorical_columns", dt.cfg.Schema.CategoricalColumns),
	)

	if err := pre.Fit(trainX); err != nil {
		return nil, err
	}
	trainArr, err := pre.Transform(trainX)
	if err != nil {
		return nil, err
	}
	testArr, err := pre.Transform(testX)
	if err != nil {
		return nil, err
	}
	dt.log.Info("applied preprocessing object on training and testing tables",
		zap.Int("feature_width", pre.Width()),
	)

	trainFull, err := appendTarget(trainArr, trainY)
	if err != nil {
		return nil, err
	}
	testFull, err := appendTarget(testArr, testY)
	if err != nil {
		return nil, err
	}

	path := dt.cfg.PreprocessorPath()
	if err := artifact.Save(path, pre); err != nil {
		return nil, err
	}
	dt.log.Info("saved preprocessing object", zap.String("path", path))

	if dt.runs != nil {
		run := db.TransformRun{
			TrainPath:    trainPath,
			TestPath:     testPath,
			TrainRows:    trainTbl.NumRows(),
			TestRows:     testTbl.NumRows(),
			FeatureWidth: pre.Width(),
			ArtifactPath: path,
		}
		if err := dt.runs.Record(run); err != nil {
			return nil, err
		}
	}

	return &Result{Train: trainFull, Test: testFull, ArtifactPath: path}, nil
}

// appendTarget adds target as the final column of features.
func appendTarget(features *mat.Dense, target []float64) (*mat.Dense, error) {
	rows, _ := features.Dims()
	if len(target) != rows {
		return nil, apperr.New(apperr.KindTransform, "target has %d values for %d rows", len(target), rows)
	}
	col := mat.NewDense(rows, 1, append([]float64(nil), target...))
	var out mat.Dense
	out.Augment(features, col)
	return &out, nil
}
