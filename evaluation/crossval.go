package evaluation

import (
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/log"
)

// CVResult holds metric means across cross-validation folds.
type CVResult struct {
	Accuracy float64
	Fairness float64
	Tradeoff float64

	// Epoch is the mean number of updates per fold.
	Epoch float64

	// Folds is the number of folds included in the means.
	Folds int

	// Undefined counts folds excluded because the fairness metric was
	// mathematically undefined on their held-out partition.
	Undefined int
}

// CrossValidate runs label-stratified k-fold cross-validation of Fit over
// ds and returns the arithmetic mean of each metric across folds.
//
// Folds on which the fairness metric is undefined (a degenerate group with
// no truly-favorable instances) are excluded from the means and counted in
// Undefined rather than silently contributing zero. If every fold is
// undefined the returned error wraps errors.ErrMetricUndefined.
func CrossValidate(ds *dataset.BinaryLabelDataset, cfg Config, k int, seed uint64) (CVResult, error) {
	var cv CVResult
	if err := cfg.Validate(); err != nil {
		return cv, err
	}
	if k == 0 {
		k = DefaultFolds
	}

	splitter := NewStratifiedKFold(k, seed)
	folds, err := splitter.Split(ds.Labels())
	if err != nil {
		return cv, err
	}

	logger := log.GetLoggerWithName("evaluation")

	for f := range folds {
		trainIdx, testIdx := TrainTest(folds, f)
		trainFold, err := ds.Subset(trainIdx)
		if err != nil {
			return cv, err
		}
		testFold, err := ds.Subset(testIdx)
		if err != nil {
			return cv, err
		}

		res, _, err := Fit(trainFold, testFold, cfg)
		if err != nil {
			if fairmlErrors.Is(err, fairmlErrors.ErrMetricUndefined) {
				cv.Undefined++
				logger.Warn().
					Str(log.OperationKey, "cross_validate").
					Int(log.FoldKey, f).
					Msg("fairness metric undefined on fold; excluding from means")
				continue
			}
			return cv, fairmlErrors.Wrapf(err, "fold %d", f)
		}

		cv.Accuracy += res.Accuracy
		cv.Fairness += res.Fairness
		cv.Tradeoff += res.Tradeoff
		cv.Epoch += float64(res.Epoch)
		cv.Folds++
	}

	if cv.Folds == 0 {
		return cv, fairmlErrors.Wrap(fairmlErrors.ErrMetricUndefined,
			"cross validation: fairness metric undefined on every fold")
	}
	m := float64(cv.Folds)
	cv.Accuracy /= m
	cv.Fairness /= m
	cv.Tradeoff /= m
	cv.Epoch /= m
	return cv, nil
}
