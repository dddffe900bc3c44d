package evaluation

import (
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/fairness"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/linear"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/metrics"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/log"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/preprocessing"
)

// Result holds the evaluation of one trained model. Immutable after return.
type Result struct {
	// Accuracy is the fraction of held-out label matches, in [0, 1].
	Accuracy float64

	// Fairness is the equal opportunity difference on the held-out
	// partition, nominally in [-1, 1]; zero means no bias.
	Fairness float64

	// Tradeoff is Accuracy - Fairness².
	Tradeoff float64

	// Epoch is the number of parameter updates actually performed, which
	// is at most the configured budget.
	Epoch int
}

// Fit trains a logistic regression classifier on the training partition and
// evaluates it on the test partition.
//
// Pre-processing order: protected-column suppression (on copies of both
// partitions), then standard scaling fitted on the training partition only.
// With Reweigh set, training-loss instance weights come from the reweighing
// preprocessor; the stopping rule always checks the unweighted loss on the
// test partition, every 100 updates, stopping when it no longer improves by
// at least 1e-3 on the best seen value.
//
// Returns the Result, a copy of the test partition whose labels are the
// rounded model predictions, and an error. A test partition on which the
// fairness metric is mathematically undefined yields an error wrapping
// errors.ErrMetricUndefined; accuracy and epoch in the Result are still
// valid in that case so callers can decide what to keep.
func Fit(train, test *dataset.BinaryLabelDataset, cfg Config) (Result, *dataset.BinaryLabelDataset, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return res, nil, err
	}
	if len(train.ProtectedColumns()) == 0 || len(test.ProtectedColumns()) == 0 {
		return res, nil, fairmlErrors.NewValidationError("protected_columns",
			"dataset has no protected attribute column", nil)
	}
	if train.NumFeatures() != test.NumFeatures() {
		return res, nil, fairmlErrors.NewDimensionError("evaluation.Fit",
			train.NumFeatures(), test.NumFeatures(), 1)
	}

	logger := log.GetLoggerWithName("evaluation")

	// Group membership for metrics always comes from the unsuppressed test
	// partition, so suppression operates on working copies.
	workTrain, workTest := train, test
	if cfg.SuppressSensitive {
		var drop []int
		if cfg.OnlySensitive {
			drop = train.ProtectedColumns()[:1]
		} else {
			drop = train.ProtectedColumns()
		}
		var err error
		if workTrain, err = train.DropColumns(drop); err != nil {
			return res, nil, err
		}
		if workTest, err = test.DropColumns(drop); err != nil {
			return res, nil, err
		}
	}

	scaler := preprocessing.NewStandardScaler()
	xTrain, err := scaler.FitTransform(workTrain.Features())
	if err != nil {
		return res, nil, err
	}
	xTest, err := scaler.Transform(workTest.Features())
	if err != nil {
		return res, nil, err
	}
	yTrain := workTrain.Labels()
	yTest := workTest.Labels()

	// Training-loss weights; the evaluation loss stays unweighted.
	var trainWeights []float64
	if cfg.Reweigh {
		rw := preprocessing.NewReweighing(train.ProtectedColumns()[0])
		reweighed, err := rw.FitTransform(train)
		if err != nil {
			return res, nil, err
		}
		trainWeights = reweighed.Weights()
	}

	clf := linear.NewLogisticRegression()
	if err := clf.Init(workTrain.NumFeatures()); err != nil {
		return res, nil, err
	}
	opt, err := linear.NewSGD(cfg.LearningRate, cfg.Reg)
	if err != nil {
		return res, nil, err
	}

	monitor := newConvergenceMonitor()
	updates := 0
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		p, err := clf.PredictProba(xTrain)
		if err != nil {
			return res, nil, err
		}
		gradW, gradB, err := linear.BCEGradient(xTrain, yTrain, p, trainWeights)
		if err != nil {
			return res, nil, err
		}
		if err := opt.Step(clf, gradW, gradB); err != nil {
			return res, nil, err
		}
		updates = epoch

		if epoch%checkInterval == 0 {
			pTest, err := clf.PredictProba(xTest)
			if err != nil {
				return res, nil, err
			}
			evalLoss, err := metrics.BinaryLogLoss(yTest, pTest, nil)
			if err != nil {
				return res, nil, err
			}
			if monitor.observe(evalLoss) {
				break
			}
		}
	}
	res.Epoch = updates
	if updates == cfg.Epochs && cfg.Epochs >= checkInterval {
		fairmlErrors.Warn(fairmlErrors.NewConvergenceWarning("LogisticRegression", updates,
			"epoch budget reached before the evaluation loss plateaued"))
	}

	preds, err := clf.Predict(xTest)
	if err != nil {
		return res, nil, err
	}
	res.Accuracy, err = metrics.Accuracy(yTest, preds)
	if err != nil {
		return res, nil, err
	}

	predicted, err := test.WithLabels(preds)
	if err != nil {
		return res, nil, err
	}

	res.Fairness, err = fairness.EqualOpportunityDifference(test, predicted, test.ProtectedColumns()[0])
	if err != nil {
		// Accuracy and epoch remain valid; the caller decides whether to
		// exclude this result from aggregates.
		return res, predicted, err
	}
	res.Tradeoff = fairness.Tradeoff(res.Accuracy, res.Fairness)

	logger.Debug().
		Str(log.OperationKey, "fit").
		Int(log.SamplesKey, train.NumRows()).
		Int(log.FeaturesKey, workTrain.NumFeatures()).
		Float64(log.LearningRateKey, cfg.LearningRate).
		Float64(log.RegStrengthKey, cfg.Reg).
		Int(log.EpochKey, res.Epoch).
		Float64(log.AccuracyKey, res.Accuracy).
		Float64(log.FairnessKey, res.Fairness).
		Msg("fit complete")

	return res, predicted, nil
}
