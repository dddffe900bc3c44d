// Package evaluation implements the model fitting and evaluation engine:
// the training loop with its convergence-based stopping rule, the
// accuracy/fairness/trade-off computation on held-out predictions,
// label-stratified k-fold cross-validation, and the exhaustive
// hyperparameter grid sweep.
//
// Every fit call allocates its own scaler, model parameters and optimizer
// state; folds and grid cells share nothing mutable, so orchestration can
// fan them out concurrently as long as output order is preserved.
package evaluation

import (
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// Defaults matching the reference experiment setup.
const (
	// DefaultFolds is the cross-validation fold count.
	DefaultFolds = 5

	// DefaultSeed seeds shuffling for splits and fold construction.
	DefaultSeed uint64 = 16
)

// Config holds the hyperparameters and pre-processing flags for one fit.
type Config struct {
	// LearningRate is the optimizer step size, > 0.
	LearningRate float64

	// Reg is the L2 weight decay strength, >= 0.
	Reg float64

	// Epochs is the maximum number of full-batch updates, > 0. Budgets
	// under 100 never reach a convergence check and always run to the cap;
	// this is a documented degenerate case, not an error.
	Epochs int

	// Reweigh derives training instance weights from the joint
	// (group, label) distribution so that weighted group frequencies become
	// label-independent. The stopping rule still evaluates unweighted loss.
	Reweigh bool

	// SuppressSensitive removes protected-attribute columns from the
	// features before scaling and training. Metrics are still computed
	// against the unsuppressed test partition, whose group information is
	// tracked by column index.
	SuppressSensitive bool

	// OnlySensitive restricts suppression to the primary protected column;
	// when false all protected columns are dropped. Meaningful only with
	// SuppressSensitive.
	OnlySensitive bool
}

// Validate checks the numeric hyperparameters.
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fairmlErrors.NewValueError("Config", "learning rate must be positive")
	}
	if c.Reg < 0 {
		return fairmlErrors.NewValueError("Config", "regularization strength must be non-negative")
	}
	if c.Epochs <= 0 {
		return fairmlErrors.NewValueError("Config", "epoch budget must be positive")
	}
	return nil
}
