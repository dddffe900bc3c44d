package log

// Standard attribute keys for machine learning log events. The keys follow
// a hierarchical naming convention ("model.name", "data.samples") to enable
// structured filtering across training, evaluation and sweep logs.

// Model and operation context.
const (
	// ModelNameKey identifies the type of model, e.g. "LogisticRegression".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "transform", "cross_validate", "sweep".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or component emitting the event.
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// FoldKey is the cross-validation fold index.
	FoldKey = "cv.fold"
)

// Training and evaluation results.
const (
	// EpochKey is the number of parameter updates performed.
	EpochKey = "train.epochs"

	// LearningRateKey is the optimizer step size.
	LearningRateKey = "train.learning_rate"

	// RegStrengthKey is the L2 penalty strength.
	RegStrengthKey = "train.reg_strength"

	// AccuracyKey is held-out prediction accuracy.
	AccuracyKey = "eval.accuracy"

	// FairnessKey is the equal opportunity difference.
	FairnessKey = "eval.fairness"

	// TradeoffKey is the combined accuracy/fairness score.
	TradeoffKey = "eval.tradeoff"
)
