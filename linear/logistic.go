// Package linear provides the linear-plus-sigmoid binary classifier and the
// full-batch gradient descent optimizer used to train it.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// LogisticRegression maps an input vector of dimension d to a probability
// in (0, 1) via an affine transform followed by the logistic function.
// Parameters are exactly d weights plus one bias. Regularization belongs to
// the optimizer, not the model.
type LogisticRegression struct {
	weights []float64
	bias    float64
}

// NewLogisticRegression creates an uninitialized classifier. Init must be
// called with the input dimension before use.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{}
}

// Init resets the parameters to the canonical untrained state (all zeros)
// for the given input dimension. Every fit starts from this state; there is
// no warm-starting across fits.
func (m *LogisticRegression) Init(nFeatures int) error {
	if nFeatures <= 0 {
		return fairmlErrors.NewValueError("LogisticRegression.Init", "input dimension must be positive")
	}
	m.weights = make([]float64, nFeatures)
	m.bias = 0
	return nil
}

// NumFeatures returns the input dimension, or 0 before Init.
func (m *LogisticRegression) NumFeatures() int {
	return len(m.weights)
}

// Weights returns the weight vector, shared with the model.
func (m *LogisticRegression) Weights() []float64 {
	return m.weights
}

// Bias returns the bias term.
func (m *LogisticRegression) Bias() float64 {
	return m.bias
}

// DecisionFunction returns the affine scores w·x + b for each row of X.
func (m *LogisticRegression) DecisionFunction(X mat.Matrix) ([]float64, error) {
	r, c := X.Dims()
	if c != len(m.weights) {
		return nil, fairmlErrors.NewDimensionError("LogisticRegression.DecisionFunction", len(m.weights), c, 1)
	}
	scores := make([]float64, r)
	for i := 0; i < r; i++ {
		z := m.bias
		for j := 0; j < c; j++ {
			z += X.At(i, j) * m.weights[j]
		}
		scores[i] = z
	}
	return scores, nil
}

// PredictProba returns the probability of the favorable class for each row
// of X.
func (m *LogisticRegression) PredictProba(X mat.Matrix) ([]float64, error) {
	scores, err := m.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	for i, z := range scores {
		scores[i] = stableSigmoid(z)
	}
	return scores, nil
}

// Predict returns hard {0, 1} labels for each row of X by rounding the
// predicted probability at 0.5.
func (m *LogisticRegression) Predict(X mat.Matrix) ([]float64, error) {
	probs, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	for i, p := range probs {
		probs[i] = math.Round(p)
	}
	return probs, nil
}

// stableSigmoid computes sigmoid(z) without overflow for large |z|.
func stableSigmoid(z float64) float64 {
	if z >= 0 {
		ez := math.Exp(-z)
		return 1.0 / (1.0 + ez)
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}
