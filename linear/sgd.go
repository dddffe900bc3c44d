package linear

import (
	"gonum.org/v1/gonum/mat"

	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// SGD performs one full-batch gradient descent update per Step call, with
// L2 weight decay folded into the gradient:
//
//	w -= lr * (dL/dw + decay*w)
//	b -= lr * (dL/db + decay*b)
//
// Weight decay applies to the bias as well, matching the reference
// optimizer's behavior.
type SGD struct {
	// LearningRate is the step size, > 0.
	LearningRate float64

	// WeightDecay is the L2 penalty strength, >= 0.
	WeightDecay float64
}

// NewSGD creates an optimizer with the given step size and L2 strength.
func NewSGD(learningRate, weightDecay float64) (*SGD, error) {
	if learningRate <= 0 {
		return nil, fairmlErrors.NewValueError("NewSGD", "learning rate must be positive")
	}
	if weightDecay < 0 {
		return nil, fairmlErrors.NewValueError("NewSGD", "weight decay must be non-negative")
	}
	return &SGD{LearningRate: learningRate, WeightDecay: weightDecay}, nil
}

// Step applies one parameter update to the model from the given loss
// gradients.
func (o *SGD) Step(m *LogisticRegression, gradWeights []float64, gradBias float64) error {
	if len(gradWeights) != len(m.weights) {
		return fairmlErrors.NewDimensionError("SGD.Step", len(m.weights), len(gradWeights), 0)
	}
	for j := range m.weights {
		m.weights[j] -= o.LearningRate * (gradWeights[j] + o.WeightDecay*m.weights[j])
	}
	m.bias -= o.LearningRate * (gradBias + o.WeightDecay*m.bias)
	return nil
}

// BCEGradient computes the gradient of the (optionally weighted) binary
// cross-entropy loss with respect to the model's weights and bias, given
// the inputs X, true labels y and predicted probabilities p for the current
// parameters. When weights is non-nil each instance's contribution is
// scaled by its weight; the gradient is averaged over the instance count in
// both cases, mirroring the loss definition.
func BCEGradient(X mat.Matrix, y, p, weights []float64) (gradWeights []float64, gradBias float64, err error) {
	r, c := X.Dims()
	if len(y) != r || len(p) != r {
		return nil, 0, fairmlErrors.NewDimensionError("BCEGradient", r, len(y), 0)
	}
	if weights != nil && len(weights) != r {
		return nil, 0, fairmlErrors.NewDimensionError("BCEGradient", r, len(weights), 0)
	}

	gradWeights = make([]float64, c)
	for i := 0; i < r; i++ {
		diff := p[i] - y[i]
		if weights != nil {
			diff *= weights[i]
		}
		gradBias += diff
		for j := 0; j < c; j++ {
			gradWeights[j] += diff * X.At(i, j)
		}
	}
	invN := 1.0 / float64(r)
	for j := range gradWeights {
		gradWeights[j] *= invN
	}
	gradBias *= invN
	return gradWeights, gradBias, nil
}
