// Package metrics provides classification metrics for model evaluation.
package metrics

import (
	"fmt"
	"math"

	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// epsilon guards log(0) in cross-entropy computations.
const epsilon = 1e-15

// Accuracy returns the fraction of exact label matches between yTrue and
// yPred, in [0, 1].
func Accuracy(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, fairmlErrors.NewValueError("Accuracy", "input vectors cannot be empty")
	}
	if len(yTrue) != len(yPred) {
		return 0, fairmlErrors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// BinaryLogLoss computes binary cross-entropy between true labels and
// predicted probabilities, averaged over instances.
//
// When weights is non-nil each instance's loss term is multiplied by its
// weight; the result is still divided by the instance count, not the weight
// sum. Weighted and unweighted evaluation therefore share one code path:
// pass nil for plain BCE.
func BinaryLogLoss(yTrue, yPred, weights []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, fairmlErrors.NewValueError("BinaryLogLoss", "input vectors cannot be empty")
	}
	if len(yPred) != n {
		return 0, fairmlErrors.NewDimensionError("BinaryLogLoss", n, len(yPred), 0)
	}
	if weights != nil && len(weights) != n {
		return 0, fairmlErrors.NewDimensionError("BinaryLogLoss", n, len(weights), 0)
	}

	loss := 0.0
	for i := 0; i < n; i++ {
		y := yTrue[i]
		if y != 0.0 && y != 1.0 {
			return 0, fairmlErrors.NewValidationError("yTrue",
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", y, i), y)
		}

		p := clampProbability(yPred[i])
		term := -y*math.Log(p) - (1.0-y)*math.Log(1.0-p)
		if weights != nil {
			term *= weights[i]
		}
		loss += term
	}
	return loss / float64(n), nil
}

// clampProbability clips p into (0, 1) to avoid log(0).
func clampProbability(p float64) float64 {
	if p < epsilon {
		return epsilon
	}
	if p > 1-epsilon {
		return 1 - epsilon
	}
	return p
}
