// Package fairness provides group-fairness metrics over binary-label
// datasets.
//
// Group membership is always derived on demand from a protected-attribute
// column of the dataset passed in, never cached, so suppression and
// reweighing on copies can never yield stale partitions. Value 1 of the
// protected attribute denotes the privileged group; label 1 is the
// favorable outcome.
package fairness

import (
	"math"
	"sort"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// DefaultNeighbors is the neighborhood size for the Consistency metric.
const DefaultNeighbors = 5

// MeanDifference returns the statistical-parity difference for the given
// protected column: the weighted mean label of the unprivileged group minus
// that of the privileged group. Zero means no group disparity; the range is
// nominally [-1, 1]. A dataset where one group is empty has no defined mean
// difference.
func MeanDifference(ds *dataset.BinaryLabelDataset, protectedColumn int) (float64, error) {
	if protectedColumn < 0 || protectedColumn >= ds.NumFeatures() {
		return 0, fairmlErrors.NewValidationError("protected_column",
			"column out of range", protectedColumn)
	}

	group := ds.FeatureColumn(protectedColumn)
	labels := ds.Labels()
	weights := ds.Weights()

	var favUnpriv, totalUnpriv, favPriv, totalPriv float64
	for i, w := range weights {
		if group[i] == 1.0 {
			totalPriv += w
			favPriv += w * labels[i]
		} else {
			totalUnpriv += w
			favUnpriv += w * labels[i]
		}
	}
	if totalUnpriv == 0 || totalPriv == 0 {
		return 0, fairmlErrors.Wrap(fairmlErrors.ErrMetricUndefined,
			"mean difference: a protected group has no instances")
	}
	return favUnpriv/totalUnpriv - favPriv/totalPriv, nil
}

// Consistency measures individual fairness as label agreement with the k
// nearest neighbours in feature space:
//
//	1 - (1/n) * sum_i |y_i - mean(y_j for j in kNN(i))|
//
// Neighbours are found by Euclidean distance over all rows, so each
// instance is its own nearest neighbour. Higher is more individually fair;
// the range is [0, 1].
func Consistency(ds *dataset.BinaryLabelDataset, k int) (float64, error) {
	n := ds.NumRows()
	if k <= 0 {
		return 0, fairmlErrors.NewValueError("Consistency", "neighborhood size must be positive")
	}
	if k > n {
		return 0, fairmlErrors.NewValueError("Consistency", "neighborhood size exceeds dataset size")
	}

	x := ds.Features()
	labels := ds.Labels()
	d := ds.NumFeatures()

	total := 0.0
	dists := make([]float64, n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		ri := x.RawRowView(i)
		for j := 0; j < n; j++ {
			rj := x.RawRowView(j)
			sum := 0.0
			for f := 0; f < d; f++ {
				diff := ri[f] - rj[f]
				sum += diff * diff
			}
			dists[j] = sum
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

		neighborMean := 0.0
		for _, j := range order[:k] {
			neighborMean += labels[j]
		}
		neighborMean /= float64(k)
		total += math.Abs(labels[i] - neighborMean)
	}
	return 1.0 - total/float64(n), nil
}

// EqualOpportunityDifference returns the gap in true-positive rate between
// the unprivileged and privileged groups, restricted to instances whose
// true label is favorable:
//
//	TPR_unprivileged - TPR_privileged
//
// truth carries the ground-truth labels and predictions carries the model's
// labels over the same rows. Zero means no bias; negative favors the
// privileged group, positive the unprivileged group. A group with no
// truly-favorable instances has no defined true-positive rate, and the
// metric is reported as undefined rather than silently zero.
func EqualOpportunityDifference(truth, predictions *dataset.BinaryLabelDataset, protectedColumn int) (float64, error) {
	if truth.NumRows() != predictions.NumRows() {
		return 0, fairmlErrors.NewDimensionError("EqualOpportunityDifference",
			truth.NumRows(), predictions.NumRows(), 0)
	}
	if protectedColumn < 0 || protectedColumn >= truth.NumFeatures() {
		return 0, fairmlErrors.NewValidationError("protected_column",
			"column out of range", protectedColumn)
	}

	group := truth.FeatureColumn(protectedColumn)
	yTrue := truth.Labels()
	yPred := predictions.Labels()
	weights := truth.Weights()

	// Weighted true-positive and condition-positive mass per group.
	var tp, pos [2]float64
	for i, w := range weights {
		if yTrue[i] != dataset.FavorableLabel {
			continue
		}
		g := 0
		if group[i] == 1.0 {
			g = 1
		}
		pos[g] += w
		if yPred[i] == dataset.FavorableLabel {
			tp[g] += w
		}
	}
	if pos[0] == 0 || pos[1] == 0 {
		return 0, fairmlErrors.Wrap(fairmlErrors.ErrMetricUndefined,
			"equal opportunity: a protected group has no truly-favorable instances")
	}
	return tp[0]/pos[0] - tp[1]/pos[1], nil
}

// Tradeoff combines accuracy and a fairness score into one scalar:
// accuracy minus the squared fairness magnitude. It penalizes bias in
// either direction equally, so models with equal accuracy rank by how close
// their fairness score is to zero.
func Tradeoff(accuracy, fairness float64) float64 {
	return accuracy - fairness*fairness
}
