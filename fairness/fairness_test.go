package fairness_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/fairness"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

const epsilon = 1e-12

func groupDataset(t *testing.T, group, labels []float64, opts ...dataset.Option) *dataset.BinaryLabelDataset {
	t.Helper()
	x := mat.NewDense(len(group), 1, append([]float64(nil), group...))
	opts = append(opts, dataset.WithProtectedColumns(0))
	ds, err := dataset.New(x, labels, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ds
}

func TestMeanDifference(t *testing.T) {
	// Privileged favorable rate 0.5, unprivileged 1.0.
	ds := groupDataset(t, []float64{1, 1, 0, 0}, []float64{1, 0, 1, 1})
	got, err := fairness.MeanDifference(ds, 0)
	if err != nil {
		t.Fatalf("MeanDifference failed: %v", err)
	}
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("MeanDifference() = %v, want 0.5", got)
	}
}

func TestMeanDifference_Weighted(t *testing.T) {
	// Weight 3 on the privileged unfavorable row drags the privileged rate
	// down to 1/4 while the unprivileged rate stays at 1.
	ds := groupDataset(t, []float64{1, 1, 0, 0}, []float64{1, 0, 1, 1},
		dataset.WithWeights([]float64{1, 3, 1, 1}))
	got, err := fairness.MeanDifference(ds, 0)
	if err != nil {
		t.Fatalf("MeanDifference failed: %v", err)
	}
	if math.Abs(got-0.75) > epsilon {
		t.Errorf("MeanDifference() = %v, want 0.75", got)
	}
}

func TestMeanDifference_EmptyGroup(t *testing.T) {
	ds := groupDataset(t, []float64{1, 1, 1}, []float64{1, 0, 1})
	_, err := fairness.MeanDifference(ds, 0)
	if !fairmlErrors.Is(err, fairmlErrors.ErrMetricUndefined) {
		t.Errorf("expected ErrMetricUndefined, got %v", err)
	}
}

func TestMeanDifference_ColumnOutOfRange(t *testing.T) {
	ds := groupDataset(t, []float64{1, 0}, []float64{1, 0})
	if _, err := fairness.MeanDifference(ds, 3); err == nil {
		t.Error("expected error for out-of-range column")
	}
}

func TestConsistency_UniformClusters(t *testing.T) {
	// Two tight clusters with internally identical labels: every point's
	// 3 nearest neighbours share its label.
	x := mat.NewDense(6, 1, []float64{0, 0.1, 0.2, 10, 10.1, 10.2})
	ds, err := dataset.New(x, []float64{1, 1, 1, 0, 0, 0})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got, err := fairness.Consistency(ds, 3)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if math.Abs(got-1.0) > epsilon {
		t.Errorf("Consistency() = %v, want 1.0", got)
	}
}

func TestConsistency_MixedCluster(t *testing.T) {
	// One flipped label in the first cluster. Neighbour means there are
	// 2/3, giving per-point deviations 1/3, 1/3 and 2/3; the second cluster
	// contributes nothing. Consistency = 1 - (4/3)/6 = 7/9.
	x := mat.NewDense(6, 1, []float64{0, 0.1, 0.2, 10, 10.1, 10.2})
	ds, err := dataset.New(x, []float64{1, 1, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got, err := fairness.Consistency(ds, 3)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if math.Abs(got-7.0/9.0) > epsilon {
		t.Errorf("Consistency() = %v, want %v", got, 7.0/9.0)
	}
}

func TestConsistency_InvalidK(t *testing.T) {
	ds := groupDataset(t, []float64{1, 0}, []float64{1, 0})
	if _, err := fairness.Consistency(ds, 0); err == nil {
		t.Error("k=0 should fail")
	}
	if _, err := fairness.Consistency(ds, 3); err == nil {
		t.Error("k > n should fail")
	}
}

func TestEqualOpportunityDifference(t *testing.T) {
	// Truly-favorable rows: privileged {0,1}, unprivileged {2}.
	// Predictions hit 1 of 2 privileged and 1 of 1 unprivileged:
	// TPR gap = 1 - 0.5 = 0.5.
	truth := groupDataset(t, []float64{1, 1, 0, 0}, []float64{1, 1, 1, 0})
	predicted, err := truth.WithLabels([]float64{1, 0, 1, 0})
	if err != nil {
		t.Fatalf("WithLabels failed: %v", err)
	}

	got, err := fairness.EqualOpportunityDifference(truth, predicted, 0)
	if err != nil {
		t.Fatalf("EqualOpportunityDifference failed: %v", err)
	}
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("EqualOpportunityDifference() = %v, want 0.5", got)
	}
}

func TestEqualOpportunityDifference_PerfectPredictor(t *testing.T) {
	truth := groupDataset(t, []float64{1, 1, 0, 0}, []float64{1, 0, 1, 0})
	predicted, err := truth.WithLabels(truth.Labels())
	if err != nil {
		t.Fatalf("WithLabels failed: %v", err)
	}
	got, err := fairness.EqualOpportunityDifference(truth, predicted, 0)
	if err != nil {
		t.Fatalf("EqualOpportunityDifference failed: %v", err)
	}
	if got != 0 {
		t.Errorf("EqualOpportunityDifference() = %v, want exactly 0", got)
	}
}

func TestEqualOpportunityDifference_Undefined(t *testing.T) {
	// No truly-favorable unprivileged instances: no TPR to compare.
	truth := groupDataset(t, []float64{1, 1, 0}, []float64{1, 1, 0})
	predicted, err := truth.WithLabels([]float64{1, 1, 0})
	if err != nil {
		t.Fatalf("WithLabels failed: %v", err)
	}
	_, err = fairness.EqualOpportunityDifference(truth, predicted, 0)
	if !fairmlErrors.Is(err, fairmlErrors.ErrMetricUndefined) {
		t.Errorf("expected ErrMetricUndefined, got %v", err)
	}
}

func TestEqualOpportunityDifference_RowMismatch(t *testing.T) {
	truth := groupDataset(t, []float64{1, 0}, []float64{1, 1})
	other := groupDataset(t, []float64{1, 0, 1}, []float64{1, 1, 0})
	if _, err := fairness.EqualOpportunityDifference(truth, other, 0); err == nil {
		t.Error("expected error for row count mismatch")
	}
}

func TestTradeoff(t *testing.T) {
	got := fairness.Tradeoff(0.9, 0.2)
	if math.Abs(got-0.86) > epsilon {
		t.Errorf("Tradeoff() = %v, want 0.86", got)
	}

	// Bias direction must not matter.
	if fairness.Tradeoff(0.9, 0.2) != fairness.Tradeoff(0.9, -0.2) {
		t.Error("Tradeoff is not symmetric in the fairness sign")
	}

	// Unbiased model keeps its full accuracy.
	if fairness.Tradeoff(0.7, 0) != 0.7 {
		t.Error("Tradeoff with zero fairness should equal accuracy")
	}
}
