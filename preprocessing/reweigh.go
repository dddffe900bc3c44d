package preprocessing

import (
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/core/model"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// Reweighing assigns each instance a weight so that protected-group
// membership and the label become statistically independent under the
// weighted distribution. For each (group, label) cell the weight is the
// ratio of the expected joint frequency (product of the weighted marginals,
// assuming independence) to the observed weighted joint frequency.
//
// Applied to training data before fitting, this counteracts label-group
// correlation without touching features or labels.
type Reweighing struct {
	model.BaseEstimator

	// Column is the protected-attribute column the grouping is based on.
	Column int

	// cellWeight[group][label] is the reweighing factor for that cell.
	cellWeight [2][2]float64
}

// NewReweighing creates a Reweighing preprocessor for the given
// protected-attribute column.
func NewReweighing(column int) *Reweighing {
	return &Reweighing{Column: column}
}

// Fit computes the four (group, label) reweighing factors from ds using its
// current instance weights. Every cell must be observed; an empty cell makes
// the ratio undefined.
func (r *Reweighing) Fit(ds *dataset.BinaryLabelDataset) error {
	if r.Column < 0 || r.Column >= ds.NumFeatures() {
		return fairmlErrors.NewValidationError("protected_column",
			"column out of range for reweighing", r.Column)
	}

	group := ds.FeatureColumn(r.Column)
	labels := ds.Labels()
	weights := ds.Weights()

	var total float64
	var groupTotal [2]float64 // weighted count per group
	var labelTotal [2]float64 // weighted count per label
	var joint [2][2]float64   // weighted count per (group, label)

	for i, w := range weights {
		g := binaryIndex(group[i])
		l := binaryIndex(labels[i])
		total += w
		groupTotal[g] += w
		labelTotal[l] += w
		joint[g][l] += w
	}
	if total == 0 {
		return fairmlErrors.NewModelError("Reweighing.Fit", "zero total weight", fairmlErrors.ErrEmptyData)
	}

	for g := 0; g < 2; g++ {
		for l := 0; l < 2; l++ {
			if joint[g][l] == 0 {
				return fairmlErrors.NewValueError("Reweighing.Fit",
					"a (group, label) combination has no instances; reweighing is undefined")
			}
			// expected / observed under independence
			r.cellWeight[g][l] = (groupTotal[g] * labelTotal[l]) / (total * joint[g][l])
		}
	}

	r.SetFitted()
	return nil
}

// Transform returns a copy of ds whose instance weights are scaled by the
// fitted (group, label) factors. Features and labels are unchanged.
func (r *Reweighing) Transform(ds *dataset.BinaryLabelDataset) (*dataset.BinaryLabelDataset, error) {
	if !r.IsFitted() {
		return nil, fairmlErrors.NewNotFittedError("Reweighing", "Transform")
	}
	if r.Column >= ds.NumFeatures() {
		return nil, fairmlErrors.NewDimensionError("Reweighing.Transform", r.Column+1, ds.NumFeatures(), 1)
	}

	out := ds.Copy()
	group := out.FeatureColumn(r.Column)
	labels := out.Labels()
	weights := out.Weights()
	for i := range weights {
		weights[i] *= r.cellWeight[binaryIndex(group[i])][binaryIndex(labels[i])]
	}
	return out, nil
}

// FitTransform fits on ds and returns the reweighed copy.
func (r *Reweighing) FitTransform(ds *dataset.BinaryLabelDataset) (*dataset.BinaryLabelDataset, error) {
	if err := r.Fit(ds); err != nil {
		return nil, err
	}
	return r.Transform(ds)
}

// binaryIndex maps a protected-attribute or label value to 0 or 1.
// Value 1 denotes the privileged group / favorable label.
func binaryIndex(v float64) int {
	if v == 1.0 {
		return 1
	}
	return 0
}
