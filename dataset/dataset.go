// Package dataset provides the binary-label tabular dataset used throughout
// the fairness evaluation pipeline.
//
// A BinaryLabelDataset holds a feature matrix, a {0,1} label vector,
// per-instance sample weights and an explicit set of protected-attribute
// column indices. All derived views (fold subsets, column-suppressed copies,
// prediction-labeled copies) are independent deep copies: mutating a view
// never affects its source.
//
// By convention the favorable outcome is label 1 and the privileged group is
// protected-attribute value 1.
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// Label values after normalization.
const (
	UnfavorableLabel = 0.0
	FavorableLabel   = 1.0
)

// BinaryLabelDataset is an ordered collection of rows with binary labels,
// instance weights and designated protected-attribute columns.
type BinaryLabelDataset struct {
	x         *mat.Dense
	labels    []float64
	weights   []float64
	protected []int
}

// Option configures dataset construction.
type Option func(*BinaryLabelDataset)

// WithWeights sets per-instance sample weights. Defaults to 1.0 per row.
func WithWeights(weights []float64) Option {
	return func(ds *BinaryLabelDataset) {
		ds.weights = weights
	}
}

// WithProtectedColumns designates feature columns as protected attributes.
// Columns are tracked by index so suppression and subsetting stay correct
// regardless of column order.
func WithProtectedColumns(cols ...int) Option {
	return func(ds *BinaryLabelDataset) {
		ds.protected = cols
	}
}

// New constructs a validated BinaryLabelDataset. The feature matrix is
// copied. Labels must be exactly 0 or 1, weights non-negative and protected
// column indices in range; violations are fatal configuration errors.
func New(x mat.Matrix, labels []float64, opts ...Option) (*BinaryLabelDataset, error) {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, fairmlErrors.NewModelError("dataset.New", "empty feature matrix", fairmlErrors.ErrEmptyData)
	}
	if len(labels) != r {
		return nil, fairmlErrors.NewDimensionError("dataset.New", r, len(labels), 0)
	}

	ds := &BinaryLabelDataset{
		x:      mat.DenseCopyOf(x),
		labels: append([]float64(nil), labels...),
	}
	for _, opt := range opts {
		opt(ds)
	}

	for i, y := range ds.labels {
		if y != UnfavorableLabel && y != FavorableLabel {
			return nil, fairmlErrors.NewValidationError("labels",
				"labels must be exactly 0 or 1 after normalization", ds.labels[i])
		}
	}

	if ds.weights == nil {
		ds.weights = make([]float64, r)
		for i := range ds.weights {
			ds.weights[i] = 1.0
		}
	} else {
		if len(ds.weights) != r {
			return nil, fairmlErrors.NewDimensionError("dataset.New", r, len(ds.weights), 0)
		}
		ds.weights = append([]float64(nil), ds.weights...)
		for _, w := range ds.weights {
			if w < 0 {
				return nil, fairmlErrors.NewValidationError("weights",
					"instance weights must be non-negative", w)
			}
		}
	}

	for _, col := range ds.protected {
		if col < 0 || col >= c {
			return nil, fairmlErrors.NewValidationError("protected_columns",
				"protected attribute column out of range", col)
		}
	}
	ds.protected = append([]int(nil), ds.protected...)

	return ds, nil
}

// NumRows returns the number of instances.
func (ds *BinaryLabelDataset) NumRows() int {
	r, _ := ds.x.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (ds *BinaryLabelDataset) NumFeatures() int {
	_, c := ds.x.Dims()
	return c
}

// Features returns the feature matrix. The returned matrix is shared with
// the dataset; use Copy first when mutation is intended.
func (ds *BinaryLabelDataset) Features() *mat.Dense {
	return ds.x
}

// Labels returns the label vector, shared with the dataset.
func (ds *BinaryLabelDataset) Labels() []float64 {
	return ds.labels
}

// Weights returns the instance weight vector, shared with the dataset.
func (ds *BinaryLabelDataset) Weights() []float64 {
	return ds.weights
}

// ProtectedColumns returns the protected-attribute column indices in
// declaration order. The first entry is the primary protected attribute.
func (ds *BinaryLabelDataset) ProtectedColumns() []int {
	return ds.protected
}

// FeatureColumn returns a copy of feature column j.
func (ds *BinaryLabelDataset) FeatureColumn(j int) []float64 {
	col := make([]float64, ds.NumRows())
	mat.Col(col, j, ds.x)
	return col
}

// Copy returns an independent deep copy.
func (ds *BinaryLabelDataset) Copy() *BinaryLabelDataset {
	return &BinaryLabelDataset{
		x:         mat.DenseCopyOf(ds.x),
		labels:    append([]float64(nil), ds.labels...),
		weights:   append([]float64(nil), ds.weights...),
		protected: append([]int(nil), ds.protected...),
	}
}

// WithLabels returns a copy with the label vector replaced. Used to build
// the prediction-labeled twin of a test partition for post-hoc fairness
// metrics.
func (ds *BinaryLabelDataset) WithLabels(labels []float64) (*BinaryLabelDataset, error) {
	if len(labels) != ds.NumRows() {
		return nil, fairmlErrors.NewDimensionError("dataset.WithLabels", ds.NumRows(), len(labels), 0)
	}
	out := ds.Copy()
	copy(out.labels, labels)
	return out, nil
}

// Subset returns an independent dataset restricted to the given rows, in
// the given order. Used for fold construction.
func (ds *BinaryLabelDataset) Subset(rows []int) (*BinaryLabelDataset, error) {
	if len(rows) == 0 {
		return nil, fairmlErrors.NewModelError("dataset.Subset", "empty row selection", fairmlErrors.ErrEmptyData)
	}
	n, c := ds.x.Dims()
	out := &BinaryLabelDataset{
		x:         mat.NewDense(len(rows), c, nil),
		labels:    make([]float64, len(rows)),
		weights:   make([]float64, len(rows)),
		protected: append([]int(nil), ds.protected...),
	}
	for i, row := range rows {
		if row < 0 || row >= n {
			return nil, fairmlErrors.NewValueError("dataset.Subset", "row index out of range")
		}
		out.x.SetRow(i, ds.x.RawRowView(row))
		out.labels[i] = ds.labels[row]
		out.weights[i] = ds.weights[row]
	}
	return out, nil
}

// DropColumns returns a copy with the given feature columns removed.
// Remaining protected-attribute indices are re-mapped to their new
// positions; a dropped protected column simply disappears from the set.
func (ds *BinaryLabelDataset) DropColumns(cols []int) (*BinaryLabelDataset, error) {
	r, c := ds.x.Dims()
	drop := make(map[int]bool, len(cols))
	for _, col := range cols {
		if col < 0 || col >= c {
			return nil, fairmlErrors.NewValueError("dataset.DropColumns", "column index out of range")
		}
		drop[col] = true
	}
	if len(drop) == c {
		return nil, fairmlErrors.NewValueError("dataset.DropColumns", "cannot drop every feature column")
	}

	keep := make([]int, 0, c-len(drop))
	newIndex := make(map[int]int, c)
	for j := 0; j < c; j++ {
		if !drop[j] {
			newIndex[j] = len(keep)
			keep = append(keep, j)
		}
	}

	out := &BinaryLabelDataset{
		x:       mat.NewDense(r, len(keep), nil),
		labels:  append([]float64(nil), ds.labels...),
		weights: append([]float64(nil), ds.weights...),
	}
	for i := 0; i < r; i++ {
		for nj, j := range keep {
			out.x.Set(i, nj, ds.x.At(i, j))
		}
	}
	for _, p := range ds.protected {
		if nj, ok := newIndex[p]; ok {
			out.protected = append(out.protected, nj)
		}
	}
	return out, nil
}

// Split shuffles the rows with a seeded generator and partitions them into
// a training set holding trainFrac of the rows and a test set holding the
// remainder.
func (ds *BinaryLabelDataset) Split(trainFrac float64, seed uint64) (train, test *BinaryLabelDataset, err error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, nil, fairmlErrors.NewValueError("dataset.Split", "train fraction must be in (0, 1)")
	}
	n := ds.NumRows()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	cut := int(float64(n) * trainFrac)
	if cut == 0 || cut == n {
		return nil, nil, fairmlErrors.NewValueError("dataset.Split", "split produces an empty partition")
	}
	train, err = ds.Subset(idx[:cut])
	if err != nil {
		return nil, nil, err
	}
	test, err = ds.Subset(idx[cut:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// BaseRate returns the weighted mean label, i.e. the favorable-outcome rate.
func (ds *BinaryLabelDataset) BaseRate() float64 {
	var sum, total float64
	for i, y := range ds.labels {
		sum += ds.weights[i] * y
		total += ds.weights[i]
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
