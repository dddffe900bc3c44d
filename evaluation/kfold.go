package evaluation

import (
	"math/rand/v2"

	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// StratifiedKFold splits binary-labeled rows into k disjoint folds that
// each preserve the overall label ratio as closely as integer counts allow.
// Splits are deterministic for a given seed.
type StratifiedKFold struct {
	// NSplits is the number of folds, >= 2.
	NSplits int

	// Seed seeds the per-class shuffle.
	Seed uint64
}

// NewStratifiedKFold creates a splitter with k folds and the given seed.
func NewStratifiedKFold(k int, seed uint64) *StratifiedKFold {
	return &StratifiedKFold{NSplits: k, Seed: seed}
}

// Split returns the test-index set of each fold, in fold order. Indices
// within each class are shuffled, then dealt round-robin across folds with
// a rotating starting offset so overall fold sizes differ by at most one.
func (s *StratifiedKFold) Split(labels []float64) ([][]int, error) {
	n := len(labels)
	if s.NSplits < 2 {
		return nil, fairmlErrors.NewValueError("StratifiedKFold.Split", "need at least 2 folds")
	}
	if n < s.NSplits {
		return nil, fairmlErrors.NewValueError("StratifiedKFold.Split", "more folds than rows")
	}

	var negatives, positives []int
	for i, y := range labels {
		if y == 1.0 {
			positives = append(positives, i)
		} else {
			negatives = append(negatives, i)
		}
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed))
	folds := make([][]int, s.NSplits)
	offset := 0
	for _, class := range [][]int{negatives, positives} {
		rng.Shuffle(len(class), func(i, j int) { class[i], class[j] = class[j], class[i] })
		for i, idx := range class {
			f := (offset + i) % s.NSplits
			folds[f] = append(folds[f], idx)
		}
		offset = (offset + len(class)) % s.NSplits
	}
	return folds, nil
}

// TrainTest returns the train/test index partition for fold f of the given
// folds: the test set is fold f, the train set is the union of the others
// in fold order.
func TrainTest(folds [][]int, f int) (train, test []int) {
	test = folds[f]
	for i, fold := range folds {
		if i != f {
			train = append(train, fold...)
		}
	}
	return train, test
}
