package evaluation_test

import (
	"testing"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/evaluation"
)

func TestStratifiedKFold_Split(t *testing.T) {
	// 23 rows: 9 positives, 14 negatives, 5 folds.
	labels := make([]float64, 23)
	for i := 0; i < 9; i++ {
		labels[i] = 1
	}

	splitter := evaluation.NewStratifiedKFold(5, 16)
	folds, err := splitter.Split(labels)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(folds) != 5 {
		t.Fatalf("got %d folds, want 5", len(folds))
	}

	// Folds partition the index set.
	seen := make(map[int]int)
	for _, fold := range folds {
		for _, idx := range fold {
			seen[idx]++
		}
	}
	if len(seen) != len(labels) {
		t.Errorf("folds cover %d indices, want %d", len(seen), len(labels))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d appears %d times", idx, count)
		}
	}

	// Overall fold sizes differ by at most one.
	minSize, maxSize := len(labels), 0
	for _, fold := range folds {
		if len(fold) < minSize {
			minSize = len(fold)
		}
		if len(fold) > maxSize {
			maxSize = len(fold)
		}
	}
	if maxSize-minSize > 1 {
		t.Errorf("fold sizes range from %d to %d", minSize, maxSize)
	}

	// Stratification: 9 positives over 5 folds means 1 or 2 per fold.
	for f, fold := range folds {
		pos := 0
		for _, idx := range fold {
			if labels[idx] == 1 {
				pos++
			}
		}
		if pos < 1 || pos > 2 {
			t.Errorf("fold %d holds %d positives, want 1 or 2", f, pos)
		}
	}
}

func TestStratifiedKFold_Deterministic(t *testing.T) {
	labels := make([]float64, 40)
	for i := range labels {
		labels[i] = float64(i % 2)
	}

	first, err := evaluation.NewStratifiedKFold(4, 16).Split(labels)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	second, err := evaluation.NewStratifiedKFold(4, 16).Split(labels)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	for f := range first {
		if len(first[f]) != len(second[f]) {
			t.Fatalf("fold %d sizes differ across runs", f)
		}
		for i := range first[f] {
			if first[f][i] != second[f][i] {
				t.Fatalf("fold %d differs across runs with the same seed", f)
			}
		}
	}
}

func TestStratifiedKFold_Errors(t *testing.T) {
	labels := []float64{1, 0, 1, 0}
	if _, err := evaluation.NewStratifiedKFold(1, 16).Split(labels); err == nil {
		t.Error("k=1 should fail")
	}
	if _, err := evaluation.NewStratifiedKFold(5, 16).Split(labels); err == nil {
		t.Error("more folds than rows should fail")
	}
}

func TestTrainTest(t *testing.T) {
	folds := [][]int{{0, 1}, {2, 3}, {4}}
	train, test := evaluation.TrainTest(folds, 1)

	if len(test) != 2 || test[0] != 2 || test[1] != 3 {
		t.Errorf("test = %v, want [2 3]", test)
	}
	want := []int{0, 1, 4}
	if len(train) != len(want) {
		t.Fatalf("train = %v, want %v", train, want)
	}
	for i := range want {
		if train[i] != want[i] {
			t.Errorf("train = %v, want %v", train, want)
			break
		}
	}
}
