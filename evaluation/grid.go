package evaluation

import (
	"sync"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/log"
)

// GridResult stores the cross-validated outcome of every hyperparameter
// combination as parallel sequences with consistent indexing: for L
// learning rates and R regularization strengths, all six slices have length
// L*R and index i*R+j refers to (learningRates[i], regStrengths[j]).
type GridResult struct {
	LearningRate []float64
	Reg          []float64
	Accuracy     []float64
	Fairness     []float64
	Tradeoff     []float64
	Epoch        []float64
}

// Len returns the number of grid cells.
func (g *GridResult) Len() int { return len(g.LearningRate) }

// SweepOption configures GridSearch.
type SweepOption func(*sweepOptions)

type sweepOptions struct {
	folds   int
	seed    uint64
	workers int
}

// WithFolds sets the cross-validation fold count per cell (default 5).
func WithFolds(k int) SweepOption {
	return func(o *sweepOptions) { o.folds = k }
}

// WithSeed sets the fold-construction seed (default 16).
func WithSeed(seed uint64) SweepOption {
	return func(o *sweepOptions) { o.seed = seed }
}

// WithWorkers bounds concurrent grid cells. Cells have no shared mutable
// state, and results are scattered into pre-sized slots, so the output
// ordering is identical to the sequential sweep. Default 1 (sequential).
func WithWorkers(n int) SweepOption {
	return func(o *sweepOptions) { o.workers = n }
}

// GridSearch cross-validates every (learning rate, regularization strength)
// combination over the full Cartesian product, outer loop over learning
// rates, inner loop over regularization strengths. The sweep is exhaustive:
// no deduplication, no early termination. LearningRate and Reg in cfg are
// overridden per cell; the remaining Config fields are shared.
func GridSearch(ds *dataset.BinaryLabelDataset, learningRates, regStrengths []float64, cfg Config, opts ...SweepOption) (*GridResult, error) {
	if len(learningRates) == 0 || len(regStrengths) == 0 {
		return nil, fairmlErrors.NewValueError("GridSearch", "hyperparameter sequences cannot be empty")
	}
	o := sweepOptions{folds: DefaultFolds, seed: DefaultSeed, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	cells := len(learningRates) * len(regStrengths)
	grid := &GridResult{
		LearningRate: make([]float64, cells),
		Reg:          make([]float64, cells),
		Accuracy:     make([]float64, cells),
		Fairness:     make([]float64, cells),
		Tradeoff:     make([]float64, cells),
		Epoch:        make([]float64, cells),
	}
	errs := make([]error, cells)

	logger := log.GetLoggerWithName("evaluation")

	runCell := func(idx int, lr, reg float64) {
		cellCfg := cfg
		cellCfg.LearningRate = lr
		cellCfg.Reg = reg

		cv, err := CrossValidate(ds, cellCfg, o.folds, o.seed)
		if err != nil {
			errs[idx] = fairmlErrors.Wrapf(err, "grid cell lr=%g reg=%g", lr, reg)
			return
		}
		grid.LearningRate[idx] = lr
		grid.Reg[idx] = reg
		grid.Accuracy[idx] = cv.Accuracy
		grid.Fairness[idx] = cv.Fairness
		grid.Tradeoff[idx] = cv.Tradeoff
		grid.Epoch[idx] = cv.Epoch

		logger.Info().
			Str(log.OperationKey, "sweep").
			Float64(log.LearningRateKey, lr).
			Float64(log.RegStrengthKey, reg).
			Float64(log.AccuracyKey, cv.Accuracy).
			Float64(log.FairnessKey, cv.Fairness).
			Float64(log.TradeoffKey, cv.Tradeoff).
			Msg("grid cell complete")
	}

	if o.workers == 1 {
		for i, lr := range learningRates {
			for j, reg := range regStrengths {
				runCell(i*len(regStrengths)+j, lr, reg)
			}
		}
	} else {
		type cell struct {
			idx     int
			lr, reg float64
		}
		work := make(chan cell)
		var wg sync.WaitGroup
		for w := 0; w < o.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for c := range work {
					runCell(c.idx, c.lr, c.reg)
				}
			}()
		}
		for i, lr := range learningRates {
			for j, reg := range regStrengths {
				work <- cell{idx: i*len(regStrengths) + j, lr: lr, reg: reg}
			}
		}
		close(work)
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return grid, nil
}
