// Package report renders hyperparameter sweep results for visual
// inspection. It consumes only the flat GridResult records exported by the
// evaluation engine.
package report

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/evaluation"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// Metric selects which grid value a heatmap displays.
type Metric string

// Plottable grid metrics.
const (
	MetricAccuracy Metric = "accuracy"
	MetricFairness Metric = "fairness"
	MetricTradeoff Metric = "tradeoff"
)

// gridData adapts a GridResult to plotter.GridXYZ. Columns are learning
// rates, rows are regularization strengths; axis coordinates are log10 of
// the hyperparameter values.
type gridData struct {
	lrs, regs []float64
	values    []float64
}

func (g gridData) Dims() (int, int)   { return len(g.lrs), len(g.regs) }
func (g gridData) X(c int) float64    { return math.Log10(g.lrs[c]) }
func (g gridData) Y(r int) float64    { return math.Log10(g.regs[r]) }
func (g gridData) Z(c, r int) float64 { return g.values[c*len(g.regs)+r] }

// HeatmapGrid renders one metric of a sweep as a heatmap over
// (learning rate × regularization strength) and writes a PNG to path.
// learningRates and regStrengths must be the sequences the sweep was run
// with, in the same order.
func HeatmapGrid(grid *evaluation.GridResult, learningRates, regStrengths []float64, metric Metric, title, path string) error {
	if grid.Len() != len(learningRates)*len(regStrengths) {
		return fairmlErrors.NewDimensionError("report.HeatmapGrid",
			len(learningRates)*len(regStrengths), grid.Len(), 0)
	}

	var values []float64
	switch metric {
	case MetricAccuracy:
		values = grid.Accuracy
	case MetricFairness:
		values = grid.Fairness
	case MetricTradeoff:
		values = grid.Tradeoff
	default:
		return fairmlErrors.NewValueError("report.HeatmapGrid", "unknown metric "+string(metric))
	}

	hm := plotter.NewHeatMap(gridData{
		lrs:    learningRates,
		regs:   regStrengths,
		values: values,
	}, palette.Heat(12, 1))

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "log10 learning rate"
	p.Y.Label.Text = "log10 regularization"
	p.Add(hm)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
