// Command fairsweep runs fairness/accuracy experiments on tabular datasets
// with a protected attribute: dataset bias analysis, single model fits and
// hyperparameter grid sweeps with optional reweighing and sensitive-feature
// suppression.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/datasets"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/evaluation"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/fairness"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/log"
	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/report"
)

// Hyperparameter grids from the reference experiments.
var (
	defaultLearningRates = []float64{1e-1, 1e-2, 1e-3, 1e-4, 1e-5, 1e-6, 1e-7}
	defaultRegStrengths  = []float64{1e-1, 1e-2, 1e-3, 1e-4, 1e-5, 1e-6, 1e-7}
)

type dataFlags struct {
	name      string
	file      string
	protected string
	trainFrac float64
	seed      uint64
}

func (d *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&d.name, "dataset", "d", "german", "dataset format: german or adult")
	cmd.Flags().StringVarP(&d.file, "data-file", "i", "", "path to the raw dataset file")
	cmd.Flags().StringVarP(&d.protected, "protected", "p", "sex", "primary protected attribute")
	cmd.Flags().Float64Var(&d.trainFrac, "train-fraction", 0.7, "fraction of rows used for training")
	cmd.Flags().Uint64VarP(&d.seed, "random-seed", "x", 16, "seed for shuffling and fold construction")
	_ = cmd.MarkFlagRequired("data-file")
}

func (d *dataFlags) load() (*dataset.BinaryLabelDataset, error) {
	switch d.name {
	case "german":
		return datasets.LoadGermanCredit(d.file, d.protected)
	case "adult":
		return datasets.LoadAdultIncome(d.file, d.protected)
	default:
		return nil, fairmlErrors.NewValidationError("dataset", "must be german or adult", d.name)
	}
}

func analyzeCommand() *cobra.Command {
	var data dataFlags

	cmd := &cobra.Command{
		Use:   "analyze -i dataFile",
		Short: "Reports dataset-level bias: consistency and mean difference",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := data.load()
			if err != nil {
				return err
			}
			consistency, err := fairness.Consistency(ds, fairness.DefaultNeighbors)
			if err != nil {
				return err
			}
			meanDiff, err := fairness.MeanDifference(ds, ds.ProtectedColumns()[0])
			if err != nil {
				return err
			}
			fmt.Printf("Rows:            %d\n", ds.NumRows())
			fmt.Printf("Consistency:     %.4f\n", consistency)
			fmt.Printf("Mean difference: %.4f\n", meanDiff)
			return nil
		},
	}
	data.register(cmd)
	return cmd
}

func fitCommand() *cobra.Command {
	var data dataFlags
	var cfg evaluation.Config

	cmd := &cobra.Command{
		Use:   "fit -i dataFile",
		Short: "Trains one model on a train/test split and reports its metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := data.load()
			if err != nil {
				return err
			}
			train, test, err := ds.Split(data.trainFrac, data.seed)
			if err != nil {
				return err
			}
			res, predicted, err := evaluation.Fit(train, test, cfg)
			if err != nil {
				return err
			}
			tn, fp, fn, tp := confusionCounts(test.Labels(), predicted.Labels())
			fmt.Printf("Epochs:    %d\n", res.Epoch)
			fmt.Printf("Accuracy:  %.2f%%\n", 100*res.Accuracy)
			fmt.Printf("Fairness:  %.4f\n", res.Fairness)
			fmt.Printf("Trade-off: %.4f\n", res.Tradeoff)
			fmt.Printf("Confusion: TN=%d FP=%d FN=%d TP=%d\n", tn, fp, fn, tp)
			return nil
		},
	}
	data.register(cmd)
	registerConfigFlags(cmd, &cfg)
	return cmd
}

func sweepCommand() *cobra.Command {
	var data dataFlags
	var cfg evaluation.Config
	var learningRates, regStrengths []float64
	var folds, workers int
	var heatmapDir string

	cmd := &cobra.Command{
		Use:   "sweep -i dataFile",
		Short: "Cross-validates the full learning-rate × regularization grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := data.load()
			if err != nil {
				return err
			}
			train, _, err := ds.Split(data.trainFrac, data.seed)
			if err != nil {
				return err
			}
			grid, err := evaluation.GridSearch(train, learningRates, regStrengths, cfg,
				evaluation.WithFolds(folds),
				evaluation.WithSeed(data.seed),
				evaluation.WithWorkers(workers),
			)
			if err != nil {
				return err
			}

			fmt.Println("lr\treg\taccuracy\tfairness\ttradeoff\tepochs")
			for i := 0; i < grid.Len(); i++ {
				fmt.Printf("%g\t%g\t%.4f\t%+.4f\t%.4f\t%.0f\n",
					grid.LearningRate[i], grid.Reg[i],
					grid.Accuracy[i], grid.Fairness[i], grid.Tradeoff[i], grid.Epoch[i])
			}

			if heatmapDir != "" {
				for _, metric := range []report.Metric{report.MetricAccuracy, report.MetricFairness, report.MetricTradeoff} {
					path := filepath.Join(heatmapDir, fmt.Sprintf("%s_%s.png", data.name, metric))
					title := fmt.Sprintf("%s (%s dataset, protected=%s)", metric, data.name, data.protected)
					if err := report.HeatmapGrid(grid, learningRates, regStrengths, metric, title, path); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	data.register(cmd)
	registerConfigFlags(cmd, &cfg)
	cmd.Flags().Float64SliceVar(&learningRates, "learning-rates", defaultLearningRates, "learning rates to sweep")
	cmd.Flags().Float64SliceVar(&regStrengths, "reg-strengths", defaultRegStrengths, "L2 strengths to sweep")
	cmd.Flags().IntVarP(&folds, "folds", "k", evaluation.DefaultFolds, "cross-validation folds per grid cell")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "concurrent grid cells (output order is preserved)")
	cmd.Flags().StringVarP(&heatmapDir, "heatmap-dir", "o", "", "directory for heatmap PNGs (omit to skip plotting)")
	return cmd
}

func registerConfigFlags(cmd *cobra.Command, cfg *evaluation.Config) {
	cmd.Flags().Float64VarP(&cfg.LearningRate, "learning-rate", "l", 1e-1, "optimizer step size")
	cmd.Flags().Float64VarP(&cfg.Reg, "reg-strength", "r", 1e-1, "L2 weight decay strength")
	cmd.Flags().IntVarP(&cfg.Epochs, "epochs", "n", 100000, "maximum full-batch updates")
	cmd.Flags().BoolVar(&cfg.Reweigh, "reweigh", false, "reweigh training instances for group/label independence")
	cmd.Flags().BoolVar(&cfg.SuppressSensitive, "suppress-sensitive", false, "drop protected columns before training")
	cmd.Flags().BoolVar(&cfg.OnlySensitive, "only-sensitive", true, "suppress only the primary protected column")
}

func confusionCounts(yTrue, yPred []float64) (tn, fp, fn, tp int) {
	for i := range yTrue {
		switch {
		case yTrue[i] == 0 && yPred[i] == 0:
			tn++
		case yTrue[i] == 0 && yPred[i] == 1:
			fp++
		case yTrue[i] == 1 && yPred[i] == 0:
			fn++
		default:
			tp++
		}
	}
	return tn, fp, fn, tp
}

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "fairsweep",
		Short: "Fairness/accuracy trade-off experiments for binary classifiers",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetConsole()
			if verbose {
				log.SetLevel(zerolog.DebugLevel)
			} else {
				log.SetLevel(zerolog.InfoLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(analyzeCommand())
	root.AddCommand(fitCommand())
	root.AddCommand(sweepCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
