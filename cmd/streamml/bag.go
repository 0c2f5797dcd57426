package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thomas-morcom/streamml/pkg/ensemble"
	"github.com/thomas-morcom/streamml/pkg/eval"
)

func bagCmd() *cobra.Command {
	var (
		base       string
		size       int
		window     int
		seed       uint64
		examples   int
		streamKind string
		csvPath    string
		labelCol   int
		classes    int
	)

	cmd := &cobra.Command{
		Use:   "bag",
		Short: "Run the sliding-window replacement ensemble",
		RunE: func(cmd *cobra.Command, args []string) error {
			proto, err := newBaseLearner(base)
			if err != nil {
				return err
			}
			source, err := newSource(streamKind, csvPath, labelCol, seed, false, classes)
			if err != nil {
				return err
			}
			bag, err := ensemble.New(ensemble.Config{
				Base:   proto,
				Size:   size,
				Window: window,
				Seed:   seed,
			})
			if err != nil {
				return err
			}

			slog.Info("starting prequential run",
				"model", "WindowBag", "base", base, "size", size,
				"window", window, "seed", seed, "examples", examples)
			res := eval.Prequential(bag, source, examples, window)
			slog.Info("prequential run finished",
				"examples", res.Seen, "accuracy", res.Accuracy)
			cmd.Println(bag.Describe())
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "nb", "base learner: nb, logistic or majority")
	cmd.Flags().IntVar(&size, "ensemble-size", 10, "number of ensemble members")
	cmd.Flags().IntVar(&window, "window", 1000, "training calls between replacement decisions")
	cmd.Flags().Uint64Var(&seed, "seed", 10, "random seed for Poisson resampling")
	cmd.Flags().IntVar(&examples, "examples", 10000, "number of examples to evaluate")
	cmd.Flags().StringVar(&streamKind, "stream", "quadrant", "synthetic stream: quadrant or mixture")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to stream instead of a synthetic source")
	cmd.Flags().IntVar(&labelCol, "label-col", 0, "label column index for --csv")
	cmd.Flags().IntVar(&classes, "classes", 2, "class count for --csv input")
	return cmd
}
