package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thomas-morcom/streamml/pkg/eval"
	"github.com/thomas-morcom/streamml/pkg/lazy"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

func knnCmd() *cobra.Command {
	var (
		k          int
		limit      int
		median     bool
		searchName string
		seed       uint64
		examples   int
		streamKind string
		csvPath    string
		labelCol   int
		classes    int
		numeric    bool
	)

	cmd := &cobra.Command{
		Use:   "knn",
		Short: "Run the centroid-windowed k-NN classifier/regressor",
		RunE: func(cmd *cobra.Command, args []string) error {
			var search lazy.SearchKind
			switch searchName {
			case "linear":
				search = lazy.SearchLinear
			case "kdtree":
				search = lazy.SearchKDTree
			default:
				return fmt.Errorf("unknown search strategy %q (want linear or kdtree)", searchName)
			}
			source, err := newSource(streamKind, csvPath, labelCol, seed, numeric, classes)
			if err != nil {
				return err
			}
			model, err := lazy.New(lazy.Config{
				K:         k,
				Limit:     limit,
				UseMedian: median,
				Search:    search,
			}, source.Schema())
			if err != nil {
				return err
			}

			slog.Info("starting prequential run",
				"model", "CentroidKNN", "k", k, "limit", limit,
				"median", median, "search", searchName, "examples", examples)
			if source.Schema().Target == stream.Numeric {
				res := eval.RegressionPrequential(model, source, examples)
				slog.Info("prequential run finished",
					"examples", res.Seen, "mae", res.MAE, "rmse", res.RMSE)
			} else {
				res := eval.Prequential(model, source, examples, limit)
				slog.Info("prequential run finished",
					"examples", res.Seen, "accuracy", res.Accuracy)
			}
			cmd.Println(model.Describe())
			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", 10, "number of neighbours")
	cmd.Flags().IntVar(&limit, "limit", 1000, "maximum number of windowed examples")
	cmd.Flags().BoolVar(&median, "median", false, "use median instead of mean for regression")
	cmd.Flags().StringVar(&searchName, "search", "linear", "neighbour search: linear or kdtree")
	cmd.Flags().Uint64Var(&seed, "seed", 10, "random seed for synthetic streams")
	cmd.Flags().IntVar(&examples, "examples", 10000, "number of examples to evaluate")
	cmd.Flags().StringVar(&streamKind, "stream", "mixture", "synthetic stream: quadrant, mixture or regression")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to stream instead of a synthetic source")
	cmd.Flags().IntVar(&labelCol, "label-col", 0, "label column index for --csv")
	cmd.Flags().IntVar(&classes, "classes", 2, "class count for nominal --csv input")
	cmd.Flags().BoolVar(&numeric, "numeric", false, "treat the --csv target as numeric (regression)")
	return cmd
}
