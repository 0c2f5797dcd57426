package main

import (
	"fmt"
	"log"

	"github.com/thomas-morcom/streamml/pkg/eval"
	"github.com/thomas-morcom/streamml/pkg/lazy"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

func main() {
	fmt.Println("=== CentroidKNN Demo: windowed centroids, classification and regression ===")

	// Step 1. Classification over a three-class Gaussian mixture, comparing
	// the two neighbour-search strategies on identical streams.
	for _, search := range []struct {
		name string
		kind lazy.SearchKind
	}{
		{"linear", lazy.SearchLinear},
		{"kdtree", lazy.SearchKDTree},
	} {
		source := stream.NewGaussianMixtureGenerator(42, 3, 2, 0.8)
		model, err := lazy.New(lazy.Config{
			K:      3,
			Limit:  1000,
			Search: search.kind,
		}, source.Schema())
		if err != nil {
			log.Fatal(err)
		}
		res := eval.Prequential(model, source, 10000, 1000)
		fmt.Printf("classification (%s search): accuracy %.3f over %d examples\n",
			search.name, res.Accuracy, res.Seen)
	}

	// Step 2. Regression over a noisy linear stream, mean vs median.
	for _, useMedian := range []bool{false, true} {
		source := stream.NewLinearRegressionGenerator(42, 3, 0.5)
		model, err := lazy.New(lazy.Config{
			K:         5,
			Limit:     1000,
			UseMedian: useMedian,
			Search:    lazy.SearchLinear,
		}, source.Schema())
		if err != nil {
			log.Fatal(err)
		}
		res := eval.RegressionPrequential(model, source, 10000)
		mode := "mean"
		if useMedian {
			mode = "median"
		}
		fmt.Printf("regression (%s): MAE %.3f, RMSE %.3f over %d examples\n",
			mode, res.MAE, res.RMSE, res.Seen)
	}
}
