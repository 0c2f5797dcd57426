package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomas-morcom/streamml/pkg/learner"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streamml",
		Short: "Incremental classifiers evaluated test-then-train over data streams",
		Long: `streamml runs prequential (test-then-train) evaluation of incremental
classifiers over synthetic or CSV data streams. Every example is first
predicted, the outcome recorded, and only then used for training.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(bagCmd(), knnCmd())
	return cmd
}

// newBaseLearner maps the --base flag to a learner prototype.
func newBaseLearner(name string) (learner.Learner, error) {
	switch name {
	case "nb":
		return learner.NewGaussianNB(), nil
	case "logistic":
		return learner.NewLogisticSGD(0.05), nil
	case "majority":
		return learner.NewMajorityClass(), nil
	default:
		return nil, fmt.Errorf("unknown base learner %q (want nb, logistic or majority)", name)
	}
}

// newSource builds the instance source from the shared stream flags. For
// CSV input the caller declares the target shape: numeric for regression,
// otherwise a nominal target with the given class count.
func newSource(kind, csvPath string, labelCol int, seed uint64, numeric bool, classes int) (stream.Generator, error) {
	if csvPath != "" {
		ch := make(chan *stream.Instance, 64)
		if _, err := stream.StreamCSV(csvPath, labelCol, ch); err != nil {
			return nil, err
		}
		first, ok := <-ch
		if !ok {
			return nil, errors.New("csv stream is empty")
		}
		var schema *stream.Schema
		if numeric {
			schema = stream.NewNumericSchema(len(first.X))
		} else {
			schema = stream.NewNominalSchema(len(first.X), classes)
		}
		if err := schema.Validate(); err != nil {
			return nil, err
		}
		return &prefixedSource{first: first, rest: stream.NewChannelSource(ch, schema)}, nil
	}
	switch kind {
	case "quadrant":
		return stream.NewQuadrantGenerator(seed), nil
	case "mixture":
		return stream.NewGaussianMixtureGenerator(seed, 3, 2, 0.8), nil
	case "regression":
		return stream.NewLinearRegressionGenerator(seed, 3, 0.5), nil
	default:
		return nil, fmt.Errorf("unknown stream %q (want quadrant, mixture or regression)", kind)
	}
}

// prefixedSource replays one already-read instance before the wrapped
// source. Reading the first row is how the CSV path learns its width.
type prefixedSource struct {
	first *stream.Instance
	rest  *stream.ChannelSource
}

func (s *prefixedSource) Schema() *stream.Schema { return s.rest.Schema() }

func (s *prefixedSource) Next() *stream.Instance {
	if s.first != nil {
		inst := s.first
		s.first = nil
		return inst
	}
	return s.rest.Next()
}
