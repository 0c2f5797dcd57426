// Package eval runs prequential (test-then-train) evaluation of incremental
// models over instance streams.
package eval

import (
	"github.com/thomas-morcom/streamml/pkg/learner"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

// Classifier is the narrow incremental-model contract the evaluator drives:
// train one example, vote on one example, describe the model.
type Classifier interface {
	Train(inst *stream.Instance)
	Votes(inst *stream.Instance) []float64
	Describe() string
}

// Result collects a prequential run's accuracy traces.
type Result struct {
	// Accuracy is the overall test-then-train accuracy.
	Accuracy float64
	// Curve samples the windowed accuracy once per window-size steps.
	Curve []float64
	// Seen is the number of evaluated examples.
	Seen int
}

// Prequential evaluates a classifier over n examples from the source: each
// example is first predicted, the outcome recorded, and only then trained
// on. curveWindow controls the sampling interval and smoothing window of
// the accuracy curve.
func Prequential(model Classifier, source stream.Generator, n, curveWindow int) Result {
	running := &RunningAccuracy{}
	windowed := NewWindowAccuracy(curveWindow)
	var curve []float64

	for i := 0; i < n; i++ {
		inst := source.Next()
		if inst == nil {
			break // finite source drained
		}
		correct := learner.ArgMax(model.Votes(inst)) == inst.Label()
		running.Observe(correct)
		windowed.Observe(correct)
		model.Train(inst)
		if (i+1)%curveWindow == 0 {
			curve = append(curve, windowed.Value())
		}
	}
	return Result{Accuracy: running.Value(), Curve: curve, Seen: running.Seen()}
}

// RegressionResult collects a regression prequential run's error metrics.
type RegressionResult struct {
	MAE  float64
	RMSE float64
	Seen int
}

// RegressionPrequential evaluates a regressor test-then-train over n
// examples. The model's single-element vote vector is the prediction.
func RegressionPrequential(model Classifier, source stream.Generator, n int) RegressionResult {
	reg := &RunningRegression{}
	for i := 0; i < n; i++ {
		inst := source.Next()
		if inst == nil {
			break
		}
		votes := model.Votes(inst)
		if len(votes) > 0 {
			reg.Observe(inst.Y, votes[0])
		}
		model.Train(inst)
	}
	return RegressionResult{MAE: reg.MAE(), RMSE: reg.RMSE(), Seen: reg.Seen()}
}
