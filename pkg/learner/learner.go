// Package learner defines the incremental learner contract and a set of
// base learners that train one example at a time.
package learner

import "github.com/thomas-morcom/streamml/pkg/stream"

// Learner is an incrementally trainable, predictable model. Implementations
// train on one instance per call and vote with a class-score vector; for
// regression models the vector holds a single predicted value.
type Learner interface {
	// Reset discards all learned state.
	Reset()
	// Train updates the model with one example. The instance's Weight
	// scales the update.
	Train(inst *stream.Instance)
	// Votes returns a per-class score vector for the example. A vector
	// whose total mass is zero means "no opinion".
	Votes(inst *stream.Instance) []float64
	// Copy returns an independent deep copy of the learner.
	Copy() Learner
	// Describe returns a short diagnostic summary of the model.
	Describe() string
}

// CorrectlyClassifies reports whether the learner's top vote matches the
// instance's label. An all-zero vote vector never classifies correctly.
func CorrectlyClassifies(l Learner, inst *stream.Instance) bool {
	return ArgMax(l.Votes(inst)) == inst.Label()
}

// ArgMax returns the index of the largest strictly positive entry, or -1
// when the vector is empty or carries no mass.
func ArgMax(votes []float64) int {
	best, bestIdx := 0.0, -1
	for i, v := range votes {
		if v > best {
			best = v
			bestIdx = i
		}
	}
	return bestIdx
}
