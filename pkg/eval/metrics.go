package eval

import "math"

// RunningAccuracy tracks classification accuracy over an entire stream.
type RunningAccuracy struct {
	correct int
	seen    int
}

// Observe records one prediction outcome.
func (r *RunningAccuracy) Observe(correct bool) {
	r.seen++
	if correct {
		r.correct++
	}
}

// Value returns the accuracy so far, 0 before any observation.
func (r *RunningAccuracy) Value() float64 {
	if r.seen == 0 {
		return 0
	}
	return float64(r.correct) / float64(r.seen)
}

// Seen returns the number of observations.
func (r *RunningAccuracy) Seen() int { return r.seen }

// WindowAccuracy tracks classification accuracy over the most recent n
// observations with a ring buffer.
type WindowAccuracy struct {
	ring    []bool
	next    int
	filled  int
	correct int
}

// NewWindowAccuracy creates a window of the given size.
func NewWindowAccuracy(n int) *WindowAccuracy {
	return &WindowAccuracy{ring: make([]bool, n)}
}

// Observe records one prediction outcome, evicting the oldest when full.
func (w *WindowAccuracy) Observe(correct bool) {
	if w.filled == len(w.ring) {
		if w.ring[w.next] {
			w.correct--
		}
	} else {
		w.filled++
	}
	w.ring[w.next] = correct
	if correct {
		w.correct++
	}
	w.next = (w.next + 1) % len(w.ring)
}

// Value returns the windowed accuracy, 0 before any observation.
func (w *WindowAccuracy) Value() float64 {
	if w.filled == 0 {
		return 0
	}
	return float64(w.correct) / float64(w.filled)
}

// RunningRegression tracks MAE and RMSE over a stream of numeric
// predictions.
type RunningRegression struct {
	absSum float64
	sqSum  float64
	seen   int
}

// Observe records one prediction/truth pair.
func (r *RunningRegression) Observe(truth, pred float64) {
	d := pred - truth
	if d < 0 {
		d = -d
	}
	r.absSum += d
	r.sqSum += d * d
	r.seen++
}

// MAE returns the mean absolute error so far.
func (r *RunningRegression) MAE() float64 {
	if r.seen == 0 {
		return 0
	}
	return r.absSum / float64(r.seen)
}

// RMSE returns the root mean squared error so far.
func (r *RunningRegression) RMSE() float64 {
	if r.seen == 0 {
		return 0
	}
	return math.Sqrt(r.sqSum / float64(r.seen))
}

// Seen returns the number of observations.
func (r *RunningRegression) Seen() int { return r.seen }
