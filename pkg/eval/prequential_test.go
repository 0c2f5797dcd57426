package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-morcom/streamml/pkg/learner"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

// sliceSource replays a fixed label sequence, one feature per example.
type sliceSource struct {
	labels []float64
	next   int
	schema *stream.Schema
}

func (s *sliceSource) Schema() *stream.Schema { return s.schema }

func (s *sliceSource) Next() *stream.Instance {
	if s.next >= len(s.labels) {
		return nil
	}
	y := s.labels[s.next]
	s.next++
	return stream.NewInstance([]float64{y}, y)
}

func TestPrequentialTestThenTrain(t *testing.T) {
	// MajorityClass over labels 1,1,1,0,1: the model abstains on the first
	// example (wrong), then predicts the running majority before training.
	// Expected outcomes: wrong, right, right, wrong, right.
	src := &sliceSource{labels: []float64{1, 1, 1, 0, 1}, schema: stream.NewNominalSchema(1, 2)}
	res := Prequential(learner.NewMajorityClass(), src, 5, 1)

	assert.Equal(t, 5, res.Seen)
	assert.InDelta(t, 3.0/5.0, res.Accuracy, 1e-12)
	require.Len(t, res.Curve, 5)
	assert.Equal(t, []float64{0, 1, 1, 0, 1}, res.Curve)
}

func TestPrequentialStopsOnDrainedSource(t *testing.T) {
	src := &sliceSource{labels: []float64{1, 1}, schema: stream.NewNominalSchema(1, 2)}
	res := Prequential(learner.NewMajorityClass(), src, 100, 10)
	assert.Equal(t, 2, res.Seen)
}

func TestRunningAccuracy(t *testing.T) {
	r := &RunningAccuracy{}
	assert.Zero(t, r.Value())
	r.Observe(true)
	r.Observe(false)
	r.Observe(true)
	assert.InDelta(t, 2.0/3.0, r.Value(), 1e-12)
	assert.Equal(t, 3, r.Seen())
}

func TestWindowAccuracyEvictsOldest(t *testing.T) {
	w := NewWindowAccuracy(3)
	assert.Zero(t, w.Value())

	w.Observe(true)
	w.Observe(true)
	w.Observe(false)
	assert.InDelta(t, 2.0/3.0, w.Value(), 1e-12)

	// The two oldest (both correct) fall out of the window.
	w.Observe(false)
	w.Observe(false)
	assert.InDelta(t, 0.0, w.Value(), 1e-12)

	w.Observe(true)
	w.Observe(true)
	assert.InDelta(t, 2.0/3.0, w.Value(), 1e-12)
}

func TestRunningRegression(t *testing.T) {
	r := &RunningRegression{}
	r.Observe(1, 2)  // abs err 1
	r.Observe(3, 1)  // abs err 2
	r.Observe(5, 5)  // abs err 0
	assert.InDelta(t, 1.0, r.MAE(), 1e-12)
	assert.InDelta(t, 1.2909944487358056, r.RMSE(), 1e-9) // sqrt(5/3)
	assert.Equal(t, 3, r.Seen())
}
