package learner

import (
	"fmt"
	"math"

	"github.com/thomas-morcom/streamml/pkg/stream"
)

// LogisticSGD is a binary logistic-regression learner updated with one
// stochastic-gradient step per training call. The instance weight scales
// the gradient, which is what lets Poisson-resampled ensembles reuse it
// unchanged.
type LogisticSGD struct {
	Lr float64

	w    []float64
	b    float64
	seen int
}

// NewLogisticSGD creates a logistic learner with the given learning rate.
func NewLogisticSGD(lr float64) *LogisticSGD {
	return &LogisticSGD{Lr: lr}
}

// Reset zeroes the weights while keeping the configured learning rate.
func (m *LogisticSGD) Reset() {
	m.w = nil
	m.b = 0
	m.seen = 0
}

// Train performs one SGD step on the binary cross-entropy loss.
func (m *LogisticSGD) Train(inst *stream.Instance) {
	if m.w == nil {
		m.w = make([]float64, len(inst.X))
	}
	p := m.proba(inst.X)
	// d(BCE)/d(logit) = p - y, scaled by the example weight.
	g := (p - inst.Y) * inst.Weight
	for j, x := range inst.X {
		m.w[j] -= m.Lr * g * x
	}
	m.b -= m.Lr * g
	m.seen++
}

// Votes returns {P(y=0), P(y=1)} for the example.
func (m *LogisticSGD) Votes(inst *stream.Instance) []float64 {
	if m.w == nil {
		return nil
	}
	p := m.proba(inst.X)
	return []float64{1 - p, p}
}

// Copy returns a deep copy of the learner.
func (m *LogisticSGD) Copy() Learner {
	return &LogisticSGD{
		Lr:   m.Lr,
		w:    append([]float64(nil), m.w...),
		b:    m.b,
		seen: m.seen,
	}
}

// Describe summarizes the model dimensions and training volume.
func (m *LogisticSGD) Describe() string {
	return fmt.Sprintf("LogisticSGD: %d weights, lr=%g, %d examples", len(m.w), m.Lr, m.seen)
}

func (m *LogisticSGD) proba(x []float64) float64 {
	sum := m.b
	for j, v := range x {
		sum += m.w[j] * v
	}
	return sigmoid(sum)
}

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }
