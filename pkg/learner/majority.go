package learner

import (
	"fmt"

	"github.com/thomas-morcom/streamml/pkg/stream"
)

// MajorityClass votes with the raw label frequencies seen so far. It is the
// cheapest possible baseline and, being fully deterministic, the learner of
// choice in tests.
type MajorityClass struct {
	counts []float64
}

// NewMajorityClass creates an empty majority-class learner.
func NewMajorityClass() *MajorityClass { return &MajorityClass{} }

// Reset discards the label counts.
func (m *MajorityClass) Reset() { m.counts = nil }

// Train adds the example's weight to its label's count.
func (m *MajorityClass) Train(inst *stream.Instance) {
	c := inst.Label()
	for len(m.counts) <= c {
		m.counts = append(m.counts, 0)
	}
	m.counts[c] += inst.Weight
}

// Votes returns the accumulated label counts.
func (m *MajorityClass) Votes(_ *stream.Instance) []float64 {
	return append([]float64(nil), m.counts...)
}

// Copy returns a deep copy of the learner.
func (m *MajorityClass) Copy() Learner {
	return &MajorityClass{counts: append([]float64(nil), m.counts...)}
}

// Describe summarizes the observed label counts.
func (m *MajorityClass) Describe() string {
	return fmt.Sprintf("MajorityClass: counts=%v", m.counts)
}
