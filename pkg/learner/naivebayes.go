package learner

import (
	"fmt"
	"math"

	"github.com/thomas-morcom/streamml/pkg/stream"
)

// minVariance floors per-attribute variance so likelihoods stay finite for
// constant attributes.
const minVariance = 1e-9

// GaussianNB is an incremental naive Bayes classifier with Gaussian
// per-attribute likelihoods. Class statistics are maintained with a
// weighted Welford update, so training is O(features) per example and
// never revisits old data.
type GaussianNB struct {
	classWeight []float64   // total training weight per class
	mean        [][]float64 // per class, per attribute
	m2          [][]float64 // per class, per attribute sum of squared deviations
	totalWeight float64
}

// NewGaussianNB creates an empty Gaussian naive Bayes learner.
func NewGaussianNB() *GaussianNB { return &GaussianNB{} }

// Reset discards all class statistics.
func (nb *GaussianNB) Reset() {
	nb.classWeight = nil
	nb.mean = nil
	nb.m2 = nil
	nb.totalWeight = 0
}

// Train folds one weighted example into the per-class running statistics.
func (nb *GaussianNB) Train(inst *stream.Instance) {
	w := inst.Weight
	if w <= 0 {
		return
	}
	c := inst.Label()
	nb.grow(c, len(inst.X))

	nb.classWeight[c] += w
	nb.totalWeight += w
	cw := nb.classWeight[c]
	for j, x := range inst.X {
		delta := x - nb.mean[c][j]
		nb.mean[c][j] += delta * w / cw
		nb.m2[c][j] += w * delta * (x - nb.mean[c][j])
	}
}

// Votes returns unnormalized posterior scores, one per observed class.
// Scores are computed in log space and exponentiated after subtracting the
// maximum, keeping relative mass while avoiding underflow.
func (nb *GaussianNB) Votes(inst *stream.Instance) []float64 {
	if nb.totalWeight == 0 {
		return nil
	}
	logs := make([]float64, len(nb.classWeight))
	maxLog := math.Inf(-1)
	for c := range logs {
		if nb.classWeight[c] == 0 {
			logs[c] = math.Inf(-1)
			continue
		}
		ll := math.Log(nb.classWeight[c] / nb.totalWeight)
		for j, x := range inst.X {
			variance := nb.m2[c][j] / nb.classWeight[c]
			if variance < minVariance {
				variance = minVariance
			}
			d := x - nb.mean[c][j]
			ll += -0.5*math.Log(2*math.Pi*variance) - d*d/(2*variance)
		}
		logs[c] = ll
		if ll > maxLog {
			maxLog = ll
		}
	}
	votes := make([]float64, len(logs))
	for c, ll := range logs {
		if math.IsInf(ll, -1) {
			continue
		}
		votes[c] = math.Exp(ll - maxLog)
	}
	return votes
}

// Copy returns a deep copy of the learner.
func (nb *GaussianNB) Copy() Learner {
	out := &GaussianNB{totalWeight: nb.totalWeight}
	out.classWeight = append([]float64(nil), nb.classWeight...)
	out.mean = copyMatrix(nb.mean)
	out.m2 = copyMatrix(nb.m2)
	return out
}

// Describe summarizes the observed classes and training mass.
func (nb *GaussianNB) Describe() string {
	return fmt.Sprintf("GaussianNB: %d classes, %.1f training weight", len(nb.classWeight), nb.totalWeight)
}

// grow extends the per-class structures to cover class index c.
func (nb *GaussianNB) grow(c, numAttrs int) {
	for len(nb.classWeight) <= c {
		nb.classWeight = append(nb.classWeight, 0)
		nb.mean = append(nb.mean, make([]float64, numAttrs))
		nb.m2 = append(nb.m2, make([]float64, numAttrs))
	}
}

func copyMatrix(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
