// Package ensemble implements an online-bagging ensemble with periodic
// challenger-based member replacement.
//
// Each training example is resampled into every member with an independent
// Poisson(1) weight, following Oza and Russell's online bagging. Every
// Window training calls a freshly built "challenger" learner, trained
// alongside the ensemble, replaces the worst-performing member if the
// challenger outperformed it over the window.
package ensemble

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/thomas-morcom/streamml/pkg/learner"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

// Config holds the ensemble hyperparameters.
type Config struct {
	// Base is the learner prototype copied into every member and every
	// challenger.
	Base learner.Learner
	// Size is the number of ensemble members.
	Size int
	// Window is the number of training calls between replacement decisions.
	Window int
	// Seed seeds the Poisson resampling generator.
	Seed uint64
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	if c.Base == nil {
		return errors.New("ensemble: nil base learner")
	}
	if c.Size <= 0 {
		return errors.New("ensemble: size must be positive")
	}
	if c.Window <= 0 {
		return errors.New("ensemble: window must be positive")
	}
	return nil
}

// member is one ensemble slot: a learner plus its running accuracy counters.
// Counters persist across windows and reset only when the member is replaced.
type member struct {
	learner learner.Learner
	correct int
	seen    int
}

// accuracy returns correct/seen, defined as 0 for an untrained member.
func (m *member) accuracy() float64 {
	if m.seen == 0 {
		return 0
	}
	return float64(m.correct) / float64(m.seen)
}

// WindowBag is the sliding-window replacement ensemble. It is not safe for
// concurrent use; reproducibility depends on training calls consuming the
// Poisson generator in a single deterministic order.
type WindowBag struct {
	cfg         Config
	members     []member
	challenger  member
	windowCount int
	poisson     distuv.Poisson
}

// New builds and initializes an ensemble from the configuration.
func New(cfg Config) (*WindowBag, error) {
	b := &WindowBag{}
	if err := b.Reset(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset re-initializes all ensemble state from the configuration.
func (b *WindowBag) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.cfg = cfg
	b.poisson = distuv.Poisson{Lambda: 1, Src: rand.NewSource(cfg.Seed)}
	proto := cfg.Base.Copy()
	proto.Reset()
	b.members = make([]member, cfg.Size)
	for i := range b.members {
		b.members[i] = member{learner: proto.Copy()}
	}
	b.challenger = member{}
	b.windowCount = 0
	return nil
}

// Train updates every member and the challenger with one example.
//
// Each member draws its own Poisson(1) variate k; when k > 0 the member's
// correctness on the unweighted example is judged first, then the member
// trains on the example with its weight scaled by k. The challenger draws
// a separate variate and is updated the same way. Every Window calls the
// replacement decision runs and the window counter resets.
func (b *WindowBag) Train(inst *stream.Instance) {
	if b.windowCount == 0 {
		fresh := b.cfg.Base.Copy()
		fresh.Reset()
		b.challenger = member{learner: fresh}
	}
	for i := range b.members {
		b.resample(&b.members[i], inst)
	}
	b.resample(&b.challenger, inst)
	b.windowCount++
	if b.windowCount >= b.cfg.Window {
		b.replaceWorst()
		b.windowCount = 0
	}
}

// resample applies one Poisson-weighted training step to a member.
func (b *WindowBag) resample(m *member, inst *stream.Instance) {
	k := int(b.poisson.Rand())
	if k == 0 {
		return
	}
	wasCorrect := learner.CorrectlyClassifies(m.learner, inst)
	m.learner.Train(inst.WithWeight(inst.Weight * float64(k)))
	m.seen++
	if wasCorrect {
		m.correct++
	}
}

// replaceWorst swaps the challenger into the minimum-accuracy member slot,
// but only if that member is strictly worse than the challenger. The scan's
// running minimum starts at the challenger's own accuracy, so an ensemble
// with no member below it is left untouched and the challenger discarded.
func (b *WindowBag) replaceWorst() {
	worst := b.challenger.accuracy()
	worstIdx := -1
	for i := range b.members {
		if acc := b.members[i].accuracy(); acc < worst {
			worst = acc
			worstIdx = i
		}
	}
	if worstIdx >= 0 {
		b.members[worstIdx] = b.challenger
	}
}

// Votes aggregates the members' predictions for one example.
//
// Each member with positive vote mass casts a one-hot vote for its arg-max
// class, scaled by the member's raw correct count, so members that have
// been both accurate and long-lived dominate. Members with an all-zero
// vote vector abstain.
func (b *WindowBag) Votes(inst *stream.Instance) []float64 {
	var combined []float64
	for i := range b.members {
		votes := b.members[i].learner.Votes(inst)
		maxIdx := learner.ArgMax(votes)
		if maxIdx < 0 {
			continue
		}
		for len(combined) < len(votes) {
			combined = append(combined, 0)
		}
		combined[maxIdx] += float64(b.members[i].correct)
	}
	return combined
}

// Describe returns a per-member accuracy summary.
func (b *WindowBag) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "WindowBag: %d members, window=%d\n", len(b.members), b.cfg.Window)
	for i := range b.members {
		m := &b.members[i]
		fmt.Fprintf(&sb, "  member %d: %d/%d correct (%.3f)\n", i, m.correct, m.seen, m.accuracy())
	}
	return sb.String()
}

// WindowCount returns the number of training calls since the last
// replacement decision.
func (b *WindowBag) WindowCount() int { return b.windowCount }

// Size returns the number of ensemble members.
func (b *WindowBag) Size() int { return len(b.members) }
