package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-morcom/streamml/pkg/learner"
	"github.com/thomas-morcom/streamml/pkg/stream"
)

func validConfig() Config {
	return Config{
		Base:   learner.NewGaussianNB(),
		Size:   3,
		Window: 5,
		Seed:   10,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil base", func(c *Config) { c.Base = nil }},
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative size", func(c *Config) { c.Size = -1 }},
		{"zero window", func(c *Config) { c.Window = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}

	b, err := New(validConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Size())
}

func TestCountersNeverExceedSeen(t *testing.T) {
	b, err := New(Config{Base: learner.NewGaussianNB(), Size: 5, Window: 7, Seed: 3})
	require.NoError(t, err)

	gen := stream.NewQuadrantGenerator(99)
	for i := 0; i < 200; i++ {
		b.Train(gen.Next())
		for j := range b.members {
			m := &b.members[j]
			require.LessOrEqual(t, m.correct, m.seen, "member %d after call %d", j, i)
		}
		require.LessOrEqual(t, b.challenger.correct, b.challenger.seen)
	}
	assert.Equal(t, 5, b.Size())
}

func TestWindowCycleTriggersReplacementDecision(t *testing.T) {
	b, err := New(validConfig())
	require.NoError(t, err)

	gen := stream.NewQuadrantGenerator(1)
	for i := 0; i < 4; i++ {
		b.Train(gen.Next())
		assert.Equal(t, i+1, b.WindowCount())
	}
	// Fifth call completes the window: the replacement decision runs and
	// the counter resets.
	b.Train(gen.Next())
	assert.Equal(t, 0, b.WindowCount())

	// The next call starts a new window with a fresh challenger.
	b.Train(gen.Next())
	assert.Equal(t, 1, b.WindowCount())
	assert.LessOrEqual(t, b.challenger.seen, 1)
}

func TestReplaceWorstSwapsChallengerIn(t *testing.T) {
	b, err := New(validConfig())
	require.NoError(t, err)

	marker := learner.NewMajorityClass()
	marker.Train(stream.NewInstance([]float64{0}, 1))
	b.challenger = member{learner: marker, correct: 8, seen: 10}
	b.members[0] = member{learner: learner.NewMajorityClass(), correct: 9, seen: 10}
	b.members[1] = member{learner: learner.NewMajorityClass(), correct: 2, seen: 10} // worst
	b.members[2] = member{learner: learner.NewMajorityClass(), correct: 5, seen: 10}

	b.replaceWorst()

	assert.Same(t, marker, b.members[1].learner, "worst member should hold the challenger's learner")
	assert.Equal(t, 8, b.members[1].correct)
	assert.Equal(t, 10, b.members[1].seen)
	assert.Equal(t, 9, b.members[0].correct, "other members untouched")
	assert.Equal(t, 5, b.members[2].correct)
}

func TestReplaceWorstKeepsEnsembleWhenNoMemberIsWorse(t *testing.T) {
	b, err := New(validConfig())
	require.NoError(t, err)

	b.challenger = member{learner: learner.NewMajorityClass(), correct: 1, seen: 10}
	for i := range b.members {
		b.members[i] = member{learner: learner.NewMajorityClass(), correct: 5, seen: 10}
	}

	b.replaceWorst()

	for i := range b.members {
		assert.Equal(t, 5, b.members[i].correct, "member %d must keep its counters", i)
	}
}

func TestReplaceWorstZeroSeenGuard(t *testing.T) {
	b, err := New(validConfig())
	require.NoError(t, err)

	// A challenger that never saw an example has accuracy 0, not NaN, so
	// no member can be strictly worse and the ensemble stays untouched.
	b.challenger = member{learner: learner.NewMajorityClass()}
	for i := range b.members {
		b.members[i] = member{learner: learner.NewMajorityClass(), correct: 0, seen: 0}
	}

	b.replaceWorst()

	for i := range b.members {
		assert.Zero(t, b.members[i].seen)
	}
}

func TestVotesAggregation(t *testing.T) {
	b, err := New(validConfig())
	require.NoError(t, err)

	votesFor := func(label float64) learner.Learner {
		m := learner.NewMajorityClass()
		m.Train(stream.NewInstance([]float64{0}, label))
		return m
	}
	b.members[0] = member{learner: votesFor(1), correct: 7, seen: 10}
	b.members[1] = member{learner: votesFor(0), correct: 4, seen: 10}
	// An untrained member has an all-zero vote vector and must abstain.
	b.members[2] = member{learner: learner.NewMajorityClass(), correct: 100, seen: 100}

	combined := b.Votes(stream.NewInstance([]float64{0}, 0))

	require.Len(t, combined, 2)
	assert.Equal(t, 4.0, combined[0], "member 1 one-hot vote scaled by its correct count")
	assert.Equal(t, 7.0, combined[1], "member 0 one-hot vote scaled by its correct count")
}

func TestDeterministicScenario(t *testing.T) {
	// ensemble_size=3, window_size=5, 5 examples with a fixed seed: after
	// the fifth call exactly one replacement decision has run and the
	// next window starts with fresh challenger counters.
	run := func() *WindowBag {
		b, err := New(Config{Base: learner.NewMajorityClass(), Size: 3, Window: 5, Seed: 42})
		require.NoError(t, err)
		gen := stream.NewQuadrantGenerator(42)
		for i := 0; i < 5; i++ {
			b.Train(gen.Next())
		}
		return b
	}

	a, b := run(), run()
	assert.Equal(t, 0, a.WindowCount())

	// Same seed, same draws: both runs end in an identical counter state.
	for i := range a.members {
		assert.Equal(t, a.members[i].seen, b.members[i].seen)
		assert.Equal(t, a.members[i].correct, b.members[i].correct)
	}
	assert.Equal(t, a.Describe(), b.Describe())
}

func TestResetRestoresInitialState(t *testing.T) {
	b, err := New(validConfig())
	require.NoError(t, err)

	gen := stream.NewQuadrantGenerator(5)
	for i := 0; i < 20; i++ {
		b.Train(gen.Next())
	}
	require.NoError(t, b.Reset(validConfig()))

	assert.Equal(t, 0, b.WindowCount())
	for i := range b.members {
		assert.Zero(t, b.members[i].seen)
		assert.Zero(t, b.members[i].correct)
	}
}
