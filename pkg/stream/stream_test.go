package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	var nilSchema *Schema
	assert.Error(t, nilSchema.Validate())
	assert.Error(t, (&Schema{}).Validate(), "no features")
	assert.Error(t, NewNominalSchema(2, 1).Validate(), "single class")
	assert.NoError(t, NewNominalSchema(2, 2).Validate())
	assert.NoError(t, NewNumericSchema(3).Validate())
	assert.Equal(t, 1, NewNumericSchema(3).NumClasses)
}

func TestInstanceCopyAndWeight(t *testing.T) {
	inst := NewInstance([]float64{1, 2}, 1)
	assert.Equal(t, 1.0, inst.Weight)

	weighted := inst.WithWeight(3)
	weighted.X[0] = 99
	assert.Equal(t, 1.0, inst.X[0], "weighted copy must not alias the original")
	assert.Equal(t, 3.0, weighted.Weight)
	assert.Equal(t, 1, weighted.Label())
}

func TestGeneratorDeterminism(t *testing.T) {
	a := NewQuadrantGenerator(7)
	b := NewQuadrantGenerator(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next(), "step %d", i)
	}

	c := NewGaussianMixtureGenerator(3, 3, 2, 0.5)
	d := NewGaussianMixtureGenerator(3, 3, 2, 0.5)
	for i := 0; i < 20; i++ {
		assert.Equal(t, c.Next(), d.Next(), "step %d", i)
	}
}

func TestQuadrantLabels(t *testing.T) {
	g := NewQuadrantGenerator(1)
	for i := 0; i < 100; i++ {
		inst := g.Next()
		want := 0
		if inst.X[0]*inst.X[1] > 0 {
			want = 1
		}
		assert.Equal(t, want, inst.Label())
	}
}

func TestMixtureLabelsInRange(t *testing.T) {
	g := NewGaussianMixtureGenerator(9, 4, 3, 1)
	assert.Equal(t, 4, g.Schema().NumClasses)
	for i := 0; i < 100; i++ {
		inst := g.Next()
		assert.GreaterOrEqual(t, inst.Label(), 0)
		assert.Less(t, inst.Label(), 4)
		assert.Len(t, inst.X, 3)
	}
}

func TestStreamCSVSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "1.0,2.0,0\n" +
		"3.0,oops,1\n" + // non-numeric field: skipped
		"5.0,6.0\n" + // wrong field count: skipped
		"7.0,8.0,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out := make(chan *Instance, 8)
	_, err := StreamCSV(path, 2, out)
	require.NoError(t, err)

	var got []*Instance
	for inst := range out {
		got = append(got, inst)
	}
	require.Len(t, got, 2)
	assert.Equal(t, []float64{1, 2}, got[0].X)
	assert.Equal(t, 0, got[0].Label())
	assert.Equal(t, []float64{7, 8}, got[1].X)
	assert.Equal(t, 1, got[1].Label())
}

func TestStreamCSVEarlyStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,0\n2,1\n3,0\n4,1\n"), 0o644))

	out := make(chan *Instance)
	done, err := StreamCSV(path, 1, out)
	require.NoError(t, err)

	first := <-out
	assert.Equal(t, []float64{1}, first.X)
	close(done)
	// The reader goroutine must terminate and close the channel.
	for range out {
	}
}

func TestChannelSourceDrains(t *testing.T) {
	ch := make(chan *Instance, 2)
	ch <- NewInstance([]float64{1}, 0)
	ch <- NewInstance([]float64{2}, 1)
	close(ch)

	src := NewChannelSource(ch, NewNominalSchema(1, 2))
	assert.Equal(t, []float64{1}, src.Next().X)
	assert.Equal(t, []float64{2}, src.Next().X)
	assert.Nil(t, src.Next(), "drained source yields nil")
}
