package stream

import (
	"math"

	"golang.org/x/exp/rand"
)

// Generator produces an endless synthetic stream of labeled instances.
type Generator interface {
	Next() *Instance
	Schema() *Schema
}

// QuadrantGenerator emits a two-feature binary stream.
// Rule: if x1 * x2 > 0 → class 1, else class 0.
type QuadrantGenerator struct {
	rng    *rand.Rand
	schema *Schema
}

// NewQuadrantGenerator seeds a deterministic quadrant stream.
func NewQuadrantGenerator(seed uint64) *QuadrantGenerator {
	return &QuadrantGenerator{
		rng:    rand.New(rand.NewSource(seed)),
		schema: NewNominalSchema(2, 2),
	}
}

func (g *QuadrantGenerator) Schema() *Schema { return g.schema }

func (g *QuadrantGenerator) Next() *Instance {
	x1 := g.rng.Float64()*2 - 1 // [-1,1]
	x2 := g.rng.Float64()*2 - 1
	y := 0.0
	if x1*x2 > 0 {
		y = 1.0
	}
	return NewInstance([]float64{x1, x2}, y)
}

// GaussianMixtureGenerator emits one spherical Gaussian blob per class,
// centered on the unit-ish circle, useful for multi-class experiments.
type GaussianMixtureGenerator struct {
	rng     *rand.Rand
	schema  *Schema
	centers [][]float64
	stddev  float64
}

// NewGaussianMixtureGenerator builds a stream of numClasses blobs over
// numFeatures attributes with the given spread.
func NewGaussianMixtureGenerator(seed uint64, numClasses, numFeatures int, stddev float64) *GaussianMixtureGenerator {
	rng := rand.New(rand.NewSource(seed))
	centers := make([][]float64, numClasses)
	for c := range centers {
		angle := 2 * math.Pi * float64(c) / float64(numClasses)
		center := make([]float64, numFeatures)
		center[0] = 3 * math.Cos(angle)
		if numFeatures > 1 {
			center[1] = 3 * math.Sin(angle)
		}
		centers[c] = center
	}
	return &GaussianMixtureGenerator{
		rng:     rng,
		schema:  NewNominalSchema(numFeatures, numClasses),
		centers: centers,
		stddev:  stddev,
	}
}

func (g *GaussianMixtureGenerator) Schema() *Schema { return g.schema }

func (g *GaussianMixtureGenerator) Next() *Instance {
	c := g.rng.Intn(len(g.centers))
	x := make([]float64, g.schema.NumFeatures())
	for j := range x {
		x[j] = g.centers[c][j] + g.rng.NormFloat64()*g.stddev
	}
	return NewInstance(x, float64(c))
}

// LinearRegressionGenerator emits a numeric-target stream y = w·x + b + noise.
type LinearRegressionGenerator struct {
	rng    *rand.Rand
	schema *Schema
	w      []float64
	b      float64
	noise  float64
}

// NewLinearRegressionGenerator draws a random linear model with weights in
// [-2,2] and bias in [-1,1], then streams noisy samples of it.
func NewLinearRegressionGenerator(seed uint64, numFeatures int, noise float64) *LinearRegressionGenerator {
	rng := rand.New(rand.NewSource(seed))
	w := make([]float64, numFeatures)
	for i := range w {
		w[i] = rng.Float64()*4 - 2
	}
	return &LinearRegressionGenerator{
		rng:    rng,
		schema: NewNumericSchema(numFeatures),
		w:      w,
		b:      rng.Float64()*2 - 1,
		noise:  noise,
	}
}

func (g *LinearRegressionGenerator) Schema() *Schema { return g.schema }

func (g *LinearRegressionGenerator) Next() *Instance {
	x := make([]float64, len(g.w))
	y := g.b
	for j := range x {
		x[j] = g.rng.Float64()*10 - 5
		y += g.w[j] * x[j]
	}
	y += g.rng.NormFloat64() * g.noise
	return NewInstance(x, y)
}
