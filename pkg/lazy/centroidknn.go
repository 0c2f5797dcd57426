// Package lazy implements a centroid-windowed k-nearest-neighbour model.
//
// The model keeps a bounded FIFO window of recent examples and, per class,
// an incrementally maintained centroid (running mean vector) of the class's
// examples currently in the window. Classification queries the centroids
// rather than the raw window, so prediction cost scales with the number of
// classes, not the window size. Regression over a numeric target answers
// with the mean or median of the nearest centroids' labels.
package lazy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/thomas-morcom/streamml/pkg/stream"
)

// Config holds the model hyperparameters.
type Config struct {
	// K is the number of neighbours to query.
	K int
	// Limit caps the example window size.
	Limit int
	// UseMedian selects median over mean for regression answers.
	UseMedian bool
	// Search selects the neighbour-search strategy.
	Search SearchKind
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return errors.New("lazy: k must be positive")
	}
	if c.Limit <= 0 {
		return errors.New("lazy: window limit must be positive")
	}
	if c.Search != SearchLinear && c.Search != SearchKDTree {
		return errors.New("lazy: unknown search strategy")
	}
	return nil
}

// centroid is the running mean vector of one target bucket's windowed
// examples. For nominal targets label is the class index; for numeric
// targets it is the running mean of the bucket's true target values.
type centroid struct {
	vec   []float64
	label float64
}

// CentroidKNN is the centroid-windowed k-NN classifier/regressor. It is not
// safe for concurrent use.
type CentroidKNN struct {
	cfg    Config
	schema *stream.Schema
	search searcher

	window    []*stream.Instance
	centroids []centroid
	sums      [][]float64 // per-bucket running attribute sums
	counts    []int       // per-bucket windowed example counts
	ySums     []float64   // per-bucket running target sums
	buckets   map[int]int // truncated target value -> bucket index
	maxLabel  int
}

// New builds a model over the given schema. A missing or invalid schema is
// a configuration error: the model cannot operate without knowing its
// attribute structure.
func New(cfg Config, schema *stream.Schema) (*CentroidKNN, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("lazy: invalid model context: %w", err)
	}
	k := &CentroidKNN{schema: schema}
	if err := k.Reset(cfg); err != nil {
		return nil, err
	}
	return k, nil
}

// Reset re-initializes the model from the configuration, discarding the
// window and all centroids.
func (k *CentroidKNN) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	search, err := newSearcher(cfg.Search)
	if err != nil {
		return err
	}
	k.cfg = cfg
	k.search = search
	k.window = nil
	k.centroids = nil
	k.sums = nil
	k.counts = nil
	k.ySums = nil
	k.buckets = nil
	k.maxLabel = 0
	return nil
}

// Train slides the example window forward by one example, maintaining every
// bucket centroid incrementally: O(features) work per call, never a rescan
// of the window.
func (k *CentroidKNN) Train(inst *stream.Instance) {
	if c := inst.Label(); c > k.maxLabel {
		k.maxLabel = c
	}
	if k.window == nil {
		k.bootstrap(len(inst.X))
	}

	if len(k.window) >= k.cfg.Limit {
		k.evictOldest()
	}

	k.window = append(k.window, inst.Copy())
	b := k.bucket(inst.Y)
	k.counts[b]++
	floats.Add(k.sums[b], inst.X)
	k.ySums[b] += inst.Y
	k.recompute(b)
}

// bootstrap lazily allocates the window and seeds two zero-vector
// placeholder centroids so neighbour search never runs over an empty
// candidate set. Both placeholders are copies of the same zero vector; the
// second one inserted carries label 1.
func (k *CentroidKNN) bootstrap(numAttrs int) {
	k.window = make([]*stream.Instance, 0, k.cfg.Limit)
	zero := make([]float64, numAttrs)
	k.centroids = []centroid{
		{vec: append([]float64(nil), zero...), label: 0},
		{vec: append([]float64(nil), zero...), label: 1},
	}
	k.sums = [][]float64{make([]float64, numAttrs), make([]float64, numAttrs)}
	k.counts = []int{0, 0}
	k.ySums = []float64{0, 0}
	k.buckets = map[int]int{0: 0, 1: 1}
}

// bucket returns the index of the target value's bucket, allocating the
// bucket on first sight. Targets are bucketed by truncation, which keeps
// the mapping total for negative numeric targets.
func (k *CentroidKNN) bucket(y float64) int {
	key := int(y)
	if b, ok := k.buckets[key]; ok {
		return b
	}
	b := len(k.centroids)
	numAttrs := k.schema.NumFeatures()
	k.centroids = append(k.centroids, centroid{
		vec:   make([]float64, numAttrs),
		label: float64(key),
	})
	k.sums = append(k.sums, make([]float64, numAttrs))
	k.counts = append(k.counts, 0)
	k.ySums = append(k.ySums, 0)
	k.buckets[key] = b
	return b
}

// evictOldest drops the chronologically oldest example and backs its
// contribution out of its bucket's running sums and centroid.
func (k *CentroidKNN) evictOldest() {
	evicted := k.window[0]
	copy(k.window, k.window[1:])
	k.window = k.window[:len(k.window)-1]

	b := k.bucket(evicted.Y)
	k.counts[b]--
	floats.Sub(k.sums[b], evicted.X)
	k.ySums[b] -= evicted.Y
	k.recompute(b)
}

// recompute refreshes bucket b's centroid as sum/count and, for numeric
// targets, its label as the running mean of the bucket's true target
// values. When the bucket has no windowed examples left the centroid keeps
// its last computed value.
func (k *CentroidKNN) recompute(b int) {
	if k.counts[b] <= 0 {
		return
	}
	copy(k.centroids[b].vec, k.sums[b])
	floats.Scale(1/float64(k.counts[b]), k.centroids[b].vec)
	if k.schema.Target == stream.Numeric {
		k.centroids[b].label = k.ySums[b] / float64(k.counts[b])
	}
}

// Votes predicts one example from the nearest centroids.
//
// For a numeric target the single-element result is the mean or median of
// the neighbours' labels. For a nominal target each neighbour casts one
// unweighted vote for its own label. Search failures and an untrained
// model degrade to an all-zero vector sized by the schema's class count;
// they are never surfaced as errors.
func (k *CentroidKNN) Votes(inst *stream.Instance) []float64 {
	if len(k.window) == 0 {
		return k.zeroVotes()
	}
	points := make([][]float64, len(k.centroids))
	labels := make([]float64, len(k.centroids))
	for i, c := range k.centroids {
		points[i] = c.vec
		labels[i] = c.label
	}
	n := min(k.cfg.K, len(k.centroids))
	nbrs, err := k.search.neighbors(points, labels, inst.X, n)
	if err != nil || len(nbrs) == 0 {
		return k.zeroVotes()
	}

	if k.schema.Target == stream.Numeric {
		return []float64{k.regress(nbrs)}
	}

	v := make([]float64, k.maxLabel+1)
	for _, nb := range nbrs {
		if idx := int(nb.label); idx >= 0 && idx < len(v) {
			v[idx]++
		}
	}
	return v
}

// regress combines the neighbours' label values into one prediction.
func (k *CentroidKNN) regress(nbrs []neighbor) float64 {
	vals := make([]float64, len(nbrs))
	for i, nb := range nbrs {
		vals[i] = nb.label
	}
	if !k.cfg.UseMedian {
		return floats.Sum(vals) / float64(len(vals))
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// zeroVotes is the degenerate "no opinion" answer.
func (k *CentroidKNN) zeroVotes() []float64 {
	return make([]float64, k.schema.NumClasses)
}

// Describe summarizes the window fill and per-bucket counts.
func (k *CentroidKNN) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CentroidKNN: k=%d, window %d/%d\n", k.cfg.K, len(k.window), k.cfg.Limit)
	keys := make([]int, 0, len(k.buckets))
	for key := range k.buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	for _, key := range keys {
		if n := k.counts[k.buckets[key]]; n > 0 {
			fmt.Fprintf(&sb, "  bucket %d: %d windowed examples\n", key, n)
		}
	}
	return sb.String()
}

// WindowLen returns the number of examples currently windowed.
func (k *CentroidKNN) WindowLen() int { return len(k.window) }
