package lazy

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// SearchKind selects the nearest-neighbour search strategy.
type SearchKind int

const (
	// SearchLinear scans every candidate point.
	SearchLinear SearchKind = iota
	// SearchKDTree builds a k-d tree over the candidates per query.
	SearchKDTree
)

// neighbor is one search result: a candidate's squared distance and label.
type neighbor struct {
	dist  float64
	label float64
}

// searcher finds the k nearest candidates to a query point.
type searcher interface {
	neighbors(points [][]float64, labels []float64, query []float64, k int) ([]neighbor, error)
}

func newSearcher(kind SearchKind) (searcher, error) {
	switch kind {
	case SearchLinear:
		return linearSearch{}, nil
	case SearchKDTree:
		return kdtreeSearch{}, nil
	default:
		return nil, errors.New("lazy: unknown search strategy")
	}
}

// linearSearch is a brute-force scan keeping a small sorted slice of the
// best candidates seen so far.
type linearSearch struct{}

func (linearSearch) neighbors(points [][]float64, labels []float64, query []float64, k int) ([]neighbor, error) {
	nbrs := make([]neighbor, 0, k+1)
	for i, p := range points {
		d := euclidSquared(query, p)
		cand := neighbor{dist: d, label: labels[i]}
		if len(nbrs) < k {
			nbrs = append(nbrs, cand)
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].dist < nbrs[b].dist })
		} else if d < nbrs[len(nbrs)-1].dist {
			nbrs[len(nbrs)-1] = cand
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].dist < nbrs[b].dist })
		}
	}
	return nbrs, nil
}

// kdtreeSearch builds a k-d tree over the candidates and queries it with a
// bounded keeper.
type kdtreeSearch struct{}

func (kdtreeSearch) neighbors(points [][]float64, labels []float64, query []float64, k int) ([]neighbor, error) {
	set := make(labeledPoints, len(points))
	for i, p := range points {
		set[i] = labeledPoint{vec: p, label: labels[i]}
	}
	tree := kdtree.New(set, false)
	keep := kdtree.NewNKeeper(k)
	tree.NearestSet(keep, labeledPoint{vec: query})

	nbrs := make([]neighbor, 0, k)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			// Sentinel left when fewer than k candidates exist.
			continue
		}
		lp := c.Comparable.(labeledPoint)
		nbrs = append(nbrs, neighbor{dist: c.Dist, label: lp.label})
	}
	sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].dist < nbrs[b].dist })
	return nbrs, nil
}

// labeledPoint adapts a labeled vector to the kdtree.Comparable contract.
type labeledPoint struct {
	vec   []float64
	label float64
}

func (p labeledPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(labeledPoint)
	return p.vec[d] - q.vec[d]
}

func (p labeledPoint) Dims() int { return len(p.vec) }

func (p labeledPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(labeledPoint)
	return euclidSquared(p.vec, q.vec)
}

// labeledPoints adapts a candidate set to the kdtree.Interface contract.
type labeledPoints []labeledPoint

func (s labeledPoints) Index(i int) kdtree.Comparable  { return s[i] }
func (s labeledPoints) Len() int                       { return len(s) }
func (s labeledPoints) Slice(start, end int) kdtree.Interface {
	return s[start:end]
}
func (s labeledPoints) Pivot(d kdtree.Dim) int {
	return plane{labeledPoints: s, Dim: d}.Pivot()
}

// plane sorts a candidate set along one dimension for tree construction.
type plane struct {
	labeledPoints
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.labeledPoints[i].vec[p.Dim] < p.labeledPoints[j].vec[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.labeledPoints = p.labeledPoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.labeledPoints[i], p.labeledPoints[j] = p.labeledPoints[j], p.labeledPoints[i]
}

// euclidSquared computes the squared Euclidean distance between two vectors.
// Squared distance preserves neighbour ordering and avoids the square root.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
