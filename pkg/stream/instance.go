package stream

// Instance is a single labeled example drawn from a data stream.
// X holds the attribute values, Y the target (a class index for nominal
// targets, a real value for numeric ones), and Weight the example's
// training weight (1 unless a resampling scheme rescales it).
type Instance struct {
	X      []float64
	Y      float64
	Weight float64
}

// NewInstance builds an instance with unit weight.
func NewInstance(x []float64, y float64) *Instance {
	return &Instance{X: x, Y: y, Weight: 1}
}

// Copy returns a deep copy of the instance.
func (in *Instance) Copy() *Instance {
	x := make([]float64, len(in.X))
	copy(x, in.X)
	return &Instance{X: x, Y: in.Y, Weight: in.Weight}
}

// WithWeight returns a copy of the instance carrying the given weight.
// The attribute slice is copied so callers may mutate either instance freely.
func (in *Instance) WithWeight(w float64) *Instance {
	out := in.Copy()
	out.Weight = w
	return out
}

// Label returns the target as an integer class index.
func (in *Instance) Label() int { return int(in.Y) }
