package stream

import (
	"errors"
	"strconv"
)

// TargetKind distinguishes classification from regression targets.
type TargetKind int

const (
	// Nominal targets are class indices 0..NumClasses-1.
	Nominal TargetKind = iota
	// Numeric targets are real values (regression).
	Numeric
)

// Schema describes the structure of a stream: its attributes and target.
// Every model must be given a valid schema before it can train or predict;
// a missing or inconsistent schema is a configuration error, not a
// per-example fault.
type Schema struct {
	FeatureNames []string
	Target       TargetKind
	NumClasses   int // populated for Nominal targets
}

// NewNominalSchema builds a classification schema with generated feature names.
func NewNominalSchema(numFeatures, numClasses int) *Schema {
	return &Schema{
		FeatureNames: defaultNames(numFeatures),
		Target:       Nominal,
		NumClasses:   numClasses,
	}
}

// NewNumericSchema builds a regression schema with generated feature names.
// A numeric target reports one "class" so degenerate vote vectors still
// have a defined size.
func NewNumericSchema(numFeatures int) *Schema {
	return &Schema{
		FeatureNames: defaultNames(numFeatures),
		Target:       Numeric,
		NumClasses:   1,
	}
}

// Validate reports whether the schema is usable as a model context.
func (s *Schema) Validate() error {
	if s == nil {
		return errors.New("stream: nil schema")
	}
	if len(s.FeatureNames) == 0 {
		return errors.New("stream: schema has no features")
	}
	if s.Target == Nominal && s.NumClasses < 2 {
		return errors.New("stream: nominal schema needs at least 2 classes")
	}
	return nil
}

// NumFeatures returns the attribute count.
func (s *Schema) NumFeatures() int { return len(s.FeatureNames) }

func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "x" + strconv.Itoa(i+1)
	}
	return names
}
