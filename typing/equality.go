package typing

import (
	"fmt"
	"github.com/computegod/classkit/ckerr"
	"reflect"
)

// Sort is a universe level of the observational equality model
type Sort uint8

const (
	// Omega is the proof-irrelevant layer: any two witnesses are equal
	Omega Sort = iota
	// Universe is the ordinary-value layer, compared by (normalised) content
	Universe
)

func (s Sort) String() string {
	switch s {
	case Omega:
		return "Omega"
	case Universe:
		return "U"
	default:
		return fmt.Sprintf("Sort(%d)", uint8(s))
	}
}

// Normaliser canonicalises a value before comparison
type Normaliser func(value any) any

// ObservationalEquality decides equality of values per sort.
//
// The Omega layer normalises every value to the same canonical unit, so any
// two Omega-sorted values compare equal. The Universe layer compares values
// directly unless a custom normaliser replaces the identity.
type ObservationalEquality struct {
	normalisers map[Sort]Normaliser
}

// NewObservationalEquality builds the oracle with the two built-in
// normalisers; entries of normalisers extend or override the table
func NewObservationalEquality(normalisers map[Sort]Normaliser) *ObservationalEquality {
	table := map[Sort]Normaliser{
		Universe: func(value any) any { return value },
		Omega:    func(any) any { return nil },
	}
	for sort, normalise := range normalisers {
		table[sort] = normalise
	}
	return &ObservationalEquality{normalisers: table}
}

// Equivalent reports whether left and right are observationally equal at sort
func (e *ObservationalEquality) Equivalent(left, right any, sort Sort) (bool, error) {
	normalise, ok := e.normalisers[sort]
	if !ok {
		return false, ckerr.New(ckerr.NewUnknownSort{Sort: sort})
	}
	return reflect.DeepEqual(normalise(left), normalise(right)), nil
}

// Witness is a caller-supplied proof that two type descriptors coincide
type Witness func(source, target any) bool

// Cast passes value through untouched once witness and equality agree that
// source and target are interchangeable. It is a permission gate, not a
// conversion: no representational change ever happens.
func Cast(value, source, target any, witness Witness, equality *ObservationalEquality) (any, error) {
	if !witness(source, target) {
		return nil, ckerr.New(ckerr.NewCastWitnessRejected{Source: source, Target: target})
	}
	ok, err := equality.Equivalent(source, target, Universe)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ckerr.New(ckerr.NewCastEqualityRejected{Source: source, Target: target})
	}
	return value, nil
}
