// Package classes implements dictionary-passing type classes: class and
// instance declarations, a registry environment, and a memoized recursive
// constraint solver resolving class constraints into concrete dictionaries.
package classes

import (
	"github.com/computegod/classkit/ckerr"
	"github.com/computegod/classkit/typing"
	"github.com/xtgo/set"
	"sort"
)

// Dictionary is the record of field values produced for one resolved
// instance, analogous to a vtable
type Dictionary map[string]any

// Field describes one member slot of a type class dictionary.
// The zero Sort is Omega: class members are proof-irrelevant by default.
type Field struct {
	Name  string
	Shape typing.Term
	Sort  typing.Sort
}

// Law is an invariant over a dictionary, checked after every successful
// instance build. A law signals violation by returning a non-nil error.
type Law func(dictionary Dictionary, equality *typing.ObservationalEquality) error

// TypeClass is a named class: a distinguished parameter variable plus the
// ordered fields and laws of its dictionaries. Immutable once declared.
type TypeClass struct {
	Name      string
	Parameter typing.Var
	Fields    []Field
	Laws      []Law
}

// ValidateDictionary checks that dictionary supplies every declared field and
// satisfies every law, in declaration order. Validation stops at the first
// violated law.
func (c *TypeClass) ValidateDictionary(dictionary Dictionary, equality *typing.ObservationalEquality) error {
	declared := make(sort.StringSlice, 0, len(c.Fields)+len(dictionary))
	for _, field := range c.Fields {
		declared = append(declared, field.Name)
	}
	sort.Sort(declared)
	pivot := len(declared)
	for name := range dictionary {
		declared = append(declared, name)
	}
	sort.Sort(declared[pivot:])
	if n := set.Diff(declared, pivot); n > 0 {
		return ckerr.New(ckerr.NewDictionaryIncomplete{Class: c.Name, Missing: declared[:n]})
	}

	for i, law := range c.Laws {
		if err := law(dictionary, equality); err != nil {
			return ckerr.New(ckerr.NewLawViolation{Class: c.Name, Index: i + 1, Cause: err})
		}
	}
	return nil
}
