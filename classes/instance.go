package classes

import (
	"fmt"
	"github.com/computegod/classkit/typing"
	"github.com/computegod/classkit/util"
)

// MetaVar names a not-yet-resolved dictionary
type MetaVar struct {
	Name string
}

// Constraint is a pending obligation: find a dictionary of Class for Target
// and assign it to Meta
type Constraint struct {
	Class  *TypeClass
	Target typing.Term
	Meta   MetaVar
}

// Key is the canonical memoisation key for this constraint.
//
// The target is taken as given: whoever creates a nested Constraint must pass
// an already-substituted target, otherwise the key will not match the
// normalised form and the memo entry is wasted.
func (c Constraint) Key() util.Pair[string, string] {
	return util.NewPair(c.Class.Name, c.Target.String())
}

// Template is a prerequisite blueprint carried by an instance, with its
// target expressed relative to the instance's own head variables
type Template struct {
	Class  *TypeClass
	Target typing.Term
	Hint   string
}

func (t Template) instantiate(subst *typing.Substitution, instance string, index int) Prerequisite {
	return Prerequisite{
		Constraint: Constraint{
			Class:  t.Class,
			Target: subst.Apply(t.Target),
			Meta:   MetaVar{Name: fmt.Sprintf("%s.%s_%d", instance, t.Hint, index)},
		},
		Hint: t.Hint,
	}
}

// Prerequisite is a concrete sub-obligation produced by selecting an instance
type Prerequisite struct {
	Constraint Constraint
	Hint       string
}

// Builder produces the dictionary of a selected instance, given the resolved
// prerequisite dictionaries keyed by hint
type Builder func(prerequisites map[string]Dictionary, subst *typing.Substitution, equality *typing.ObservationalEquality) (Dictionary, error)

// Instance is one inhabitant of a type class: a head pattern, a dictionary
// builder, and the ordered prerequisites required before it can be built
type Instance struct {
	Name          string
	Head          typing.Term
	Build         Builder
	Prerequisites []Template
}

// Instantiate unifies the instance head against the constraint's target and,
// on success, instantiates every prerequisite template under the resulting
// substitution, allocating for each a metavariable derived from the instance
// name, the template's hint, and its 1-based position.
//
// Unification failures propagate unchanged so the solver can fall through to
// the next candidate instance.
func (i *Instance) Instantiate(c Constraint) (*typing.Substitution, []Prerequisite, error) {
	subst, err := typing.Unify(i.Head, c.Target, nil)
	if err != nil {
		return nil, nil, err
	}
	prerequisites := make([]Prerequisite, 0, len(i.Prerequisites))
	for idx, template := range i.Prerequisites {
		prerequisites = append(prerequisites, template.instantiate(subst, i.Name, idx+1))
	}
	return subst, prerequisites, nil
}
