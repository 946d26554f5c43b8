package typing

import (
	"github.com/benbjohnson/immutable"
	"github.com/computegod/classkit/ckerr"
)

// Substitution maps type variables to terms.
//
// Bindings are stored in an immutable map which is swapped wholesale on every
// Bind, so a Substitution already handed out as part of a result keeps its
// view even if the solver extends a descendant.
type Substitution struct {
	bindings *immutable.Map[string, Term]
}

func NewSubstitution() *Substitution {
	return &Substitution{bindings: immutable.NewMap[string, Term](nil)}
}

// Apply fully dereferences term under the current bindings, chasing chains of
// variables and recursing into constructor arguments. Applying the result
// again is a no-op.
func (s *Substitution) Apply(term Term) Term {
	switch term := term.(type) {
	case Var:
		if bound, ok := s.bindings.Get(term.Name); ok {
			return s.Apply(bound)
		}
		return term
	case Expr:
		return term.MapArgs(s.Apply)
	}
	return term
}

// Bind records v -> term, ensuring the occurs check holds.
//
// The term is dereferenced first; binding a variable to itself is a no-op.
func (s *Substitution) Bind(v Var, term Term) error {
	term = s.Apply(term)
	if asVar, ok := term.(Var); ok && asVar == v {
		return nil
	}
	if FreeVars(term).Contains(v) {
		return ckerr.New(ckerr.NewOccursCheckFailed{Var: v, Term: term})
	}
	s.bindings = s.bindings.Set(v.Name, term)
	return nil
}

func (s *Substitution) Len() int {
	return s.bindings.Len()
}

// Bindings returns a fully dereferenced view of the substitution,
// keyed by variable name
func (s *Substitution) Bindings() map[string]Term {
	out := make(map[string]Term, s.bindings.Len())
	itr := s.bindings.Iterator()
	for !itr.Done() {
		name, term, _ := itr.Next()
		out[name] = s.Apply(term)
	}
	return out
}
