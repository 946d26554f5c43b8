package typing

import (
	"github.com/computegod/classkit/ckerr"
	"github.com/computegod/classkit/internal/log"
)

var logger = log.DefaultLogger.With("section", "unify")

// Unify makes left and right structurally identical by extending s, creating
// a fresh Substitution when s is nil.
//
// Arguments of matching constructors unify left to right, so later argument
// pairs see bindings made by earlier ones. Terms are never mutated; every
// derived term is newly allocated.
func Unify(left, right Term, s *Substitution) (*Substitution, error) {
	if s == nil {
		s = NewSubstitution()
	}
	left = s.Apply(left)
	right = s.Apply(right)

	if left == nil || right == nil {
		return nil, ckerr.New(ckerr.NewUnsupportedTerm{First: left, Second: right})
	}

	if Equal(left, right) {
		return s, nil
	}

	if asVar, ok := left.(Var); ok {
		if err := s.Bind(asVar, right); err != nil {
			return nil, err
		}
		return s, nil
	}

	if asVar, ok := right.(Var); ok {
		if err := s.Bind(asVar, left); err != nil {
			return nil, err
		}
		return s, nil
	}

	leftExpr, leftOk := left.(Expr)
	rightExpr, rightOk := right.(Expr)
	if leftOk && rightOk {
		if leftExpr.Head != rightExpr.Head {
			return nil, ckerr.New(ckerr.NewHeadMismatch{First: leftExpr, Second: rightExpr})
		}
		if len(leftExpr.Args) != len(rightExpr.Args) {
			return nil, ckerr.New(ckerr.NewArityMismatch{
				First:  leftExpr,
				Second: rightExpr,
				Want:   len(leftExpr.Args),
				Got:    len(rightExpr.Args),
			})
		}
		logger.Debug("unify: descending into arguments", "head", leftExpr.Head, "arity", len(leftExpr.Args))
		var err error
		for i, leftArg := range leftExpr.Args {
			s, err = Unify(leftArg, rightExpr.Args[i], s)
			if err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	return nil, ckerr.New(ckerr.NewUnsupportedTerm{First: left, Second: right})
}
