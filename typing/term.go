package typing

import (
	"fmt"
	"github.com/computegod/classkit/util"
	"github.com/hashicorp/go-set/v3"
)

// Term is a first-order type term: either a bare variable or a named
// constructor applied to zero or more argument terms.
//
// The sum is sealed so that Unify and Substitution.Apply can switch on it
// exhaustively.
type Term interface {
	fmt.Stringer
	isTerm()
}

var (
	_ Term = Var{}
	_ Term = Expr{}
)

// Var is a type variable, identified by its name
type Var struct {
	Name string
}

func NewVar(name string) Var {
	return Var{Name: name}
}

func (Var) isTerm() {}

func (v Var) String() string {
	return v.Name
}

// Expr is a type constructor applied to zero or more arguments
type Expr struct {
	Head string
	Args []Term
}

func NewExpr(head string, args ...Term) Expr {
	return Expr{Head: head, Args: args}
}

func (Expr) isTerm() {}

// MapArgs returns a new Expr with fn applied to every argument
func (e Expr) MapArgs(fn func(Term) Term) Expr {
	args := make([]Term, len(e.Args))
	for i, arg := range e.Args {
		args[i] = fn(arg)
	}
	return Expr{Head: e.Head, Args: args}
}

func (e Expr) String() string {
	if len(e.Args) == 0 {
		return e.Head
	}
	return fmt.Sprintf("%s(%s)", e.Head, util.JoinString(e.Args, " "))
}

// Equal is structural equality of terms: two variables are equal iff they
// share a name, two constructor applications iff heads match and arguments
// are pairwise Equal
func Equal(left, right Term) bool {
	switch left := left.(type) {
	case Var:
		right, ok := right.(Var)
		return ok && left == right
	case Expr:
		right, ok := right.(Expr)
		if !ok || left.Head != right.Head || len(left.Args) != len(right.Args) {
			return false
		}
		for i, arg := range left.Args {
			if !Equal(arg, right.Args[i]) {
				return false
			}
		}
		return true
	}
	return left == nil && right == nil
}

// FreeVars collects every variable occurring in t
func FreeVars(t Term) *set.Set[Var] {
	found := set.New[Var](1)
	remaining := util.Stack[Term]{}
	remaining.Push(t)
	for {
		next, ok := remaining.Pop()
		if !ok {
			return found
		}
		switch next := next.(type) {
		case Var:
			found.Insert(next)
		case Expr:
			remaining.Push(next.Args...)
		}
	}
}
