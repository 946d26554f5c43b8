package typing

import (
	"github.com/computegod/classkit/ckerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestApplyChasesChains(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("a"), NewVar("b")))
	require.NoError(t, s.Bind(NewVar("b"), NewExpr("Int")))

	result := s.Apply(NewVar("a"))
	assert.True(t, Equal(NewExpr("Int"), result), "expected Int, got %v", result)
}

func TestApplyRecursesIntoArguments(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("a"), NewExpr("Int")))

	result := s.Apply(NewExpr("List", NewVar("a")))
	assert.True(t, Equal(NewExpr("List", NewExpr("Int")), result), "expected List(Int), got %v", result)
}

func TestApplyLeavesUnboundVariables(t *testing.T) {
	s := NewSubstitution()
	result := s.Apply(NewVar("a"))
	assert.True(t, Equal(NewVar("a"), result))
}

func TestApplyIsIdempotent(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("a"), NewVar("b")))
	require.NoError(t, s.Bind(NewVar("b"), NewExpr("Pair", NewVar("c"), NewExpr("Int"))))
	require.NoError(t, s.Bind(NewVar("c"), NewExpr("Bool")))

	terms := []Term{
		NewVar("a"),
		NewVar("unbound"),
		NewExpr("List", NewVar("a")),
		NewExpr("Pair", NewVar("b"), NewVar("c")),
	}
	for _, term := range terms {
		t.Run(term.String(), func(t *testing.T) {
			once := s.Apply(term)
			twice := s.Apply(once)
			assert.True(t, Equal(once, twice), "apply not idempotent: %v != %v", once, twice)
		})
	}
}

func TestBindSelfIsNoOp(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("a"), NewVar("a")))
	assert.Equal(t, 0, s.Len())
}

func TestBindSelfThroughChainIsNoOp(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("b"), NewVar("a")))
	// b already dereferences to a, so binding a to b is a trivial self-binding
	require.NoError(t, s.Bind(NewVar("a"), NewVar("b")))
	assert.Equal(t, 1, s.Len())
}

func TestOccursCheckDirect(t *testing.T) {
	s := NewSubstitution()
	err := s.Bind(NewVar("a"), NewExpr("List", NewVar("a")))
	require.Error(t, err)
	assert.Equal(t, ckerr.OccursCheckFailed, ckerr.CodeOf(err))
}

func TestOccursCheckTransitive(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("b"), NewExpr("List", NewVar("a"))))

	// a occurs in List(a), which is what b now stands for
	err := s.Bind(NewVar("a"), NewExpr("Pair", NewVar("b"), NewExpr("Int")))
	require.Error(t, err)
	assert.Equal(t, ckerr.OccursCheckFailed, ckerr.CodeOf(err))
}

func TestBindAcyclicSucceeds(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("a"), NewExpr("Pair", NewVar("b"), NewVar("c"))))
	require.NoError(t, s.Bind(NewVar("b"), NewExpr("Int")))
	require.NoError(t, s.Bind(NewVar("c"), NewExpr("Bool")))

	result := s.Apply(NewVar("a"))
	assert.Equal(t, "Pair(Int Bool)", result.String())
}

func TestBindingsFullyDereferences(t *testing.T) {
	s := NewSubstitution()
	require.NoError(t, s.Bind(NewVar("a"), NewVar("b")))
	require.NoError(t, s.Bind(NewVar("b"), NewExpr("Int")))

	bindings := s.Bindings()
	require.Contains(t, bindings, "a")
	assert.True(t, Equal(NewExpr("Int"), bindings["a"]))
}
