package typing

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseTermRoundTrip(t *testing.T) {
	testCases := []string{
		"a",
		"Int",
		"List(a)",
		"List(Int)",
		"Pair(Int Bool)",
		"Either(List(a) Pair(b Int))",
	}
	for _, src := range testCases {
		t.Run(src, func(t *testing.T) {
			term, err := ParseTerm(src)
			require.NoError(t, err)
			assert.Equal(t, src, term.String())
		})
	}
}

func TestParseTermShapes(t *testing.T) {
	term, err := ParseTerm("List(a)")
	require.NoError(t, err)
	expr, ok := term.(Expr)
	require.True(t, ok)
	assert.Equal(t, "List", expr.Head)
	require.Len(t, expr.Args, 1)
	assert.Equal(t, NewVar("a"), expr.Args[0])
}

func TestParseTermErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "variable with arguments", src: "a(Int)"},
		{name: "unterminated arguments", src: "List(Int"},
		{name: "trailing input", src: "Int)"},
		{name: "bare parenthesis", src: "("},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTerm(tc.src)
			assert.Error(t, err)
		})
	}
}
