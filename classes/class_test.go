package classes

import (
	"fmt"
	"github.com/computegod/classkit/ckerr"
	"github.com/computegod/classkit/typing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func showClass(laws ...Law) *TypeClass {
	return &TypeClass{
		Name:      "Show",
		Parameter: typing.NewVar("a"),
		Fields: []Field{
			{Name: "render"},
		},
		Laws: laws,
	}
}

func TestValidateDictionaryComplete(t *testing.T) {
	eq := typing.NewObservationalEquality(nil)
	err := showClass().ValidateDictionary(Dictionary{"render": "ok"}, eq)
	assert.NoError(t, err)
}

func TestValidateDictionaryExtraFieldsAllowed(t *testing.T) {
	eq := typing.NewObservationalEquality(nil)
	err := showClass().ValidateDictionary(Dictionary{"render": "ok", "extra": 1}, eq)
	assert.NoError(t, err)
}

func TestValidateDictionaryMissingFieldsSorted(t *testing.T) {
	eq := typing.NewObservationalEquality(nil)
	class := &TypeClass{
		Name:      "Ord",
		Parameter: typing.NewVar("a"),
		Fields: []Field{
			{Name: "compare"},
			{Name: "max"},
			{Name: "min"},
		},
	}

	err := class.ValidateDictionary(Dictionary{"max": 1}, eq)
	require.Error(t, err)
	assert.Equal(t, ckerr.DictionaryIncomplete, ckerr.CodeOf(err))

	var incomplete ckerr.NewDictionaryIncomplete
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"compare", "min"}, incomplete.Missing)
}

func TestLawsRunInOrderAndStopAtFirstFailure(t *testing.T) {
	eq := typing.NewObservationalEquality(nil)
	var ran []int
	law := func(n int, fail bool) Law {
		return func(Dictionary, *typing.ObservationalEquality) error {
			ran = append(ran, n)
			if fail {
				return fmt.Errorf("law %d rejected the dictionary", n)
			}
			return nil
		}
	}

	class := showClass(law(1, false), law(2, true), law(3, false))
	err := class.ValidateDictionary(Dictionary{"render": "ok"}, eq)
	require.Error(t, err)
	assert.Equal(t, ckerr.LawViolation, ckerr.CodeOf(err))
	assert.Equal(t, []int{1, 2}, ran, "validation must stop at the first violated law")

	var violation ckerr.NewLawViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 2, violation.Index)
	assert.ErrorContains(t, violation.Cause, "law 2")
}

func TestLawSeesEqualityOracle(t *testing.T) {
	eq := typing.NewObservationalEquality(nil)
	class := showClass(func(dictionary Dictionary, equality *typing.ObservationalEquality) error {
		ok, err := equality.Equivalent(dictionary["render"], "anything else", typing.Omega)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("omega layer lost proof irrelevance")
		}
		return nil
	})
	assert.NoError(t, class.ValidateDictionary(Dictionary{"render": "ok"}, eq))
}

func TestInstantiateDerivedMetaVarNames(t *testing.T) {
	show := showClass()
	instance := &Instance{
		Name: "showPair",
		Head: typing.NewExpr("Pair", typing.NewVar("a"), typing.NewVar("b")),
		Prerequisites: []Template{
			{Class: show, Target: typing.NewVar("a"), Hint: "fst"},
			{Class: show, Target: typing.NewVar("b"), Hint: "snd"},
		},
	}

	target := typing.NewExpr("Pair", typing.NewExpr("Int"), typing.NewExpr("Bool"))
	_, prerequisites, err := instance.Instantiate(Constraint{Class: show, Target: target, Meta: MetaVar{Name: "d"}})
	require.NoError(t, err)
	require.Len(t, prerequisites, 2)

	assert.Equal(t, "showPair.fst_1", prerequisites[0].Constraint.Meta.Name)
	assert.Equal(t, "showPair.snd_2", prerequisites[1].Constraint.Meta.Name)
	assert.Equal(t, "Int", prerequisites[0].Constraint.Target.String())
	assert.Equal(t, "Bool", prerequisites[1].Constraint.Target.String())
	assert.Equal(t, "fst", prerequisites[0].Hint)
	assert.Equal(t, "snd", prerequisites[1].Hint)
}

func TestInstantiatePropagatesUnificationFailure(t *testing.T) {
	show := showClass()
	instance := &Instance{
		Name: "showInt",
		Head: typing.NewExpr("Int"),
	}
	_, _, err := instance.Instantiate(Constraint{Class: show, Target: typing.NewExpr("Bool"), Meta: MetaVar{Name: "d"}})
	require.Error(t, err)
	assert.True(t, ckerr.IsUnification(err))
}
