package main

import (
	"bytes"
	"embed"
	"github.com/computegod/classkit/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

// embeds the test folder
//
//go:embed test
var testSet embed.FS

// format is as follows:
//
//	#classkit:scenarioTest metavar | expectedField,expectedField
func extractTestComment(t *testing.T, str string) (meta string, fields []string) {
	firstLine := strings.Split(str, "\n")[0]
	trimmed := strings.TrimPrefix(firstLine, "#classkit:scenarioTest ")
	elems := strings.Split(trimmed, "|")
	if len(elems) < 2 {
		t.Fatalf("could not parse comment string: '%v'", firstLine)
	}
	meta = strings.TrimSpace(elems[0])
	for _, field := range strings.Split(elems[1], ",") {
		fields = append(fields, strings.TrimSpace(field))
	}
	return meta, fields
}

func TestScenariosEndToEnd(t *testing.T) {
	files, err := testSet.ReadDir("test")
	require.NoError(t, err)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		t.Run(f.Name(), func(t *testing.T) {
			content, err := testSet.ReadFile("test/" + f.Name())
			require.NoError(t, err)
			meta, fields := extractTestComment(t, string(content))

			sc, err := scenario.Load(bytes.NewReader(content))
			require.NoError(t, err)

			solutions, err := sc.Solve()
			require.NoError(t, err)
			require.Contains(t, solutions, meta)
			for _, field := range fields {
				assert.Contains(t, solutions[meta], field)
			}
		})
	}
}

func TestShowListScenarioRenders(t *testing.T) {
	content, err := testSet.ReadFile("test/show_list.yaml")
	require.NoError(t, err)
	sc, err := scenario.Load(bytes.NewReader(content))
	require.NoError(t, err)

	solutions, err := sc.Solve()
	require.NoError(t, err)

	render, ok := solutions["d0"]["render"].(func(interface{}) string)
	require.True(t, ok)
	nested := []interface{}{
		[]interface{}{1, 2},
		[]interface{}{3},
	}
	assert.Equal(t, "[[1 2] [3]]", render(nested))
}

func TestEqPairScenarioCompares(t *testing.T) {
	content, err := testSet.ReadFile("test/eq_pair.yaml")
	require.NoError(t, err)
	sc, err := scenario.Load(bytes.NewReader(content))
	require.NoError(t, err)

	solutions, err := sc.Solve()
	require.NoError(t, err)

	equals, ok := solutions["d0"]["equals"].(func(interface{}, interface{}) bool)
	require.True(t, ok)
	assert.True(t, equals([]interface{}{1, true}, []interface{}{1, true}))
	assert.False(t, equals([]interface{}{1, true}, []interface{}{2, true}))
}
