package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCreatesIntermediateNodes(t *testing.T) {
	var root any
	root = Set(root, []string{"tasks", "k1", "Subtasks", "s1"}, map[string]any{"id": "s1"})

	got := Get(root, []string{"tasks", "k1", "Subtasks", "s1", "id"})
	assert.Equal(t, "s1", got)
}

func TestSetNilDeletesAndPrunesEmptyParents(t *testing.T) {
	var root any
	root = Set(root, []string{"tasks", "k1", "Subtasks", "s1"}, "x")
	root = Set(root, []string{"contacts", "c1"}, "y")

	root = Delete(root, []string{"tasks", "k1", "Subtasks", "s1"})

	assert.Nil(t, Get(root, []string{"tasks"}))
	assert.Equal(t, "y", Get(root, []string{"contacts", "c1"}))

	root = Delete(root, []string{"contacts", "c1"})
	assert.Nil(t, root)
}

func TestMergeKeepsSiblings(t *testing.T) {
	root, err := Normalize(map[string]any{
		"Title":  "a",
		"Status": "to do",
	})
	require.NoError(t, err)

	root = Merge(root, nil, map[string]any{"Status": "done", "Prio": nil})

	assert.Equal(t, "a", Get(root, []string{"Title"}))
	assert.Equal(t, "done", Get(root, []string{"Status"}))
	assert.Nil(t, Get(root, []string{"Prio"}))
}

func TestMergeAcceptsNestedPathKeys(t *testing.T) {
	var root any
	root = Merge(root, []string{"tasks"}, map[string]any{"k1/Status": "done"})
	assert.Equal(t, "done", Get(root, []string{"tasks", "k1", "Status"}))
}

func TestNormalizeDropsEmptyObjects(t *testing.T) {
	type doc struct {
		Title    string            `json:"Title"`
		Subtasks map[string]string `json:"Subtasks"`
	}
	v, err := Normalize(doc{Title: "t", Subtasks: map[string]string{}})
	require.NoError(t, err)

	m := v.(map[string]any)
	assert.Equal(t, "t", m["Title"])
	_, ok := m["Subtasks"]
	assert.False(t, ok)
}

func TestGetThroughScalarIsNil(t *testing.T) {
	root, err := Normalize(map[string]any{"a": "scalar"})
	require.NoError(t, err)
	assert.Nil(t, Get(root, []string{"a", "b"}))
}
