package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"to do":          StatusToDo,
		"toDo":           StatusToDo,
		"TODO":           StatusToDo,
		" in progress ":  StatusInProgress,
		"inProgress":     StatusInProgress,
		"in-progress":    StatusInProgress,
		"awaitFeedback":  StatusAwaitFeedback,
		"await_feedback": StatusAwaitFeedback,
		"Done":           StatusDone,
	}
	for raw, want := range cases {
		got, ok := ParseStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestColumnsRoundTripThroughColumnID(t *testing.T) {
	for _, s := range Columns {
		got, ok := ParseStatus(s.ColumnID())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority("")
	assert.True(t, ok)
	assert.Equal(t, PriorityMedium, p)

	p, ok = ParsePriority("URGENT")
	assert.True(t, ok)
	assert.Equal(t, PriorityUrgent, p)

	_, ok = ParsePriority("critical")
	assert.False(t, ok)
}

func TestSubtaskProgress(t *testing.T) {
	task := Task{Subtasks: map[string]Subtask{
		"a": {Id: "a", IsChecked: true},
		"b": {Id: "b"},
		"c": {Id: "c", IsChecked: true},
	}}
	done, total := task.SubtaskProgress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)

	done, total = (&Task{}).SubtaskProgress()
	assert.Zero(t, done)
	assert.Zero(t, total)
}
