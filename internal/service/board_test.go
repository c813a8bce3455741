package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)
	c := f.contact(t, "Anja Schulz", "anja@example.com")

	task, err := f.board.CreateTask(context.Background(), TaskInput{
		Title:      " Kochwelt Page ",
		DueDate:    "2026-03-02",
		Category:   "user story",
		AssignedTo: []string{c.Id},
		Subtasks:   []SubtaskInput{{Description: "Design"}, {Description: "Build"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Kochwelt Page", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Prio)
	assert.Equal(t, models.StatusToDo, task.Status)
	assert.Equal(t, models.CategoryUserStory, task.Category)
	assert.Equal(t, fixedNow.UnixMilli(), task.Id)
	assert.Equal(t, task.Id, task.Timestamp)
	assert.Equal(t, "Anja Schulz", task.AssignedTo[c.Id].Name)
	assert.Len(t, task.Subtasks, 2)

	done, total := task.SubtaskProgress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 2, total)

	assert.Contains(t, f.index.indexed, task.Id)
	created := f.events.ofType(models.EventTaskCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "anja@example.com", created[0].Email)
	assert.Equal(t, task.Id, created[0].TaskId)
}

func TestCreateTaskIdsAreUnique(t *testing.T) {
	f := newFixture(t)

	a := f.task(t, TaskInput{Title: "A"})
	b := f.task(t, TaskInput{Title: "B"})
	assert.Equal(t, a.Id+1, b.Id)
}

func TestCreateTaskInColumn(t *testing.T) {
	f := newFixture(t)

	task := f.task(t, TaskInput{Title: "Review", Status: "awaitFeedback", Prio: "Urgent"})
	assert.Equal(t, models.StatusAwaitFeedback, task.Status)
	assert.Equal(t, models.PriorityUrgent, task.Prio)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)
	valid := TaskInput{Title: "T", DueDate: "2026-03-10", Category: models.CategoryTechnicalTask}

	tests := []struct {
		name   string
		modify func(in *TaskInput)
		msg    string
	}{
		{"missing title", func(in *TaskInput) { in.Title = "  " }, ErrInvalidTitleMessage},
		{"bad date", func(in *TaskInput) { in.DueDate = "10.03.2026" }, ErrInvalidDueDateMessage},
		{"past date", func(in *TaskInput) { in.DueDate = "2026-03-01" }, ErrDueDateInPastMessage},
		{"bad prio", func(in *TaskInput) { in.Prio = "whenever" }, ErrInvalidPrioMessage},
		{"bad category", func(in *TaskInput) { in.Category = "Bug" }, ErrInvalidCategoryMessage},
		{"bad status", func(in *TaskInput) { in.Status = "archived" }, ErrInvalidStatusMessage},
		{"unknown assignee", func(in *TaskInput) { in.AssignedTo = []string{"nope"} }, ErrUnknownAssigneeMessage},
		{"empty subtask", func(in *TaskInput) { in.Subtasks = []SubtaskInput{{Description: " "}} }, ErrInvalidSubtaskMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)
			_, err := f.board.CreateTask(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())
		})
	}

	tasks, err := f.board.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestBoardHasAllColumns(t *testing.T) {
	f := newFixture(t)
	first := f.task(t, TaskInput{Title: "first"})
	f.task(t, TaskInput{Title: "done", Status: "done"})
	second := f.task(t, TaskInput{Title: "second"})

	board, err := f.board.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Columns, 4)

	assert.Equal(t, "toDo", board.Columns[0].ColumnId)
	require.Len(t, board.Columns[0].Tasks, 2)
	assert.Equal(t, first.Id, board.Columns[0].Tasks[0].Id)
	assert.Equal(t, second.Id, board.Columns[0].Tasks[1].Id)

	assert.NotNil(t, board.Columns[1].Tasks)
	assert.Empty(t, board.Columns[1].Tasks)
	assert.Empty(t, board.Columns[2].Tasks)
	assert.Len(t, board.Columns[3].Tasks, 1)
}

func TestBuildBoardSkipsUnknownStatus(t *testing.T) {
	board := BuildBoard(context.Background(), []*models.Task{
		{Id: 1, Status: models.StatusDone},
		{Id: 2, Status: "archived"},
	})
	total := 0
	for _, col := range board.Columns {
		total += len(col.Tasks)
	}
	assert.Equal(t, 1, total)
}

func TestGetTaskNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.board.GetTask(context.Background(), 42)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestMoveTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.task(t, TaskInput{Title: "drag me"})

	moved, err := f.board.MoveTask(ctx, task.Id, "in-progress")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, moved.Status)

	got, err := f.board.GetTask(ctx, task.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, task.Title, got.Title)

	events := f.events.ofType(models.EventTaskMoved)
	require.Len(t, events, 1)
	assert.Equal(t, string(models.StatusToDo), events[0].OldStatus)

	_, err = f.board.MoveTask(ctx, task.Id, "inProgress")
	require.NoError(t, err)
	assert.Len(t, f.events.ofType(models.EventTaskMoved), 1)

	_, err = f.board.MoveTask(ctx, task.Id, "somewhere")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUpdateTaskKeepsStatusAndCheckedSubtasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anja := f.contact(t, "Anja Schulz", "anja@example.com")
	eva := f.contact(t, "Eva Fischer", "eva@example.com")

	task := f.task(t, TaskInput{
		Title:      "old",
		Status:     "done",
		AssignedTo: []string{anja.Id},
		Subtasks:   []SubtaskInput{{Description: "keep"}},
	})
	var subId string
	for id := range task.Subtasks {
		subId = id
	}
	_, err := f.board.ToggleSubtask(ctx, task.Id, subId)
	require.NoError(t, err)

	updated, err := f.board.UpdateTask(ctx, task.Id, TaskInput{
		Title:      "new",
		DueDate:    "2026-02-01",
		Category:   models.CategoryTechnicalTask,
		Status:     "to do",
		AssignedTo: []string{anja.Id, eva.Id},
		Subtasks:   []SubtaskInput{{Id: subId, Description: "keep, renamed"}, {Description: "added"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, task.Id, updated.Id)
	assert.Equal(t, task.Timestamp, updated.Timestamp)

	got, err := f.board.GetTask(ctx, task.Id)
	require.NoError(t, err)
	assert.True(t, got.Subtasks[subId].IsChecked)
	assert.Equal(t, "keep, renamed", got.Subtasks[subId].Description)
	done, total := got.SubtaskProgress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)

	assigned := f.events.ofType(models.EventTaskAssigned)
	require.Len(t, assigned, 1)
	assert.Equal(t, eva.Id, assigned[0].ContactId)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.task(t, TaskInput{Title: "bye"})

	require.NoError(t, f.board.DeleteTask(ctx, task.Id))
	_, err := f.board.GetTask(ctx, task.Id)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, []int64{task.Id}, f.index.deleted)
	assert.Len(t, f.events.ofType(models.EventTaskDeleted), 1)

	err = f.board.DeleteTask(ctx, task.Id)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSubtaskLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.task(t, TaskInput{Title: "with subtasks"})

	sub, err := f.board.AddSubtask(ctx, task.Id, "first")
	require.NoError(t, err)

	edited, err := f.board.EditSubtask(ctx, task.Id, sub.Id, "first, edited")
	require.NoError(t, err)
	assert.Equal(t, "first, edited", edited.Description)

	toggled, err := f.board.ToggleSubtask(ctx, task.Id, sub.Id)
	require.NoError(t, err)
	assert.True(t, toggled.IsChecked)

	got, err := f.board.GetTask(ctx, task.Id)
	require.NoError(t, err)
	assert.Equal(t, models.Subtask{Id: sub.Id, Description: "first, edited", IsChecked: true}, got.Subtasks[sub.Id])

	require.NoError(t, f.board.DeleteSubtask(ctx, task.Id, sub.Id))
	got, err = f.board.GetTask(ctx, task.Id)
	require.NoError(t, err)
	assert.Empty(t, got.Subtasks)

	_, err = f.board.ToggleSubtask(ctx, task.Id, sub.Id)
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = f.board.AddSubtask(ctx, task.Id, "   ")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := f.task(t, TaskInput{Title: "Kochwelt Page", Description: "recipe recommender"})
	f.task(t, TaskInput{Title: "HTML base template", Description: "shared layout"})

	f.index.err = errIndexDown
	board, err := f.board.Search(ctx, "  RECIPE ")
	require.NoError(t, err)
	require.Len(t, board.Columns[0].Tasks, 1)
	assert.Equal(t, recipe.Id, board.Columns[0].Tasks[0].Id)

	f.index.err = nil
	f.index.hits = []int64{recipe.Id}
	board, err = f.board.Search(ctx, "koch")
	require.NoError(t, err)
	require.Len(t, board.Columns[0].Tasks, 1)

	board, err = f.board.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, board.Columns[0].Tasks, 2)
}

func TestSearchMatchesSubstringsWithIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.task(t, TaskInput{Title: "Write task list"})
	docs := f.task(t, TaskInput{Title: "Docs", Description: "ask the team"})
	other := f.task(t, TaskInput{Title: "Deploy"})

	// written behind the service's back, so the index never saw it
	delete(f.index.indexed, list.Id)
	f.index.hits = []int64{docs.Id, other.Id}

	board, err := f.board.Search(ctx, "ASK")
	require.NoError(t, err)

	var ids []int64
	for _, task := range board.Columns[0].Tasks {
		ids = append(ids, task.Id)
	}
	assert.Equal(t, []int64{docs.Id, list.Id}, ids)
	assert.Contains(t, f.index.indexed, list.Id)
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]*models.Task{
		{Status: models.StatusToDo, Prio: models.PriorityUrgent, DueDate: "2026-05-01"},
		{Status: models.StatusInProgress, Prio: models.PriorityUrgent, DueDate: "2026-04-01"},
		{Status: models.StatusDone, Prio: models.PriorityUrgent, DueDate: "2026-01-01"},
		{Status: models.StatusAwaitFeedback, Prio: models.PriorityLow, DueDate: "2026-01-02"},
		{Status: models.StatusToDo, Prio: models.PriorityMedium},
	})

	assert.Equal(t, &Summary{
		ToDo:             2,
		InProgress:       1,
		AwaitFeedback:    1,
		Done:             1,
		Total:            5,
		Urgent:           3,
		UpcomingDeadline: "2026-04-01",
	}, sum)

	assert.Equal(t, &Summary{}, Summarize(nil))
}
