package models

import "strings"

type Status string

const (
	StatusToDo          Status = "to do"
	StatusInProgress    Status = "in progress"
	StatusAwaitFeedback Status = "await feedback"
	StatusDone          Status = "done"
)

// Columns is the left-to-right order of the board.
var Columns = []Status{StatusToDo, StatusInProgress, StatusAwaitFeedback, StatusDone}

func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusAwaitFeedback, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) Title() string {
	switch s {
	case StatusToDo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusAwaitFeedback:
		return "Await feedback"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ColumnID is the drop-zone id the board front-end uses for the column.
func (s Status) ColumnID() string {
	switch s {
	case StatusToDo:
		return "toDo"
	case StatusInProgress:
		return "inProgress"
	case StatusAwaitFeedback:
		return "awaitFeedback"
	case StatusDone:
		return "done"
	default:
		return ""
	}
}

// ParseStatus accepts a stored status string or a drop-zone column id.
func ParseStatus(raw string) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range Columns {
		if key == string(s) || key == strings.ToLower(s.ColumnID()) {
			return s, true
		}
	}
	switch strings.NewReplacer("-", " ", "_", " ").Replace(key) {
	case "to do":
		return StatusToDo, true
	case "in progress":
		return StatusInProgress, true
	case "await feedback", "awaiting feedback":
		return StatusAwaitFeedback, true
	}
	return "", false
}

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority is case-insensitive; an empty value means medium.
func ParsePriority(raw string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, true
	}
	return p, p.IsValid()
}

const (
	CategoryTechnicalTask = "Technical Task"
	CategoryUserStory     = "User Story"
)

var Categories = []string{CategoryTechnicalTask, CategoryUserStory}

type Assignee struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Subtask struct {
	Id          string `json:"id"`
	Description string `json:"description"`
	IsChecked   bool   `json:"isChecked"`
}

// Task is stored under an opaque push key in the tasks collection. Key is that
// storage key and is never serialised; Id is the numeric lookup id.
type Task struct {
	Key         string              `json:"-"`
	Id          int64               `json:"id"`
	Title       string              `json:"Title"`
	Description string              `json:"Description"`
	AssignedTo  map[string]Assignee `json:"Assigned_to,omitempty"`
	DueDate     string              `json:"Due_date"`
	Prio        Priority            `json:"Prio"`
	Category    string              `json:"Category"`
	Subtasks    map[string]Subtask  `json:"Subtasks,omitempty"`
	Status      Status              `json:"Status"`
	Timestamp   int64               `json:"timestamp"`
}

// SubtaskProgress returns the number of checked subtasks and the total.
func (t *Task) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		total++
		if st.IsChecked {
			done++
		}
	}
	return done, total
}
