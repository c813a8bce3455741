package models

const (
	EventTaskCreated    = "task.created"
	EventTaskAssigned   = "task.assigned"
	EventTaskMoved      = "task.moved"
	EventTaskUpdated    = "task.updated"
	EventTaskDeleted    = "task.deleted"
	EventContactDeleted = "contact.deleted"
)

type EventMessage struct {
	Type       string `json:"type"`
	TaskId     int64  `json:"task_id,omitempty"`
	TaskTitle  string `json:"task_title,omitempty"`
	Status     string `json:"status,omitempty"`
	OldStatus  string `json:"old_status,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	Prio       string `json:"prio,omitempty"`
	ContactId  string `json:"contact_id,omitempty"`
	Email      string `json:"email,omitempty"`
	Username   string `json:"username,omitempty"`
	OccurredAt int64  `json:"occurred_at"`
}
