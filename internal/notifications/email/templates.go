package email

import (
	"bytes"
	"html/template"

	"github.com/Novip1906/join/internal/models"
)

var taskTmpl = template.Must(template.New("task").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Inter, Helvetica, Arial, sans-serif; color: #2a3647;">
  <p>Hello {{.Username}},</p>
  {{if eq .Type "task.created"}}
  <p>A new task was created on the Join board and assigned to you:</p>
  {{else}}
  <p>You were added to a task on the Join board:</p>
  {{end}}
  <table cellpadding="4">
    <tr><td><b>Title</b></td><td>{{.TaskTitle}}</td></tr>
    <tr><td><b>Due date</b></td><td>{{.DueDate}}</td></tr>
    <tr><td><b>Priority</b></td><td>{{.Prio}}</td></tr>
    <tr><td><b>Status</b></td><td>{{.Status}}</td></tr>
  </table>
  {{if .BoardURL}}<p><a href="{{.BoardURL}}">Open the board</a></p>{{end}}
</body>
</html>
`))

type taskEmail struct {
	models.EventMessage
	BoardURL string
}

func (s *EmailSenderService) renderTaskTemplate(msg models.EventMessage) (string, error) {
	var buf bytes.Buffer

	if err := taskTmpl.Execute(&buf, taskEmail{EventMessage: msg, BoardURL: s.boardURL}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
