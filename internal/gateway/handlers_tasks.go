package gateway

import (
	"net/http"

	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/internal/service"
)

type moveRequest struct {
	Status string `json:"status"`
}

type subtaskRequest struct {
	Description string `json:"description"`
}

type tasksResponse struct {
	Tasks []*models.Task `json:"tasks"`
}

func (g *Gateway) board(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	board, err := g.svc.Board.Board(r.Context())
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, board)
}

func (g *Gateway) summary(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	sum, err := g.svc.Board.Summary(r.Context())
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, sum)
}

func (g *Gateway) search(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	board, err := g.svc.Board.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, board)
}

func (g *Gateway) listTasks(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	tasks, err := g.svc.Board.ListTasks(r.Context())
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, tasksResponse{Tasks: tasks})
}

func (g *Gateway) getTask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	task, err := g.svc.Board.GetTask(r.Context(), id)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, task)
}

func (g *Gateway) createTask(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in service.TaskInput
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	task, err := g.svc.Board.CreateTask(r.Context(), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusCreated, task)
}

func (g *Gateway) updateTask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	var in service.TaskInput
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	task, err := g.svc.Board.UpdateTask(r.Context(), id, in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, task)
}

func (g *Gateway) moveTask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	var in moveRequest
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	task, err := g.svc.Board.MoveTask(r.Context(), id, in.Status)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, task)
}

func (g *Gateway) deleteTask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	if err := g.svc.Board.DeleteTask(r.Context(), id); err != nil {
		g.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *Gateway) addSubtask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	var in subtaskRequest
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	sub, err := g.svc.Board.AddSubtask(r.Context(), id, in.Description)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusCreated, sub)
}

func (g *Gateway) editSubtask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	var in subtaskRequest
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	sub, err := g.svc.Board.EditSubtask(r.Context(), id, pathParams["subtaskId"], in.Description)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, sub)
}

func (g *Gateway) toggleSubtask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	sub, err := g.svc.Board.ToggleSubtask(r.Context(), id, pathParams["subtaskId"])
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, sub)
}

func (g *Gateway) deleteSubtask(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := taskIdParam(pathParams)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	if err := g.svc.Board.DeleteSubtask(r.Context(), id, pathParams["subtaskId"]); err != nil {
		g.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
