package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
	"github.com/budgetbeyond/budget-beyond/internal/view"
)

// TaskHandler handles the tasks page.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleTasksPage renders the task form and the user's to-do list.
// GET /tasks (authenticated + verified)
func (h *TaskHandler) HandleTasksPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	tasks, err := h.tasks.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list tasks", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.Render(w, "tasks", view.Page{
		Title:    "Tasks",
		UserName: user.FullName(),
		Flash:    popFlash(w, r),
		Data:     view.TasksData{Tasks: tasks},
	})
}

// HandleCreateTask adds a task to the signed-in user's list.
// POST /tasks (authenticated + verified)
func (h *TaskHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var dueOn *time.Time
	if parsed, err := parseDate(r.PostFormValue("due_on")); err == nil && !parsed.IsZero() {
		dueOn = &parsed
	}

	_, err := h.tasks.Create(r.Context(), user.ID, r.PostFormValue("title"), dueOn)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			setFlash(w, "error", strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
		} else {
			slog.Error("create task", "error", err)
			setFlash(w, "error", "Could not save the task. Please try again.")
		}
		http.Redirect(w, r, "/tasks", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Task added.")
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// HandleCompleteTask marks one of the user's tasks as done.
// POST /tasks/{id}/complete (authenticated + verified)
func (h *TaskHandler) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	taskID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.tasks.MarkDone(r.Context(), user.ID, taskID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, domain.ErrUnauthorized):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			slog.Error("complete task", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	setFlash(w, "success", "Task completed.")
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}
