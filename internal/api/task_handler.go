// Package api exposes the upload queue over HTTP so scripted producers can
// submit tasks and watch progress without linking the queue directly.
package api

import (
	"log/slog"
	"net/http"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/api/shared"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/task"
)

// UploadService is the slice of the upload runner the handlers need.
type UploadService interface {
	Submit(t *domain.Task) (int, error)
	QueueDepth() int
	ActiveWorkers() int
	Stats() task.Stats
}

// SubmitTaskRequest represents the request body for submitting a task.
type SubmitTaskRequest struct {
	Title       string   `json:"title"       validate:"required,min=1"`
	Description string   `json:"description"`
	Price       string   `json:"price"       validate:"required"`
	CategoryID  int      `json:"category_id" validate:"required,gt=0"`
	ImagePaths  []string `json:"image_paths"`
	SKU         string   `json:"sku"`
	BatchID     string   `json:"batch_id"`
}

// SubmitTaskResponse represents the response for an accepted task.
type SubmitTaskResponse struct {
	ID         string `json:"id"`
	QueueDepth int    `json:"queue_depth"`
}

// QueueResponse represents the queue state snapshot.
type QueueResponse struct {
	Depth         int `json:"depth"`
	ActiveWorkers int `json:"active_workers"`
}

// TaskHandler handles upload-queue HTTP requests.
type TaskHandler struct {
	service UploadService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service UploadService) *TaskHandler {
	return &TaskHandler{service: service}
}

// SubmitTask handles POST /api/tasks requests. Accepted tasks are
// processed asynchronously, so the response is 202 with the task ID.
func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	var req SubmitTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	t, err := domain.NewTask(req.Title, req.Description, req.Price, req.CategoryID, req.ImagePaths)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	t.SKU = req.SKU
	t.BatchID = req.BatchID

	depth, err := h.service.Submit(t)
	if err != nil {
		slog.Error("failed to submit task", "error", err, "title", req.Title)
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Failed to submit task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, SubmitTaskResponse{
		ID:         t.ID.String(),
		QueueDepth: depth,
	})
}

// GetQueue handles GET /api/queue requests.
func (h *TaskHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, QueueResponse{
		Depth:         h.service.QueueDepth(),
		ActiveWorkers: h.service.ActiveWorkers(),
	})
}

// GetStats handles GET /api/stats requests.
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.Stats())
}
