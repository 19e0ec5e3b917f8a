// internal/handlers/draft_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"
	"go_5_write_course/internal/service"
	"go_5_write_course/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type DraftHandler struct {
	service service.ProgressService
}

func NewDraftHandler(s service.ProgressService) *DraftHandler {
	return &DraftHandler{service: s}
}

// GetDraft は課題の下書き本文を返します。下書きが無い場合は空文字です。
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	taskID, err := taskIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.LoadDraft(r.Context(), learnerID, taskID)
	if err != nil {
		logger.Warn("Failed to load draft in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.DraftResponse{Content: content}, logger)
}

// SaveDraft は課題の下書き本文を上書き保存します
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	taskID, err := taskIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SaveDraftRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode draft request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.SaveDraft(r.Context(), learnerID, taskID, req.Content); err != nil {
		logger.Warn("Failed to save draft in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.SuccessResponse{Success: true}, logger)
}

// CompleteTask は課題を完了済みにします
func (h *DraftHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	taskID, err := taskIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.CompleteTask(r.Context(), learnerID, taskID); err != nil {
		logger.Warn("Failed to complete task in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.SuccessResponse{Success: true}, logger)
}

// taskIDFromURL はURLパラメータから課題IDを取り出します
func taskIDFromURL(r *http.Request) (int, error) {
	taskIDStr := chi.URLParam(r, "task_id")
	taskID, err := strconv.Atoi(taskIDStr)
	if err != nil {
		return 0, model.NewAppError("INVALID_TASK_ID", "課題IDの形式が正しくありません。", "task_id", model.ErrInvalidInput)
	}
	return taskID, nil
}
