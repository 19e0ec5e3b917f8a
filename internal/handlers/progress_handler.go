package handlers

import (
	"errors"
	"net/http"

	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"
	"go_5_write_course/internal/service"
	"go_5_write_course/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(s service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: s}
}

// GetProgress は受講者の最終課題ポインタと完了一覧を返します
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GetProgress(r.Context(), learnerID)
	if err != nil {
		logger.Warn("Failed to get progress in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// SetLastTask は最終課題ポインタを更新します
func (h *ProgressHandler) SetLastTask(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SetLastTaskRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode last task request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for last task update", "errors", validationErrors.Error())
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation for last task update", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	if err := h.service.SetLastTask(r.Context(), learnerID, req.TaskID); err != nil {
		logger.Warn("Failed to set last task in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.SuccessResponse{Success: true}, logger)
}
