// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_5_write_course/internal/model"
	"go_5_write_course/internal/webutil"

	"github.com/google/uuid"
)

// DevLearnerContextMiddleware は開発・テスト用ミドルウェアです。
// X-Learner-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// トークン検証は行いません。
func DevLearnerContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		learnerIDStr := r.Header.Get("X-Learner-ID")
		if learnerIDStr == "" {
			logger.Warn("[DEV AUTH] Failed: X-Learner-ID header missing")
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-Learner-IDヘッダーが必要です。", "", model.ErrUnauthorized)
			webutil.HandleError(w, logger, appErr)
			return
		}

		learnerID, err := uuid.Parse(learnerIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-Learner-ID format", "value", learnerIDStr)
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-Learner-IDの形式が正しくありません。", "", model.ErrUnauthorized)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ctx := context.WithValue(r.Context(), model.LearnerIDKey, learnerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
