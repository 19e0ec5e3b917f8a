// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskProgress は課題の完了状態を表します。
// (learner_id, task_id) ごとに最大1行。Completed は一方向の遷移で、
// 一度 true になった後に false へ戻す操作は存在しません。
type TaskProgress struct {
	ProgressID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LearnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_learner_task_progress,unique"`
	TaskID      int       `gorm:"not null;index:idx_learner_task_progress,unique"`
	Completed   bool      `gorm:"not null;default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaskProgress) TableName() string {
	return "task_progress"
}

// ProgressEntry は進捗一覧の1要素のレスポンスDTO
type ProgressEntry struct {
	TaskID    int  `json:"task_id"`
	Completed bool `json:"completed"`
}

// ProgressResponse は GET /user/progress のレスポンスDTO
type ProgressResponse struct {
	Username string          `json:"username"`
	LastTask int             `json:"lastTask"`
	Progress []ProgressEntry `json:"progress"`
}

// SetLastTaskRequest は最終課題ポインタ更新リクエストのDTO
type SetLastTaskRequest struct {
	TaskID int `json:"taskId" validate:"required,min=1"`
}

// SuccessResponse は更新系APIの成功レスポンスDTO
type SuccessResponse struct {
	Success bool `json:"success"`
}
