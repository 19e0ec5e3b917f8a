// internal/model/draft.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Draft は受講者が課題に対して書いた下書き本文を表します。
// (learner_id, task_id) ごとに最大1行。保存は常に最新書き込み優先の上書きで、
// バージョン管理は行いません。
type Draft struct {
	DraftID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LearnerID uuid.UUID `gorm:"type:uuid;not null;index:idx_learner_task_draft,unique"`
	TaskID    int       `gorm:"not null;index:idx_learner_task_draft,unique"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Draft) TableName() string {
	return "drafts"
}

// 下書き保存リクエストDTO
type SaveDraftRequest struct {
	Content string `json:"content" validate:"omitempty"` // 空文字の保存も許可
}

// 下書き取得レスポンスDTO
type DraftResponse struct {
	Content string `json:"content"`
}
