//go:generate mockery --name DraftRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DraftRepository interface {
	// Upsert は (learner_id, task_id) の下書きを作成または上書きします。
	Upsert(ctx context.Context, db *gorm.DB, draft *model.Draft) error
	FindByTask(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, taskID int) (*model.Draft, error)
}

type gormDraftRepository struct{}

func NewGormDraftRepository() DraftRepository {
	return &gormDraftRepository{}
}

// Upsert は最新書き込み優先 (last-write-wins) の上書き保存です。
// 同一受講者の複数クライアントが同じ課題へほぼ同時に保存した場合、
// 後着が先着を黙って上書きします。これは仕様上許容された制限であり、
// 競合検知やマージは行いません。
func (r *gormDraftRepository) Upsert(ctx context.Context, db *gorm.DB, draft *model.Draft) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "learner_id"}, {Name: "task_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"content":    draft.Content,
			"updated_at": time.Now(),
		}),
	}).Create(draft)

	if result.Error != nil {
		logger.Error("Error upserting draft in DB",
			"error", result.Error,
			"learner_id", draft.LearnerID.String(),
			"task_id", draft.TaskID,
		)
		return fmt.Errorf("gormDraftRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormDraftRepository) FindByTask(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, taskID int) (*model.Draft, error) {
	logger := middleware.GetLogger(ctx)
	var draft model.Draft

	result := db.WithContext(ctx).
		Where("learner_id = ? AND task_id = ?", learnerID, taskID).
		First(&draft)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding draft in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"task_id", taskID,
		)
		return nil, fmt.Errorf("gormDraftRepository.FindByTask: %w", result.Error)
	}
	return &draft, nil
}
