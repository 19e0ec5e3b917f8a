//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// Complete は (learner_id, task_id) の進捗行を completed=true で作成します。
	// 既に行が存在する場合は何もしません (完了済みフラグは巻き戻らない)。
	Complete(ctx context.Context, db *gorm.DB, progress *model.TaskProgress) error
	ListByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.TaskProgress, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Complete(ctx context.Context, db *gorm.DB, progress *model.TaskProgress) error {
	logger := middleware.GetLogger(ctx)

	// 進捗行の書き込みは完了操作のみなので、既存行は常に completed=true。
	// DoNothing により再完了は no-op となり、completed_at は初回完了時刻を保つ。
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}, {Name: "task_id"}},
		DoNothing: true,
	}).Create(progress)

	if result.Error != nil {
		logger.Error("Error completing task in DB",
			"error", result.Error,
			"learner_id", progress.LearnerID.String(),
			"task_id", progress.TaskID,
		)
		return fmt.Errorf("gormProgressRepository.Complete: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) ListByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.TaskProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progresses []*model.TaskProgress

	result := db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("task_id ASC").
		Find(&progresses)
	if result.Error != nil {
		logger.Error("Error listing progress in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.ListByLearner: %w", result.Error)
	}
	return progresses, nil
}
