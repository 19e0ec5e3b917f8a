//go:generate mockery --name LearnerRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type LearnerRepository interface {
	Create(ctx context.Context, db *gorm.DB, learner *model.Learner) error
	FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) (*model.Learner, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.Learner, error)
	UpdateLastTask(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, taskID int) error
}

type gormLearnerRepository struct{}

func NewGormLearnerRepository() LearnerRepository {
	return &gormLearnerRepository{}
}

func (r *gormLearnerRepository) Create(ctx context.Context, db *gorm.DB, learner *model.Learner) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(learner)
	if result.Error != nil {
		// ユーザー名の一意制約違反 (登録リクエストが競合した場合もここで検知される)
		var pgErr *pgconn.PgError
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			(errors.As(result.Error, &pgErr) && pgErr.Code == "23505") {
			logger.Warn("Duplicate key error on create learner",
				"error", result.Error,
				"username", learner.Username,
			)
			return model.ErrConflict
		}

		logger.Error("Error creating learner in DB",
			"error", result.Error,
			"username", learner.Username,
		)
		return fmt.Errorf("gormLearnerRepository.Create: %w", result.Error)
	}

	return nil
}

func (r *gormLearnerRepository) FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var learner model.Learner

	result := db.WithContext(ctx).Where("learner_id = ?", learnerID).First(&learner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding learner by ID in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
		)
		return nil, fmt.Errorf("gormLearnerRepository.FindByID: %w", result.Error)
	}
	return &learner, nil
}

func (r *gormLearnerRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var learner model.Learner

	// ユーザー名は大文字小文字を区別して比較する
	result := db.WithContext(ctx).Where("username = ?", username).First(&learner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Learner not found by username", "username", username)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding learner by username in DB",
			"error", result.Error,
			"username", username,
		)
		return nil, fmt.Errorf("gormLearnerRepository.FindByUsername: %w", result.Error)
	}
	return &learner, nil
}

func (r *gormLearnerRepository) UpdateLastTask(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, taskID int) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).
		Model(&model.Learner{}).
		Where("learner_id = ?", learnerID).
		Update("last_task_id", taskID)
	if result.Error != nil {
		logger.Error("Error updating last task in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"task_id", taskID,
		)
		return fmt.Errorf("gormLearnerRepository.UpdateLastTask: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
