// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_5_write_course/internal/config"
	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"
	"go_5_write_course/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService は受講者ごとの進捗・下書きの永続化操作を提供します。
// すべての操作は認証済みトークンから取り出した learnerID にスコープされ、
// 他の受講者の行を読み書きすることはありません。
// 永続化層のエラーはそのまま内部エラーとして呼び出し元へ返し、
// ここでのリトライは行いません。
type ProgressService interface {
	GetProgress(ctx context.Context, learnerID uuid.UUID) (*model.ProgressResponse, error)
	SetLastTask(ctx context.Context, learnerID uuid.UUID, taskID int) error
	SaveDraft(ctx context.Context, learnerID uuid.UUID, taskID int, content string) error
	LoadDraft(ctx context.Context, learnerID uuid.UUID, taskID int) (string, error)
	CompleteTask(ctx context.Context, learnerID uuid.UUID, taskID int) error
}

type progressService struct {
	db           *gorm.DB
	learnerRepo  repository.LearnerRepository
	draftRepo    repository.DraftRepository
	progressRepo repository.ProgressRepository
	cfg          *config.Config
}

func NewProgressService(db *gorm.DB, learnerRepo repository.LearnerRepository, draftRepo repository.DraftRepository, progressRepo repository.ProgressRepository, cfg *config.Config) ProgressService {
	return &progressService{
		db:           db,
		learnerRepo:  learnerRepo,
		draftRepo:    draftRepo,
		progressRepo: progressRepo,
		cfg:          cfg,
	}
}

// GetProgress は最終課題ポインタと完了状態の一覧を返します。
// 一度も保存していない受講者の場合、一覧は空になります (エラーではない)。
func (s *progressService) GetProgress(ctx context.Context, learnerID uuid.UUID) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	learner, err := s.learnerRepo.FindByID(ctx, s.db, learnerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Learner not found")
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding learner", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の取得に失敗しました。", "", err)
	}

	progresses, err := s.progressRepo.ListByLearner(ctx, s.db, learnerID)
	if err != nil {
		logger.Error("Failed to list progress from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の取得に失敗しました。", "", err)
	}

	entries := make([]model.ProgressEntry, 0, len(progresses))
	for _, p := range progresses {
		entries = append(entries, model.ProgressEntry{
			TaskID:    p.TaskID,
			Completed: p.Completed,
		})
	}

	return &model.ProgressResponse{
		Username: learner.Username,
		LastTask: learner.LastTaskID,
		Progress: entries,
	}, nil
}

// SetLastTask は最終課題ポインタを更新します (冪等)
func (s *progressService) SetLastTask(ctx context.Context, learnerID uuid.UUID, taskID int) error {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "task_id", taskID)

	if err := s.validateTaskID(taskID); err != nil {
		return err
	}

	if err := s.learnerRepo.UpdateLastTask(ctx, s.db, learnerID, taskID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Learner not found on last task update")
			return model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update last task", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "最終課題の更新に失敗しました。", "", err)
	}
	return nil
}

// SaveDraft は下書きを上書き保存します。空文字の保存も有効な操作です。
func (s *progressService) SaveDraft(ctx context.Context, learnerID uuid.UUID, taskID int, content string) error {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "task_id", taskID)

	if err := s.validateTaskID(taskID); err != nil {
		return err
	}

	draft := &model.Draft{
		DraftID:   uuid.New(),
		LearnerID: learnerID,
		TaskID:    taskID,
		Content:   content,
	}
	if err := s.draftRepo.Upsert(ctx, s.db, draft); err != nil {
		logger.Error("Failed to upsert draft", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの保存に失敗しました。", "", err)
	}

	logger.Debug("Draft saved", "content_len", len(content))
	return nil
}

// LoadDraft は下書き本文を返します。下書きが存在しない場合は空文字を返します (エラーではない)。
func (s *progressService) LoadDraft(ctx context.Context, learnerID uuid.UUID, taskID int) (string, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "task_id", taskID)

	if err := s.validateTaskID(taskID); err != nil {
		return "", err
	}

	draft, err := s.draftRepo.FindByTask(ctx, s.db, learnerID, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", nil
		}
		logger.Error("Failed to load draft", "error", err)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの取得に失敗しました。", "", err)
	}
	return draft.Content, nil
}

// CompleteTask は課題を完了済みにします。再実行しても完了フラグは変化しない (冪等)。
func (s *progressService) CompleteTask(ctx context.Context, learnerID uuid.UUID, taskID int) error {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "task_id", taskID)

	if err := s.validateTaskID(taskID); err != nil {
		return err
	}

	now := time.Now()
	progress := &model.TaskProgress{
		ProgressID:  uuid.New(),
		LearnerID:   learnerID,
		TaskID:      taskID,
		Completed:   true,
		CompletedAt: &now,
	}
	if err := s.progressRepo.Complete(ctx, s.db, progress); err != nil {
		logger.Error("Failed to complete task", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "課題の完了処理に失敗しました。", "", err)
	}

	logger.Info("Task completed")
	return nil
}

// validateTaskID は課題IDが [1, TotalTasks] の範囲にあることを確認します
func (s *progressService) validateTaskID(taskID int) error {
	if taskID < 1 || taskID > s.cfg.App.TotalTasks {
		return model.NewAppError("INVALID_TASK_ID", "課題IDが正しくありません。", "taskId", model.ErrInvalidInput)
	}
	return nil
}
