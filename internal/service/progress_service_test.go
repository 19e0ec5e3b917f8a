// internal/service/progress_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_write_course/internal/model"
	"go_5_write_course/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProgressServiceForTest(learnerRepo *mocks.LearnerRepository, draftRepo *mocks.DraftRepository, progressRepo *mocks.ProgressRepository) ProgressService {
	return NewProgressService(setupTestDBAuth(), learnerRepo, draftRepo, progressRepo, testConfig())
}

// --- Test GetProgress ---
func Test_progressService_GetProgress(t *testing.T) {
	ctx := context.Background()
	learnerID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(learnerRepo *mocks.LearnerRepository, progressRepo *mocks.ProgressRepository)
		wantErr   error
		check     func(t *testing.T, resp *model.ProgressResponse)
	}{
		{
			name: "正常系: 完了済み課題の一覧と最終課題ポインタを返す",
			setupMock: func(learnerRepo *mocks.LearnerRepository, progressRepo *mocks.ProgressRepository) {
				learner := &model.Learner{LearnerID: learnerID, Username: "alice", LastTaskID: 3}
				learnerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return(learner, nil).Once()
				progressRepo.On("ListByLearner", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return([]*model.TaskProgress{
					{LearnerID: learnerID, TaskID: 1, Completed: true},
					{LearnerID: learnerID, TaskID: 2, Completed: true},
				}, nil).Once()
			},
			check: func(t *testing.T, resp *model.ProgressResponse) {
				assert.Equal(t, "alice", resp.Username)
				assert.Equal(t, 3, resp.LastTask)
				require.Len(t, resp.Progress, 2)
				assert.Equal(t, 1, resp.Progress[0].TaskID)
				assert.True(t, resp.Progress[0].Completed)
				assert.Equal(t, 2, resp.Progress[1].TaskID)
			},
		},
		{
			name: "正常系: 進捗が1件もない受講者は空の一覧 (エラーではない)",
			setupMock: func(learnerRepo *mocks.LearnerRepository, progressRepo *mocks.ProgressRepository) {
				learner := &model.Learner{LearnerID: learnerID, Username: "bob", LastTaskID: 1}
				learnerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return(learner, nil).Once()
				progressRepo.On("ListByLearner", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return([]*model.TaskProgress{}, nil).Once()
			},
			check: func(t *testing.T, resp *model.ProgressResponse) {
				assert.Equal(t, 1, resp.LastTask)
				assert.NotNil(t, resp.Progress)
				assert.Empty(t, resp.Progress)
			},
		},
		{
			name: "異常系: 受講者が存在しない",
			setupMock: func(learnerRepo *mocks.LearnerRepository, progressRepo *mocks.ProgressRepository) {
				learnerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 進捗一覧の取得でDBエラー",
			setupMock: func(learnerRepo *mocks.LearnerRepository, progressRepo *mocks.ProgressRepository) {
				learner := &model.Learner{LearnerID: learnerID, Username: "alice", LastTaskID: 3}
				learnerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return(learner, nil).Once()
				progressRepo.On("ListByLearner", ctx, mock.AnythingOfType("*gorm.DB"), learnerID).Return(nil, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLearnerRepo := new(mocks.LearnerRepository)
			mockDraftRepo := new(mocks.DraftRepository)
			mockProgressRepo := new(mocks.ProgressRepository)
			tt.setupMock(mockLearnerRepo, mockProgressRepo)
			svc := newProgressServiceForTest(mockLearnerRepo, mockDraftRepo, mockProgressRepo)

			resp, err := svc.GetProgress(ctx, learnerID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				tt.check(t, resp)
			}
			mockLearnerRepo.AssertExpectations(t)
			mockProgressRepo.AssertExpectations(t)
		})
	}
}

// --- Test SetLastTask ---
func Test_progressService_SetLastTask(t *testing.T) {
	ctx := context.Background()
	learnerID := uuid.New()

	tests := []struct {
		name      string
		taskID    int
		setupMock func(learnerRepo *mocks.LearnerRepository)
		wantErr   error
	}{
		{
			name:   "正常系: 最終課題ポインタの更新に成功",
			taskID: 5,
			setupMock: func(learnerRepo *mocks.LearnerRepository) {
				learnerRepo.On("UpdateLastTask", ctx, mock.AnythingOfType("*gorm.DB"), learnerID, 5).Return(nil).Once()
			},
		},
		{
			name:      "異常系: 課題IDが0",
			taskID:    0,
			setupMock: func(learnerRepo *mocks.LearnerRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:      "異常系: 課題IDが範囲外 (TotalTasks超過)",
			taskID:    20,
			setupMock: func(learnerRepo *mocks.LearnerRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:   "異常系: 受講者が存在しない",
			taskID: 5,
			setupMock: func(learnerRepo *mocks.LearnerRepository) {
				learnerRepo.On("UpdateLastTask", ctx, mock.AnythingOfType("*gorm.DB"), learnerID, 5).Return(model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLearnerRepo := new(mocks.LearnerRepository)
			tt.setupMock(mockLearnerRepo)
			svc := newProgressServiceForTest(mockLearnerRepo, new(mocks.DraftRepository), new(mocks.ProgressRepository))

			err := svc.SetLastTask(ctx, learnerID, tt.taskID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			mockLearnerRepo.AssertExpectations(t)
		})
	}
}

// --- Test SaveDraft / LoadDraft ---
func Test_progressService_SaveDraft(t *testing.T) {
	ctx := context.Background()
	learnerID := uuid.New()

	tests := []struct {
		name      string
		taskID    int
		content   string
		setupMock func(draftRepo *mocks.DraftRepository)
		wantErr   error
	}{
		{
			name:    "正常系: 下書きの保存に成功",
			taskID:  2,
			content: "書き出しの一文。",
			setupMock: func(draftRepo *mocks.DraftRepository) {
				draftRepo.On("Upsert", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Draft")).
					Run(func(args mock.Arguments) {
						draft := args.Get(2).(*model.Draft)
						assert.Equal(t, learnerID, draft.LearnerID)
						assert.Equal(t, 2, draft.TaskID)
						assert.Equal(t, "書き出しの一文。", draft.Content)
					}).Return(nil).Once()
			},
		},
		{
			name:    "正常系: 空文字の保存も有効な操作",
			taskID:  2,
			content: "",
			setupMock: func(draftRepo *mocks.DraftRepository) {
				draftRepo.On("Upsert", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Draft")).
					Run(func(args mock.Arguments) {
						draft := args.Get(2).(*model.Draft)
						assert.Equal(t, "", draft.Content)
					}).Return(nil).Once()
			},
		},
		{
			name:      "異常系: 課題IDが範囲外",
			taskID:    0,
			content:   "x",
			setupMock: func(draftRepo *mocks.DraftRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:    "異常系: 保存でDBエラー (リトライしない)",
			taskID:  2,
			content: "x",
			setupMock: func(draftRepo *mocks.DraftRepository) {
				draftRepo.On("Upsert", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Draft")).
					Return(errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDraftRepo := new(mocks.DraftRepository)
			tt.setupMock(mockDraftRepo)
			svc := newProgressServiceForTest(new(mocks.LearnerRepository), mockDraftRepo, new(mocks.ProgressRepository))

			err := svc.SaveDraft(ctx, learnerID, tt.taskID, tt.content)

			if tt.wantErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			mockDraftRepo.AssertExpectations(t)
		})
	}
}

func Test_progressService_LoadDraft(t *testing.T) {
	ctx := context.Background()
	learnerID := uuid.New()

	tests := []struct {
		name        string
		taskID      int
		setupMock   func(draftRepo *mocks.DraftRepository)
		wantContent string
		wantErr     bool
	}{
		{
			name:   "正常系: 保存済みの下書きを返す",
			taskID: 2,
			setupMock: func(draftRepo *mocks.DraftRepository) {
				draft := &model.Draft{LearnerID: learnerID, TaskID: 2, Content: "途中まで書いた本文"}
				draftRepo.On("FindByTask", ctx, mock.AnythingOfType("*gorm.DB"), learnerID, 2).Return(draft, nil).Once()
			},
			wantContent: "途中まで書いた本文",
		},
		{
			name:   "正常系: 下書きが存在しない場合は空文字 (エラーではない)",
			taskID: 3,
			setupMock: func(draftRepo *mocks.DraftRepository) {
				draftRepo.On("FindByTask", ctx, mock.AnythingOfType("*gorm.DB"), learnerID, 3).Return(nil, model.ErrNotFound).Once()
			},
			wantContent: "",
		},
		{
			name:      "異常系: 課題IDが範囲外",
			taskID:    100,
			setupMock: func(draftRepo *mocks.DraftRepository) {},
			wantErr:   true,
		},
		{
			name:   "異常系: 取得でDBエラー",
			taskID: 2,
			setupMock: func(draftRepo *mocks.DraftRepository) {
				draftRepo.On("FindByTask", ctx, mock.AnythingOfType("*gorm.DB"), learnerID, 2).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDraftRepo := new(mocks.DraftRepository)
			tt.setupMock(mockDraftRepo)
			svc := newProgressServiceForTest(new(mocks.LearnerRepository), mockDraftRepo, new(mocks.ProgressRepository))

			content, err := svc.LoadDraft(ctx, learnerID, tt.taskID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "", content)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantContent, content)
			}
			mockDraftRepo.AssertExpectations(t)
		})
	}
}

// --- Test CompleteTask ---
func Test_progressService_CompleteTask(t *testing.T) {
	ctx := context.Background()
	learnerID := uuid.New()

	tests := []struct {
		name      string
		taskID    int
		setupMock func(progressRepo *mocks.ProgressRepository)
		wantErr   error
	}{
		{
			name:   "正常系: 完了レコードを作成 (completed=true, completed_at付き)",
			taskID: 4,
			setupMock: func(progressRepo *mocks.ProgressRepository) {
				progressRepo.On("Complete", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.TaskProgress")).
					Run(func(args mock.Arguments) {
						p := args.Get(2).(*model.TaskProgress)
						assert.Equal(t, learnerID, p.LearnerID)
						assert.Equal(t, 4, p.TaskID)
						assert.True(t, p.Completed)
						require.NotNil(t, p.CompletedAt)
						assert.WithinDuration(t, time.Now(), *p.CompletedAt, 5*time.Second)
					}).Return(nil).Once()
			},
		},
		{
			name:      "異常系: 課題IDが範囲外",
			taskID:    -1,
			setupMock: func(progressRepo *mocks.ProgressRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:   "異常系: 完了処理でDBエラー",
			taskID: 4,
			setupMock: func(progressRepo *mocks.ProgressRepository) {
				progressRepo.On("Complete", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.TaskProgress")).
					Return(errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProgressRepo := new(mocks.ProgressRepository)
			tt.setupMock(mockProgressRepo)
			svc := newProgressServiceForTest(new(mocks.LearnerRepository), new(mocks.DraftRepository), mockProgressRepo)

			err := svc.CompleteTask(ctx, learnerID, tt.taskID)

			if tt.wantErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			mockProgressRepo.AssertExpectations(t)
		})
	}
}
