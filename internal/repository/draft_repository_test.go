// internal/repository/draft_repository_test.go
package repository

import (
	"context"
	"errors"
	"testing"

	"go_5_write_course/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gormDraftRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewGormDraftRepository()

	t.Run("正常系: 初回保存と取得で本文が一致する", func(t *testing.T) {
		db := setupRepoTestDB(t)
		learner := createTestLearner(t, db, "alice")

		content := "冒頭の段落。\n\n「引用符」や句読点、改行を含む本文。"
		draft := &model.Draft{
			DraftID:   uuid.New(),
			LearnerID: learner.LearnerID,
			TaskID:    1,
			Content:   content,
		}
		require.NoError(t, repo.Upsert(ctx, db, draft))

		got, err := repo.FindByTask(ctx, db, learner.LearnerID, 1)
		require.NoError(t, err)
		assert.Equal(t, content, got.Content)
	})

	t.Run("正常系: 同じ課題への再保存は上書きになる (行は増えない)", func(t *testing.T) {
		db := setupRepoTestDB(t)
		learner := createTestLearner(t, db, "alice")

		first := &model.Draft{DraftID: uuid.New(), LearnerID: learner.LearnerID, TaskID: 2, Content: "v1"}
		require.NoError(t, repo.Upsert(ctx, db, first))

		second := &model.Draft{DraftID: uuid.New(), LearnerID: learner.LearnerID, TaskID: 2, Content: "v2"}
		require.NoError(t, repo.Upsert(ctx, db, second))

		got, err := repo.FindByTask(ctx, db, learner.LearnerID, 2)
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Content)

		var count int64
		require.NoError(t, db.Model(&model.Draft{}).
			Where("learner_id = ? AND task_id = ?", learner.LearnerID, 2).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("正常系: 空文字での上書きも保存される", func(t *testing.T) {
		db := setupRepoTestDB(t)
		learner := createTestLearner(t, db, "alice")

		require.NoError(t, repo.Upsert(ctx, db, &model.Draft{
			DraftID: uuid.New(), LearnerID: learner.LearnerID, TaskID: 3, Content: "消される本文",
		}))
		require.NoError(t, repo.Upsert(ctx, db, &model.Draft{
			DraftID: uuid.New(), LearnerID: learner.LearnerID, TaskID: 3, Content: "",
		}))

		got, err := repo.FindByTask(ctx, db, learner.LearnerID, 3)
		require.NoError(t, err)
		assert.Equal(t, "", got.Content)
	})

	t.Run("正常系: 課題ごとに独立した下書きを持てる", func(t *testing.T) {
		db := setupRepoTestDB(t)
		learner := createTestLearner(t, db, "alice")

		require.NoError(t, repo.Upsert(ctx, db, &model.Draft{
			DraftID: uuid.New(), LearnerID: learner.LearnerID, TaskID: 1, Content: "課題1の本文",
		}))
		require.NoError(t, repo.Upsert(ctx, db, &model.Draft{
			DraftID: uuid.New(), LearnerID: learner.LearnerID, TaskID: 2, Content: "課題2の本文",
		}))

		got1, err := repo.FindByTask(ctx, db, learner.LearnerID, 1)
		require.NoError(t, err)
		got2, err := repo.FindByTask(ctx, db, learner.LearnerID, 2)
		require.NoError(t, err)
		assert.Equal(t, "課題1の本文", got1.Content)
		assert.Equal(t, "課題2の本文", got2.Content)
	})
}

func Test_gormDraftRepository_FindByTask(t *testing.T) {
	ctx := context.Background()
	repo := NewGormDraftRepository()

	t.Run("異常系: 下書きが存在しない場合は ErrNotFound", func(t *testing.T) {
		db := setupRepoTestDB(t)
		learner := createTestLearner(t, db, "alice")

		_, err := repo.FindByTask(ctx, db, learner.LearnerID, 9)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})

	t.Run("正常系: 他の受講者の下書きは見えない", func(t *testing.T) {
		db := setupRepoTestDB(t)
		alice := createTestLearner(t, db, "alice")
		bob := createTestLearner(t, db, "bob")

		require.NoError(t, repo.Upsert(ctx, db, &model.Draft{
			DraftID: uuid.New(), LearnerID: alice.LearnerID, TaskID: 1, Content: "aliceの本文",
		}))

		_, err := repo.FindByTask(ctx, db, bob.LearnerID, 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))

		// bob が同じ課題に保存しても alice の行は影響を受けない
		require.NoError(t, repo.Upsert(ctx, db, &model.Draft{
			DraftID: uuid.New(), LearnerID: bob.LearnerID, TaskID: 1, Content: "bobの本文",
		}))
		got, err := repo.FindByTask(ctx, db, alice.LearnerID, 1)
		require.NoError(t, err)
		assert.Equal(t, "aliceの本文", got.Content)
	})
}
