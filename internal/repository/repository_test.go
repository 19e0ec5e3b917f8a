// internal/repository/repository_test.go
package repository

import (
	"fmt"
	"testing"

	"go_5_write_course/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepoTestDB はテストごとに独立したインメモリSQLiteを用意し、
// スキーマをマイグレーションして返します。
// DSNにテスト名を含めることでテスト間のデータ混入を防ぎます。
func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Learner{}, &model.Draft{}, &model.TaskProgress{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// createTestLearner は外部キー用の受講者行を作成します
func createTestLearner(t *testing.T, db *gorm.DB, username string) *model.Learner {
	t.Helper()

	learner := &model.Learner{
		LearnerID:  uuid.New(),
		Username:   username,
		LastTaskID: 1,
	}
	if err := db.Create(learner).Error; err != nil {
		t.Fatalf("failed to create test learner: %v", err)
	}
	return learner
}
