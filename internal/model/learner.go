package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 受講者の基本情報
type Learner struct {
	LearnerID uuid.UUID `gorm:"type:uuid;primaryKey" json:"learner_id"`
	Username  string    `gorm:"unique;not null" json:"username"` // 大文字小文字を区別して一意
	// 最後に開いていた課題のID (1..TotalTasks)
	LastTaskID int            `gorm:"not null;default:1" json:"last_task_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// GORM用のリレーション (JSONには含めない)
	Drafts   []Draft        `gorm:"foreignKey:LearnerID" json:"-"`
	Progress []TaskProgress `gorm:"foreignKey:LearnerID" json:"-"`
}

func (Learner) TableName() string {
	return "learners"
}

type ContextKey string

const (
	LearnerIDKey ContextKey = "learnerID"
)
