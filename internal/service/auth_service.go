package service

import (
	"context"
	"errors"
	"time"

	"go_5_write_course/internal/config"
	"go_5_write_course/internal/middleware"
	"go_5_write_course/internal/model"
	"go_5_write_course/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 登録時のユーザー名の最小文字数
const minUsernameLength = 3

// AuthService は受講者の登録・ログインとトークン発行を担います。
// 認証はユーザー名の所持のみで行います (パスワードなし)。これは仕様上
// 受け入れられたスコープ制限であり、修正すべき不具合ではありません。
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

type authService struct {
	db          *gorm.DB
	learnerRepo repository.LearnerRepository
	cfg         *config.Config
}

func NewAuthService(db *gorm.DB, learnerRepo repository.LearnerRepository, cfg *config.Config) AuthService {
	return &authService{
		db:          db,
		learnerRepo: learnerRepo,
		cfg:         cfg,
	}
}

// Register は新しい受講者を作成し、トークンを発行します
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("username", req.Username)

	if len(req.Username) < minUsernameLength {
		return nil, model.NewAppError("VALIDATION_ERROR", "ユーザー名は3文字以上で入力してください。", "username", model.ErrInvalidInput)
	}

	var newLearner *model.Learner

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ユーザー名での重複チェック
		_, err := s.learnerRepo.FindByUsername(ctx, tx, req.Username)
		if err == nil {
			logger.Warn("Username already exists")
			return model.NewAppError("DUPLICATE_USERNAME", "そのユーザー名は既に使用されています。ログインしてください。", "username", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check username existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}

		learner := &model.Learner{
			LearnerID:  uuid.New(),
			Username:   req.Username,
			LastTaskID: 1,
		}

		if err := s.learnerRepo.Create(ctx, tx, learner); err != nil {
			// Create内で重複エラーが検知された場合 (レースコンディション対策)
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during learner creation (race condition)", "error", err)
				return model.NewAppError("DUPLICATE_USERNAME", "そのユーザー名は既に使用されています。ログインしてください。", "username", model.ErrConflict)
			}
			logger.Error("Failed to create learner in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの作成に失敗しました。", "", err)
		}
		newLearner = learner
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(newLearner)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "learner_id", newLearner.LearnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Learner registered", "learner_id", newLearner.LearnerID)
	return &model.AuthResponse{
		Token:    token,
		Username: newLearner.Username,
		UserID:   newLearner.LearnerID,
		LastTask: newLearner.LastTaskID,
	}, nil
}

// Login は既存の受講者に新しいトークンを発行します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("username", req.Username)

	learner, err := s.learnerRepo.FindByUsername(ctx, s.db, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: learner not found")
			return nil, model.NewAppError("USER_NOT_FOUND", "そのユーザー名は登録されていません。新規登録してください。", "username", model.ErrNotFound)
		}
		logger.Error("Login failed: db error on FindByUsername", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	token, err := s.issueToken(learner)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "learner_id", learner.LearnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Login successful", "learner_id", learner.LearnerID)
	return &model.AuthResponse{
		Token:    token,
		Username: learner.Username,
		UserID:   learner.LearnerID,
		LastTask: learner.LastTaskID,
	}, nil
}

// issueToken は有効期限付き (デフォルト30日) の署名トークンを発行します
func (s *authService) issueToken(learner *model.Learner) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.cfg.App.Name,
		Subject:   learner.LearnerID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
