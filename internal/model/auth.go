package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RegisterRequest は新規登録APIのリクエストボディ
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}

// AuthResponse は登録・ログイン成功時のレスポンス。
// Token は learner_id を subject に持つ署名付きトークンで、
// サーバー側には保存されません (検証は署名と有効期限のみ)。
type AuthResponse struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	UserID   uuid.UUID `json:"userId"`
	LastTask int       `json:"lastTask"`
}

// JWTCustomClaims はJWTに含めるカスタムクレーム（ペイロード）
type JWTCustomClaims struct {
	jwt.RegisteredClaims // 標準クレーム (iss, sub, exp など) を埋め込む
}
