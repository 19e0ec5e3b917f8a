// internal/client/api.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go_5_write_course/internal/model"
)

// ProgressAPI はクライアント側コンポーネント (SaveScheduler / Navigator)
// が利用するサーバー操作のインターフェースです。
type ProgressAPI interface {
	GetProgress(ctx context.Context) (*model.ProgressResponse, error)
	SetLastTask(ctx context.Context, taskID int) error
	LoadDraft(ctx context.Context, taskID int) (string, error)
	SaveDraft(ctx context.Context, taskID int, content string) error
	CompleteTask(ctx context.Context, taskID int) error
}

// APIClient はコース進捗APIのHTTPクライアントです。
// Register / Login で取得したトークンを保持し、以降のリクエストに
// Bearer ヘッダーとして付与します。
type APIClient struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken は保持するトークンを差し替えます (ログイン直後などに使用)
func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token は現在保持しているトークンを返します
func (c *APIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register は新規登録を行い、成功時はトークンを保持します
func (c *APIClient) Register(ctx context.Context, username string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", model.RegisterRequest{Username: username}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login はログインを行い、成功時はトークンを保持します
func (c *APIClient) Login(ctx context.Context, username string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", model.LoginRequest{Username: username}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *APIClient) GetProgress(ctx context.Context) (*model.ProgressResponse, error) {
	var resp model.ProgressResponse
	if err := c.do(ctx, http.MethodGet, "/user/progress", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) SetLastTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodPost, "/user/last-task", model.SetLastTaskRequest{TaskID: taskID}, nil)
}

func (c *APIClient) LoadDraft(ctx context.Context, taskID int) (string, error) {
	var resp model.DraftResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/text", taskID), nil, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *APIClient) SaveDraft(ctx context.Context, taskID int, content string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/text", taskID), model.SaveDraftRequest{Content: content}, nil)
}

func (c *APIClient) CompleteTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/complete", taskID), nil, nil)
}

// do はリクエストの送信とレスポンスのデコードを行います。
// エラーレスポンスはステータスコードに応じたセンチネルエラーをラップした
// AppError に変換します。401 を受け取った場合は保持しているトークンを破棄します
// (クライアントはウェルカム画面へ戻って再認証する)。
func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("APIClient.do: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("APIClient.do: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("APIClient.do: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.SetToken("")
		}
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("APIClient.do: decode response: %w", err)
		}
	}
	return nil
}

func (c *APIClient) decodeError(resp *http.Response) error {
	sentinel := model.ErrInternalServer
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = model.ErrInvalidInput
	case http.StatusUnauthorized:
		sentinel = model.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = model.ErrNotFound
	case http.StatusConflict:
		sentinel = model.ErrConflict
	}

	var errResp model.APIErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Code == "" {
		return model.NewAppError("UNEXPECTED_RESPONSE", fmt.Sprintf("サーバーエラーが発生しました (HTTP %d)。", resp.StatusCode), "", sentinel)
	}
	return model.NewAppError(errResp.Error.Code, errResp.Error.Message, errResp.Error.Field, sentinel)
}
