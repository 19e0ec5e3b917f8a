// internal/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go_5_write_course/internal/config"

	"github.com/google/uuid"
)

// testHandlerConfig はハンドラ系テストで共有する設定です
func testHandlerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "WriteCourseTest"
	cfg.App.TotalTasks = 19
	cfg.JWT.SecretKey = "handler-test-secret"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

// createRequest はテスト用のHTTPリクエストを作成します。
// learnerID が指定されていれば X-Learner-ID ヘッダーを付与します (開発用認証ミドルウェア向け)。
func createRequest(t *testing.T, method, url string, body interface{}, learnerID *uuid.UUID) *http.Request {
	t.Helper()

	var reqBodyBytes []byte
	var err error
	if body != nil {
		switch b := body.(type) {
		case string:
			reqBodyBytes = []byte(b)
		case []byte:
			reqBodyBytes = b
		default:
			reqBodyBytes, err = json.Marshal(body)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}
		}
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBodyBytes))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if learnerID != nil {
		req.Header.Set("X-Learner-ID", learnerID.String())
	}
	return req
}

// serveRequest はルーターにリクエストを流し、レコーダーを返します
func serveRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
