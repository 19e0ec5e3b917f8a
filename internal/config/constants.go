// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "WriteCourse"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultTotalTasks     = 19
	DefaultAccessTokenTTL = 30 * 24 * time.Hour // 30日
)

// クライアント側の動作パラメータ
const (
	// 自動保存のデバウンス時間 (最後の編集からこの時間経過で保存)
	DefaultDebounceInterval = 2 * time.Second
	// 保存結果 (Saved/Error) の表示時間
	DefaultStatusDecay = 3 * time.Second
	// 課題完了後、次の課題へ自動遷移するまでの時間
	DefaultAdvanceDelay = 2 * time.Second
)
