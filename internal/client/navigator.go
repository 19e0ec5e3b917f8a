// internal/client/navigator.go
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go_5_write_course/internal/config"
	"go_5_write_course/internal/model"
)

// NavigatorOption は Navigator の動作パラメータを調整します
type NavigatorOption func(*Navigator)

// WithAdvanceDelay は完了後に次の課題へ自動遷移するまでの時間を変更します
func WithAdvanceDelay(d time.Duration) NavigatorOption {
	return func(n *Navigator) { n.advanceDelay = d }
}

// Navigator はどの課題がアクティブかを管理し、完了による進行を駆動します。
type Navigator struct {
	api          ProgressAPI
	sched        *SaveScheduler
	logger       *slog.Logger
	totalTasks   int
	advanceDelay time.Duration

	mu           sync.Mutex
	activeTask   int
	completed    map[int]bool
	advanceTimer *time.Timer
}

func NewNavigator(api ProgressAPI, sched *SaveScheduler, totalTasks int, logger *slog.Logger, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		api:          api,
		sched:        sched,
		logger:       logger,
		totalTasks:   totalTasks,
		advanceDelay: config.DefaultAdvanceDelay,
		activeTask:   1,
		completed:    make(map[int]bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ActiveTask は現在アクティブな課題IDを返します
func (n *Navigator) ActiveTask() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.activeTask
}

// CompletionRatio は完了済み課題数 / 総課題数 を返します
func (n *Navigator) CompletionRatio() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return float64(len(n.completed)) / float64(n.totalTasks)
}

// SwitchTask はアクティブな課題を切り替えます。切り替え前の未保存編集を
// 強制保存し、新しい課題の下書きを取得してスケジューラに渡した上で、
// 最終課題ポインタをベストエフォートで更新します。ポインタ更新の失敗は
// ナビゲーションを妨げません (利便性が落ちるだけで正しさには影響しない)。
// 戻り値は新しい課題の下書き本文です。
func (n *Navigator) SwitchTask(ctx context.Context, taskID int) (string, error) {
	if taskID < 1 || taskID > n.totalTasks {
		return "", model.NewAppError("INVALID_TASK_ID", fmt.Sprintf("課題IDは1〜%dの範囲で指定してください。", n.totalTasks), "taskId", model.ErrInvalidInput)
	}

	// 前の課題の未保存編集を失わないように強制保存する。
	// 失敗してもスケジューラがError状態を表示するだけで、切り替えは続行する。
	if err := n.sched.FlushPending(ctx); err != nil {
		n.logger.Warn("Flush before task switch failed", "error", err)
	}

	content, err := n.api.LoadDraft(ctx, taskID)
	if err != nil {
		return "", err
	}

	n.sched.SetTask(taskID, content)

	n.mu.Lock()
	n.activeTask = taskID
	n.mu.Unlock()

	// 最終課題ポインタの更新は fire-and-forget。
	// 失敗はログに残すだけでリトライしない (ベストエフォート)。
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := n.api.SetLastTask(ctx, taskID); err != nil {
			n.logger.Warn("Failed to persist last task pointer", "task_id", taskID, "error", err)
		}
	}()

	n.refreshProgress(ctx)

	return content, nil
}

// OnTaskCompleted は課題の完了を処理します。現在の本文を強制保存してから
// 完了を記録し、進捗を更新します。最後の課題でなければ、完了表示が見える
// ように一定時間おいてから次の課題へ自動遷移します。
func (n *Navigator) OnTaskCompleted(ctx context.Context, taskID int) error {
	if err := n.sched.Flush(ctx); err != nil {
		return err
	}

	if err := n.api.CompleteTask(ctx, taskID); err != nil {
		return err
	}

	n.refreshProgress(ctx)

	if taskID < n.totalTasks {
		n.mu.Lock()
		if n.advanceTimer != nil {
			n.advanceTimer.Stop()
		}
		n.advanceTimer = time.AfterFunc(n.advanceDelay, func() {
			if _, err := n.SwitchTask(context.Background(), taskID+1); err != nil {
				n.logger.Warn("Auto-advance failed", "task_id", taskID+1, "error", err)
			}
		})
		n.mu.Unlock()
	}
	return nil
}

// Stop は保留中の自動遷移タイマーを止めます (画面を閉じる時など)。
// 進行中の保存リクエストは取り消さず、バックグラウンドで完了させます。
func (n *Navigator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.advanceTimer != nil {
		n.advanceTimer.Stop()
		n.advanceTimer = nil
	}
}

// refreshProgress はサーバーから進捗を取り直して完了集合を更新します
func (n *Navigator) refreshProgress(ctx context.Context) {
	resp, err := n.api.GetProgress(ctx)
	if err != nil {
		n.logger.Warn("Failed to refresh progress", "error", err)
		return
	}

	completed := make(map[int]bool, len(resp.Progress))
	for _, e := range resp.Progress {
		if e.Completed {
			completed[e.TaskID] = true
		}
	}

	n.mu.Lock()
	n.completed = completed
	n.mu.Unlock()
}
