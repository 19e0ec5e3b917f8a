// internal/client/scheduler.go
package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go_5_write_course/internal/config"
)

// SchedulerState は自動保存の状態機械の状態です。
// Idle → Pending → Saving → {Saved | Error} と遷移し、
// Saved / Error は表示時間の経過後に Idle へ戻ります。
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StatePending
	StateSaving
	StateSaved
	StateError
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// SaveFunc は下書き保存の実体です (通常は APIClient.SaveDraft)
type SaveFunc func(ctx context.Context, taskID int, content string) error

// SchedulerOption は SaveScheduler の動作パラメータを調整します
type SchedulerOption func(*SaveScheduler)

// WithDebounceInterval はデバウンス時間を変更します (テスト用に短縮可能)
func WithDebounceInterval(d time.Duration) SchedulerOption {
	return func(s *SaveScheduler) { s.debounce = d }
}

// WithStatusDecay は Saved/Error 状態の表示時間を変更します
func WithStatusDecay(d time.Duration) SchedulerOption {
	return func(s *SaveScheduler) { s.decay = d }
}

// WithStateListener は状態遷移ごとに呼ばれるリスナーを設定します。
// UI側の表示更新はこのリスナー経由で行い、状態機械自体は表示に依存しません。
// リスナーはロック保持中に呼ばれるため、スケジューラのメソッドを再入的に
// 呼び出してはいけません。
func WithStateListener(fn func(SchedulerState)) SchedulerOption {
	return func(s *SaveScheduler) { s.onState = fn }
}

// SaveScheduler は編集イベントをデバウンスして保存リクエストにまとめる
// クライアント側の状態機械です。
//
// 不変条件: 1つの課題について同時に発行される保存リクエストは最大1つ。
// 新しい保存は直前の保存が解決した後にのみ発行されます。
// タイマーの取り消しとリクエスト発行は単一のミューテックスの下で
// 原子的に行われ、同じ課題への二重リクエストを防ぎます。
//
// 保存の失敗時に自動リトライは行いません。次の編集または手動保存だけが
// 新しい保存への経路です。
type SaveScheduler struct {
	mu      sync.Mutex
	cond    *sync.Cond
	save    SaveFunc
	logger  *slog.Logger
	onState func(SchedulerState)

	debounce time.Duration
	decay    time.Duration

	state    SchedulerState
	taskID   int
	content  string
	dirty    bool // 保存中に編集イベントが発生した
	inFlight bool
	timer    *time.Timer // デバウンスまたは表示減衰のタイマー
}

func NewSaveScheduler(save SaveFunc, logger *slog.Logger, opts ...SchedulerOption) *SaveScheduler {
	s := &SaveScheduler{
		save:     save,
		logger:   logger,
		debounce: config.DefaultDebounceInterval,
		decay:    config.DefaultStatusDecay,
		state:    StateIdle,
		taskID:   1,
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State は現在の状態を返します
func (s *SaveScheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetTask はアクティブな課題を切り替え、バッファを新しい課題の本文に
// 差し替えます。切り替え前の未保存編集は呼び出し側 (Navigator) が
// FlushPending で処理しておく責務を持ちます。進行中の保存は取り消されず、
// バックグラウンドで完了します。
func (s *SaveScheduler) SetTask(taskID int, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.taskID = taskID
	s.content = content
	s.dirty = false
	if !s.inFlight {
		s.setStateLocked(StateIdle)
	}
}

// Edit は編集イベントを受け取ります。保存中でなければデバウンスタイマーを
// 張り直して Pending に遷移し、保存中であれば本文のバッファだけを更新して
// 保存完了後に改めてデバウンスします。
func (s *SaveScheduler) Edit(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content = content
	if s.inFlight {
		s.dirty = true
		return
	}

	s.stopTimerLocked()
	s.setStateLocked(StatePending)
	s.timer = time.AfterFunc(s.debounce, s.debounceFired)
}

// Flush は手動保存・課題完了時の強制保存です。保留中のデバウンスタイマーを
// 取り消した上で (直後に重複保存が発火するのを防ぐため)、現在の本文を
// 即時保存します。進行中の保存がある場合はその解決を待ってから発行します。
func (s *SaveScheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimerLocked()
	for s.inFlight {
		s.cond.Wait()
	}
	// 直前の保存の解決時に dirty → Pending で再アームされた場合もここで止める
	s.stopTimerLocked()
	s.dirty = false
	taskID, content := s.taskID, s.content
	s.inFlight = true
	s.setStateLocked(StateSaving)
	s.mu.Unlock()

	err := s.save(ctx, taskID, content)
	s.finish(taskID, err)
	return err
}

// FlushPending は未保存の編集がある場合のみ強制保存します (課題切り替え用)。
// 未保存の編集が無ければ何もしません。
func (s *SaveScheduler) FlushPending(ctx context.Context) error {
	s.mu.Lock()
	pending := s.state == StatePending || s.dirty
	s.mu.Unlock()
	if !pending {
		return nil
	}
	return s.Flush(ctx)
}

// debounceFired はデバウンスタイマーの発火時に呼ばれます
func (s *SaveScheduler) debounceFired() {
	s.mu.Lock()
	// Flush や SetTask に先を越されていた場合は何もしない
	if s.state != StatePending || s.inFlight {
		s.mu.Unlock()
		return
	}
	taskID, content := s.taskID, s.content
	s.inFlight = true
	s.setStateLocked(StateSaving)
	s.mu.Unlock()

	// 発行済みの保存は課題切り替え・ログアウト後もバックグラウンドで完了させる
	err := s.save(context.Background(), taskID, content)
	s.finish(taskID, err)
}

// finish は保存リクエストの解決を処理します
func (s *SaveScheduler) finish(taskID int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	if err != nil {
		s.logger.Warn("Draft save failed", "task_id", taskID, "error", err)
		s.setStateLocked(StateError)
	} else {
		s.setStateLocked(StateSaved)
	}

	if s.dirty {
		// 保存中に編集が入っていた場合は新しいデバウンス窓で保存し直す
		s.dirty = false
		s.setStateLocked(StatePending)
		s.timer = time.AfterFunc(s.debounce, s.debounceFired)
	} else {
		s.timer = time.AfterFunc(s.decay, s.decayFired)
	}

	s.cond.Broadcast()
}

// decayFired は Saved/Error の表示時間経過後に Idle へ戻します
func (s *SaveScheduler) decayFired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaved || s.state == StateError {
		s.setStateLocked(StateIdle)
	}
}

func (s *SaveScheduler) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SaveScheduler) setStateLocked(state SchedulerState) {
	if s.state == state {
		return
	}
	s.state = state
	if s.onState != nil {
		s.onState(state)
	}
}
