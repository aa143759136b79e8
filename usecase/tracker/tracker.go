package tracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/planner"
)

// TimeRecorder persists seconds flushed out of a stopped timer.
type TimeRecorder interface {
	RecordTime(ctx context.Context, id, userID string, seconds int) error
}

// Scheduler drives periodic timer ticks. The returned stop function is safe
// to call once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// TickerScheduler is the production Scheduler backed by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Status is a point-in-time view of one timer, including any overrun alerts
// raised since the last poll.
type Status struct {
	TaskID         string                 `json:"task_id"`
	State          planner.TimerState     `json:"state"`
	ElapsedSeconds int                    `json:"elapsed_seconds"`
	Display        string                 `json:"display"`
	Alerts         []planner.OverrunAlert `json:"alerts,omitempty"`
}

type entry struct {
	session *planner.TimerSession
	stop    func()
	alerts  []planner.OverrunAlert
}

// UseCase maintains one live timer per user and task. Alerts raised by the
// tick loop queue up until the next status poll drains them.
type UseCase struct {
	recorder  TimeRecorder
	scheduler Scheduler
	clock     planner.Clock
	interval  time.Duration
	logger    *zap.Logger

	mu     sync.Mutex
	timers map[string]*entry
}

func New(recorder TimeRecorder, scheduler Scheduler, clock planner.Clock, logger *zap.Logger) *UseCase {
	if scheduler == nil {
		scheduler = TickerScheduler{}
	}
	if clock == nil {
		clock = planner.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		recorder:  recorder,
		scheduler: scheduler,
		clock:     clock,
		interval:  time.Second,
		logger:    logger,
	}
}

// Start begins or resumes the timer for a task. Starting a running timer is
// a no-op; starting a paused one resumes it with elapsed time intact.
func (uc *UseCase) Start(_ context.Context, userID, taskID, title string, estimatedMinutes int) (*Status, error) {
	if userID == "" || taskID == "" {
		return nil, domain.ErrInvalidPayload
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	key := timerKey(userID, taskID)
	e, ok := uc.timers[key]
	if !ok {
		e = &entry{session: planner.NewTimerSession(taskID, title, estimatedMinutes, uc.clock)}
		if uc.timers == nil {
			uc.timers = make(map[string]*entry)
		}
		uc.timers[key] = e
	}

	if e.session.State() != planner.TimerRunning {
		e.session.Start()
		e.stop = uc.scheduler.Every(uc.interval, func() { uc.tick(key) })
	}
	return uc.statusLocked(taskID, e, false), nil
}

// Pause suspends the timer and flushes the seconds tracked since the last
// flush into the task record, so time tracked so far survives a crash while
// paused. Elapsed time is kept and resumes on the next Start.
func (uc *UseCase) Pause(ctx context.Context, userID, taskID string) (*Status, error) {
	uc.mu.Lock()
	e, err := uc.lookupLocked(userID, taskID)
	if err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	delta := e.session.Pause()
	uc.haltLocked(e)
	status := uc.statusLocked(taskID, e, false)
	uc.mu.Unlock()

	if delta > 0 && uc.recorder != nil {
		if err := uc.recorder.RecordTime(ctx, taskID, userID, delta); err != nil {
			uc.logger.Error("failed to record tracked time",
				zap.String("task_id", taskID),
				zap.Int("seconds", delta),
				zap.Error(err))
			return status, err
		}
	}
	return status, nil
}

// Stop ends the timer, flushes the not-yet-persisted seconds into the task
// record and discards the timer. The flush survives timer removal even if
// the recorder fails; the error is returned to the caller.
func (uc *UseCase) Stop(ctx context.Context, userID, taskID string) (*Status, error) {
	uc.mu.Lock()
	e, err := uc.lookupLocked(userID, taskID)
	if err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	uc.haltLocked(e)
	total := e.session.Elapsed()
	delta := e.session.Stop()
	status := &Status{
		TaskID:         taskID,
		State:          e.session.State(),
		ElapsedSeconds: total,
		Display:        planner.FormatElapsed(total),
	}
	delete(uc.timers, timerKey(userID, taskID))
	uc.mu.Unlock()

	if delta > 0 && uc.recorder != nil {
		if err := uc.recorder.RecordTime(ctx, taskID, userID, delta); err != nil {
			uc.logger.Error("failed to record tracked time",
				zap.String("task_id", taskID),
				zap.Int("seconds", delta),
				zap.Error(err))
			return status, err
		}
	}
	return status, nil
}

// Status reports the timer state and drains queued overrun alerts.
func (uc *UseCase) Status(_ context.Context, userID, taskID string) (*Status, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	e, err := uc.lookupLocked(userID, taskID)
	if err != nil {
		return nil, err
	}
	return uc.statusLocked(taskID, e, true), nil
}

// StopAll flushes and discards every live timer. Used as a shutdown hook so
// tracked time is not lost on restart.
func (uc *UseCase) StopAll(ctx context.Context) error {
	uc.mu.Lock()
	keys := make([]string, 0, len(uc.timers))
	for key := range uc.timers {
		keys = append(keys, key)
	}
	uc.mu.Unlock()

	for _, key := range keys {
		userID, taskID := splitTimerKey(key)
		if _, err := uc.Stop(ctx, userID, taskID); err != nil {
			uc.logger.Warn("failed to stop timer during shutdown",
				zap.String("task_id", taskID), zap.Error(err))
		}
	}
	return nil
}

func (uc *UseCase) tick(key string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	e, ok := uc.timers[key]
	if !ok {
		return
	}
	if alert := e.session.Tick(); alert != nil {
		e.alerts = append(e.alerts, *alert)
	}
}

func (uc *UseCase) lookupLocked(userID, taskID string) (*entry, error) {
	e, ok := uc.timers[timerKey(userID, taskID)]
	if !ok {
		return nil, domain.ErrTimerNotFound
	}
	return e, nil
}

func (uc *UseCase) statusLocked(taskID string, e *entry, drainAlerts bool) *Status {
	elapsed := e.session.Elapsed()
	status := &Status{
		TaskID:         taskID,
		State:          e.session.State(),
		ElapsedSeconds: elapsed,
		Display:        planner.FormatElapsed(elapsed),
	}
	if drainAlerts && len(e.alerts) > 0 {
		status.Alerts = e.alerts
		e.alerts = nil
	}
	return status
}

func (uc *UseCase) haltLocked(e *entry) {
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
}

func timerKey(userID, taskID string) string {
	return userID + "\x00" + taskID
}

func splitTimerKey(key string) (userID, taskID string) {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
