package planner

import "time"

// Clock abstracts wall-clock reads so timer behavior is testable without
// real waits.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TimerState is the session timer lifecycle.
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
)

// Overrun thresholds as percentages of the estimated duration. Evaluated in
// ascending order; the watermark only ever advances.
var overrunThresholds = [...]int{100, 150, 200}

// OverrunAlert is raised once per threshold per session.
type OverrunAlert struct {
	Threshold      int    `json:"threshold"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// TimerSession tracks elapsed time against one task's estimate. Elapsed is
// derived from wall-clock deltas, not tick counts, so it stays correct even
// when sampling is delayed. Not safe for concurrent use; the registry that
// owns sessions serializes access.
type TimerSession struct {
	TaskID           string
	TaskTitle        string
	EstimatedSeconds int

	clock       Clock
	state       TimerState
	startedAt   time.Time
	accumulated int
	flushed     int
	watermark   int
}

// NewTimerSession creates an idle timer for a task. A nil clock falls back
// to the system clock.
func NewTimerSession(taskID, title string, estimatedMinutes int, clock Clock) *TimerSession {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TimerSession{
		TaskID:           taskID,
		TaskTitle:        title,
		EstimatedSeconds: estimatedMinutes * 60,
		clock:            clock,
		state:            TimerIdle,
	}
}

func (t *TimerSession) State() TimerState { return t.state }

// Elapsed returns total tracked seconds for the current session, including
// the live segment when running.
func (t *TimerSession) Elapsed() int {
	if t.state == TimerRunning {
		return t.accumulated + int(t.clock.Now().Sub(t.startedAt).Seconds())
	}
	return t.accumulated
}

// Start begins or resumes counting. Resuming from paused keeps the
// accumulated elapsed time. Starting a running timer is a no-op.
func (t *TimerSession) Start() {
	if t.state == TimerRunning {
		return
	}
	t.startedAt = t.clock.Now()
	t.state = TimerRunning
}

// Pause stops counting and returns the seconds tracked since the last
// flush, for persisting into the owning task. Elapsed time is retained so a
// later Start resumes from it; repeated pause/resume cycles each flush only
// their own delta, keeping the task's total monotonic.
func (t *TimerSession) Pause() int {
	if t.state != TimerRunning {
		return 0
	}
	t.accumulated = t.Elapsed()
	t.state = TimerPaused
	delta := t.accumulated - t.flushed
	t.flushed = t.accumulated
	return delta
}

// Stop ends the session: it returns the not-yet-flushed seconds for
// persisting, then resets the counter and clears the alert watermark so a
// fresh session on the same task can alert again. On a run with no pauses
// this is the full elapsed time.
func (t *TimerSession) Stop() int {
	flush := t.Elapsed() - t.flushed
	t.accumulated = 0
	t.flushed = 0
	t.watermark = 0
	t.state = TimerIdle
	return flush
}

// Tick samples the timer and reports at most one overrun alert: the highest
// threshold newly crossed since the last tick. Lower thresholds skipped in
// the same tick never fire later because the watermark advances past them.
func (t *TimerSession) Tick() *OverrunAlert {
	if t.state != TimerRunning || t.EstimatedSeconds <= 0 {
		return nil
	}

	elapsed := t.Elapsed()
	pct := elapsed * 100 / t.EstimatedSeconds

	crossed := 0
	for _, threshold := range overrunThresholds {
		if pct >= threshold && t.watermark < threshold {
			crossed = threshold
		}
	}
	if crossed == 0 {
		return nil
	}

	t.watermark = crossed
	title, message := overrunText(crossed, t.TaskTitle)
	return &OverrunAlert{
		Threshold:      crossed,
		Title:          title,
		Message:        message,
		ElapsedSeconds: elapsed,
	}
}

func overrunText(threshold int, taskTitle string) (string, string) {
	switch threshold {
	case 100:
		return "Time's up", "You've reached the estimated time for \"" + taskTitle + "\". Consider wrapping up or reassessing the task complexity."
	case 150:
		return "Procrastination alert", "You're spending 50% more time than estimated on \"" + taskTitle + "\". Take a break or refocus."
	default:
		return "Serious overrun", "You've spent double the estimated time on \"" + taskTitle + "\". Consider breaking it into smaller tasks."
	}
}
