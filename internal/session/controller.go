package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/audio"
	"focusflow/internal/clock"
	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/logging"
	"focusflow/internal/stamps"
	"focusflow/internal/timer"
	"focusflow/internal/validation"
)

// BreakDuration is the fixed length of the post-session break.
const BreakDuration = 5 * time.Minute

// Store is the daily log persistence the controller writes through.
type Store interface {
	GetDailyLog(ctx context.Context, date string) (*domain.DailyLog, error)
	SaveDailyLog(ctx context.Context, log *domain.DailyLog) error
}

// TickResult is what one clock tick observed. The tick recomputes remaining
// time first, then evaluates notification conditions, so the caller renders
// a value consistent with any alert that just fired.
type TickResult struct {
	Phase        Phase
	RemainingSec int
	TimeUp       bool
	BreakOver    bool
}

// Controller is the four-state session machine. It owns the current
// session's identity, interruption notes and subtask progress, and triggers
// alerts and persistence writes on transitions. All methods are meant for a
// single logical thread of control.
type Controller struct {
	clock     clock.Clock
	audio     audio.Notifier
	store     Store
	evaluator *stamps.Evaluator
	validator *validation.SessionValidator

	phase   Phase
	session *domain.Session
	focus   *FocusTracker

	countdown  *timer.Countdown
	thresholds *timer.ThresholdNotifier
	timeUp     bool
	praised    bool

	refreshDone bool
	refreshedAt time.Time

	breakCountdown *timer.Countdown

	lastTask    *domain.Task
	stampEarned bool
}

// NewController creates a controller in the home phase with the default
// session input limits.
func NewController(clk clock.Clock, notifier audio.Notifier, store Store, evaluator *stamps.Evaluator) *Controller {
	return NewControllerWithValidator(clk, notifier, store, evaluator, validation.NewSessionValidator())
}

// NewControllerWithValidator creates a controller using configured limits.
func NewControllerWithValidator(clk clock.Clock, notifier audio.Notifier, store Store, evaluator *stamps.Evaluator, validator *validation.SessionValidator) *Controller {
	return &Controller{
		clock:     clk,
		audio:     notifier,
		store:     store,
		evaluator: evaluator,
		validator: validator,
		phase:     PhaseHome,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Session returns the in-progress session, nil outside a cycle.
func (c *Controller) Session() *domain.Session {
	return c.session
}

// Focus returns the subtask tracker, nil outside the timer phase.
func (c *Controller) Focus() *FocusTracker {
	return c.focus
}

// TimeUp reports whether the session countdown has reached zero.
func (c *Controller) TimeUp() bool {
	return c.timeUp
}

// RefreshDone reports whether checklist step 1 has been completed.
func (c *Controller) RefreshDone() bool {
	return c.refreshDone
}

// LastTask returns the most recently persisted task, nil before the first
// completion.
func (c *Controller) LastTask() *domain.Task {
	return c.lastTask
}

// StampNewlyEarned reports whether the last completion earned today's stamp.
func (c *Controller) StampNewlyEarned() bool {
	return c.stampEarned
}

// AudioReady reports whether the sound catalog has finished loading. A
// session cannot start before it has; the home screen uses this to show a
// preparing state instead of a refusal.
func (c *Controller) AudioReady() bool {
	return c.audio.Ready()
}

// Start begins a focus session: HOME -> TIMER. The audio unlock runs as part
// of the transition so the start cue is never blocked; when unlock fails the
// start is refused and the controller stays home.
func (c *Controller) Start(ctx context.Context, title string, durationMinutes int, subtasks []domain.Subtask) error {
	if c.phase != PhaseHome {
		return errors.NewInvalidInputError("phase", c.phase.String(), "a session can only start from home")
	}

	cleanTitle, err := c.validator.CleanTitle(title)
	if err != nil {
		return err
	}
	if err := c.validator.ValidateDuration(durationMinutes); err != nil {
		return err
	}
	if err := c.validator.ValidateSubtasks(subtasks); err != nil {
		return err
	}

	if err := c.audio.Unlock(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeAudio, "audio must be unlocked before starting")
	}

	for i := range subtasks {
		if subtasks[i].ID == "" {
			subtasks[i].ID = uuid.NewString()
		}
	}

	now := c.clock.Now()
	c.session = &domain.Session{
		Title:           cleanTitle,
		DurationMinutes: durationMinutes,
		StartedAt:       now,
		Subtasks:        subtasks,
	}
	c.countdown = timer.NewCountdown(time.Duration(durationMinutes)*time.Minute, now)
	c.thresholds = timer.NewThresholdNotifier()
	c.focus = NewFocusTracker(c.session.Subtasks)
	c.timeUp = false
	c.praised = false
	c.stampEarned = false
	c.phase = PhaseTimer

	// Unlock has settled by now, so the start cue can play immediately.
	c.audio.PlayAlert(audio.KindStart)
	return nil
}

// Tick advances the countdown for the current phase. During the timer phase
// it fires threshold alerts and the one-time looping timeout alert; during
// the break it fires the break-end alert once.
func (c *Controller) Tick(now time.Time) TickResult {
	result := TickResult{Phase: c.phase}

	switch c.phase {
	case PhaseTimer:
		result.RemainingSec = c.countdown.Remaining(now)
		if kind, minutes, fired := c.thresholds.Check(result.RemainingSec, c.countdown.Elapsed(now)); fired {
			logging.Debugf("session: %d minutes remaining\n", minutes)
			c.audio.PlayAlert(kind)
		}
		if c.countdown.Expire(now) {
			c.timeUp = true
			c.audio.PlayAlert(audio.KindTimeout)
		}
		result.TimeUp = c.timeUp

	case PhaseBreak:
		result.RemainingSec = c.breakCountdown.Remaining(now)
		if c.breakCountdown.Expire(now) {
			c.audio.PlayAlert(audio.KindBreakEnd)
		}
		result.BreakOver = c.breakCountdown.Expired()
	}

	return result
}

// Stop ends the timer phase: TIMER -> CHECKLIST. Any playing alert (notably
// the timeout loop) is halted, the notes are attached to the session, and
// nothing is persisted yet. Dismissing the time's-up alert goes through here.
func (c *Controller) Stop(interruptions ...string) error {
	if c.phase != PhaseTimer {
		return errors.NewInvalidInputError("phase", c.phase.String(), "only a running session can be stopped")
	}

	c.audio.StopAlert()
	c.session.Interruptions = append(c.session.Interruptions, interruptions...)

	// Halt the countdown; no timer state survives into the checklist.
	c.countdown = nil
	c.thresholds = nil
	c.refreshDone = false
	c.phase = PhaseChecklist
	return nil
}

// AddInterruption records a free-text note during the timer phase and plays
// the memo cue as feedback.
func (c *Controller) AddInterruption(note string) error {
	if c.phase != PhaseTimer {
		return errors.NewInvalidInputError("phase", c.phase.String(), "interruptions can only be noted during a session")
	}
	if note == "" {
		return errors.NewInvalidInputError("note", note, "cannot be empty")
	}
	c.session.Interruptions = append(c.session.Interruptions, note)
	c.audio.PlayAlert(audio.KindMemo)
	return nil
}

// AdvanceSubtask marks the focused subtask complete and moves on. Returns
// true when every subtask is done, which plays a praise cue on the first
// completion only.
func (c *Controller) AdvanceSubtask() (bool, error) {
	if c.phase != PhaseTimer || c.focus == nil {
		return false, errors.NewInvalidInputError("phase", c.phase.String(), "subtasks are tracked during a session")
	}
	allDone := c.focus.Advance()
	if allDone && !c.praised && len(c.session.Subtasks) > 0 {
		c.praised = true
		c.audio.PlayAlert(audio.KindPraise1)
	}
	return allDone, nil
}

// SkipSubtask moves focus to the next incomplete subtask without completing
// the current one.
func (c *Controller) SkipSubtask() error {
	if c.phase != PhaseTimer || c.focus == nil {
		return errors.NewInvalidInputError("phase", c.phase.String(), "subtasks are tracked during a session")
	}
	c.focus.Skip()
	return nil
}

// ToggleSubtask flips a subtask's completion from the list view. Allowed
// regardless of focus position.
func (c *Controller) ToggleSubtask(id string) error {
	if c.phase != PhaseTimer || c.focus == nil {
		return errors.NewInvalidInputError("phase", c.phase.String(), "subtasks are tracked during a session")
	}
	if !c.focus.Toggle(id) {
		return errors.NewNotFoundError("subtask", id)
	}
	return nil
}

// CompleteRefresh finishes checklist step 1. Step 2 stays disabled until
// this has happened.
func (c *Controller) CompleteRefresh() error {
	if c.phase != PhaseChecklist {
		return errors.NewInvalidInputError("phase", c.phase.String(), "the checklist follows a stopped session")
	}
	if !c.refreshDone {
		c.refreshDone = true
		c.refreshedAt = c.clock.Now()
	}
	return nil
}

// CompleteChecklist finishes step 2: CHECKLIST -> BREAK. This is the sole
// entry into persistence: the session becomes a task on today's log, the
// break cue plays, and the day is evaluated for a stamp. Persistence
// failures degrade to a logged warning; the transition still happens.
func (c *Controller) CompleteChecklist(ctx context.Context) error {
	if c.phase != PhaseChecklist {
		return errors.NewInvalidInputError("phase", c.phase.String(), "the checklist follows a stopped session")
	}
	if !c.refreshDone {
		return errors.NewInvalidInputError("checklist", "step 2", "step 1 must be completed first")
	}

	now := c.clock.Now()
	task := domain.Task{
		ID:              uuid.NewString(),
		Title:           c.session.Title,
		DurationMinutes: c.session.DurationMinutes,
		StartedAt:       c.session.StartedAt,
		EndedAt:         now,
		RefreshedAt:     c.refreshedAt,
		LoggedAt:        now,
		Description:     domain.FormatInterruptions(c.session.Interruptions),
		Subtasks:        c.session.Subtasks,
	}

	date := domain.DateKey(now)
	log, err := c.store.GetDailyLog(ctx, date)
	if err != nil {
		logging.Warnf("session: could not read daily log for %s, starting fresh: %v\n", date, err)
		log = domain.NewDailyLog(date)
	}
	log.Tasks = append(log.Tasks, task)
	if err := c.store.SaveDailyLog(ctx, log); err != nil {
		logging.Warnf("session: could not save daily log for %s: %v\n", date, err)
	}

	c.lastTask = &task
	c.audio.PlayAlert(audio.KindBreakStart)

	earned, err := c.evaluator.Evaluate(ctx, date, log.Tasks)
	if err != nil {
		logging.Warnf("session: stamp evaluation failed for %s: %v\n", date, err)
	}
	c.stampEarned = earned

	c.breakCountdown = timer.NewCountdown(BreakDuration, now)
	c.phase = PhaseBreak
	return nil
}

// FinishBreak returns home: BREAK -> HOME. Allowed before the break timer
// runs out (skipping the break). The session is cleared here and only here.
func (c *Controller) FinishBreak() error {
	if c.phase != PhaseBreak {
		return errors.NewInvalidInputError("phase", c.phase.String(), "there is no break to finish")
	}

	c.audio.StopAlert()
	c.session = nil
	c.focus = nil
	c.breakCountdown = nil
	c.timeUp = false
	c.refreshDone = false
	c.phase = PhaseHome
	return nil
}
