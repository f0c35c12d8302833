package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusflow/internal/audio"
	"focusflow/internal/domain"
	"focusflow/internal/stamps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock is a manually advanced clock
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// fakeNotifier records alert activity. loading mirrors the real service's
// refusal to unlock before the catalog has settled.
type fakeNotifier struct {
	unlockCalls int
	unlockErr   error
	loading     bool
	alerts      []audio.Kind
	stops       int
	playing     bool
}

func (f *fakeNotifier) Unlock() error {
	f.unlockCalls++
	if f.loading {
		return errors.New("sounds still loading")
	}
	return f.unlockErr
}

func (f *fakeNotifier) PlayAlert(kind audio.Kind) {
	f.alerts = append(f.alerts, kind)
	f.playing = true
}

func (f *fakeNotifier) StopAlert() {
	f.stops++
	f.playing = false
}

func (f *fakeNotifier) Ready() bool   { return !f.loading }
func (f *fakeNotifier) Playing() bool { return f.playing }

func (f *fakeNotifier) count(kind audio.Kind) int {
	n := 0
	for _, k := range f.alerts {
		if k == kind {
			n++
		}
	}
	return n
}

// memoryStore is an in-memory daily log store with injectable failures
type memoryStore struct {
	logs    map[string]*domain.DailyLog
	getErr  error
	saveErr error
	saves   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{logs: make(map[string]*domain.DailyLog)}
}

func (m *memoryStore) GetDailyLog(ctx context.Context, date string) (*domain.DailyLog, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if log, ok := m.logs[date]; ok {
		return log, nil
	}
	return domain.NewDailyLog(date), nil
}

func (m *memoryStore) SaveDailyLog(ctx context.Context, log *domain.DailyLog) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.logs[log.Date] = log
	return nil
}

// memoryStampStore is a set-once stamp store
type memoryStampStore struct {
	stamps map[string]bool
}

func newMemoryStampStore() *memoryStampStore {
	return &memoryStampStore{stamps: make(map[string]bool)}
}

func (m *memoryStampStore) GetStamp(ctx context.Context, date string) (bool, error) {
	return m.stamps[date], nil
}

func (m *memoryStampStore) SetStamp(ctx context.Context, date string) (bool, error) {
	if m.stamps[date] {
		return false, nil
	}
	m.stamps[date] = true
	return true, nil
}

func (m *memoryStampStore) ListStamps(ctx context.Context, monthPrefix string) ([]string, error) {
	return nil, nil
}

type fixture struct {
	clk      *fixedClock
	notifier *fakeNotifier
	store    *memoryStore
	ctrl     *Controller
}

func setupController(t *testing.T) *fixture {
	t.Helper()
	clk := &fixedClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	notifier := &fakeNotifier{}
	store := newMemoryStore()
	evaluator := stamps.NewEvaluator(newMemoryStampStore())
	return &fixture{
		clk:      clk,
		notifier: notifier,
		store:    store,
		ctrl:     NewController(clk, notifier, store, evaluator),
	}
}

func TestController_FullCycle(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	// HOME -> TIMER
	err := f.ctrl.Start(ctx, "Write report", 25, nil)
	require.NoError(t, err)
	assert.Equal(t, PhaseTimer, f.ctrl.Phase())
	assert.Equal(t, 1, f.notifier.unlockCalls)
	assert.Equal(t, []audio.Kind{audio.KindStart}, f.notifier.alerts)

	// Countdown runs off the wall clock
	f.clk.advance(10 * time.Minute)
	result := f.ctrl.Tick(f.clk.Now())
	assert.Equal(t, 15*60, result.RemainingSec)

	// TIMER -> CHECKLIST
	require.NoError(t, f.ctrl.Stop("buy milk", "call mom"))
	assert.Equal(t, PhaseChecklist, f.ctrl.Phase())
	assert.Equal(t, 1, f.notifier.stops, "stop must halt any playing alert")

	// Step 2 is gated on step 1
	err = f.ctrl.CompleteChecklist(ctx)
	require.Error(t, err)
	require.NoError(t, f.ctrl.CompleteRefresh())
	require.NoError(t, f.ctrl.CompleteChecklist(ctx))

	// CHECKLIST -> BREAK persisted the task
	assert.Equal(t, PhaseBreak, f.ctrl.Phase())
	assert.Equal(t, 1, f.notifier.count(audio.KindBreakStart))

	log := f.store.logs["2026-08-31"]
	require.NotNil(t, log)
	require.Len(t, log.Tasks, 1)
	task := log.Tasks[0]
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, 25, task.DurationMinutes)
	assert.True(t, task.StartedAt.Equal(time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)),
		"startedAt must be captured at session start, not completion")
	assert.Equal(t, "Interruptions:\n- buy milk\n- call mom", task.Description)

	// BREAK -> HOME clears the session
	require.NoError(t, f.ctrl.FinishBreak())
	assert.Equal(t, PhaseHome, f.ctrl.Phase())
	assert.Nil(t, f.ctrl.Session())
}

func TestController_StartPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		title   string
		minutes int
	}{
		{
			name:    "should refuse an empty title",
			title:   "  ",
			minutes: 25,
		},
		{
			name:    "should refuse a non-positive duration",
			title:   "Write report",
			minutes: 0,
		},
		{
			name: "should refuse to start when audio unlock fails",
			prepare: func(f *fixture) {
				f.notifier.unlockErr = errors.New("no device")
			},
			title:   "Write report",
			minutes: 25,
		},
		{
			name: "should refuse to start outside the home phase",
			prepare: func(f *fixture) {
				require.NoError(t, f.ctrl.Start(context.Background(), "First", 25, nil))
			},
			title:   "Second",
			minutes: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupController(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			phase := f.ctrl.Phase()

			err := f.ctrl.Start(context.Background(), tt.title, tt.minutes, nil)
			assert.Error(t, err)
			assert.Equal(t, phase, f.ctrl.Phase(), "a refused start must not change phase")
		})
	}
}

func TestController_StartWaitsForAudioLoading(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()
	f.notifier.loading = true

	// The catalog is still decoding: the start is refused, nothing plays
	err := f.ctrl.Start(ctx, "Write report", 25, nil)
	require.Error(t, err)
	assert.Equal(t, PhaseHome, f.ctrl.Phase())
	assert.False(t, f.ctrl.AudioReady())
	assert.Empty(t, f.notifier.alerts)

	// Once loading settles the same start goes through
	f.notifier.loading = false
	require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, nil))
	assert.Equal(t, PhaseTimer, f.ctrl.Phase())
	assert.True(t, f.ctrl.AudioReady())
}

func TestController_ThresholdAlertsFireOnce(t *testing.T) {
	f := setupController(t)
	require.NoError(t, f.ctrl.Start(context.Background(), "Deep work", 10, nil))

	// Sub-second ticks around the 5-minute mark
	f.clk.advance(5 * time.Minute)
	for i := 0; i < 4; i++ {
		f.ctrl.Tick(f.clk.Now())
		f.clk.advance(200 * time.Millisecond)
	}
	assert.Equal(t, 1, f.notifier.count(audio.KindFiveMinutes))

	// 1 minute remaining
	f.clk.advance(4 * time.Minute)
	f.ctrl.Tick(f.clk.Now())
	f.ctrl.Tick(f.clk.Now())
	assert.Equal(t, 1, f.notifier.count(audio.KindOneMinute))
}

func TestController_TimeUpFiresExactlyOnce(t *testing.T) {
	f := setupController(t)
	require.NoError(t, f.ctrl.Start(context.Background(), "Sprint", 1, nil))

	f.clk.advance(1 * time.Minute)
	for i := 0; i < 10; i++ {
		result := f.ctrl.Tick(f.clk.Now())
		assert.True(t, result.TimeUp)
		assert.Equal(t, 0, result.RemainingSec)
		f.clk.advance(time.Second)
	}

	assert.Equal(t, 1, f.notifier.count(audio.KindTimeout))
	assert.True(t, f.ctrl.TimeUp())
}

func TestController_ShortSessionDoesNotDoubleFire(t *testing.T) {
	f := setupController(t)
	require.NoError(t, f.ctrl.Start(context.Background(), "Sprint", 1, nil))

	// The 1-minute threshold coincides with second zero; the start guard
	// must suppress it
	f.ctrl.Tick(f.clk.Now())
	assert.Equal(t, 0, f.notifier.count(audio.KindOneMinute))

	f.clk.advance(1 * time.Minute)
	f.ctrl.Tick(f.clk.Now())
	assert.Equal(t, 0, f.notifier.count(audio.KindOneMinute))
	assert.Equal(t, 1, f.notifier.count(audio.KindTimeout))
}

func TestController_TimerNeverSkipsChecklist(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, nil))

	// No direct path from TIMER to BREAK
	assert.Error(t, f.ctrl.CompleteRefresh())
	assert.Error(t, f.ctrl.CompleteChecklist(ctx))
	assert.Error(t, f.ctrl.FinishBreak())
	assert.Equal(t, PhaseTimer, f.ctrl.Phase())
}

func TestController_AddInterruption(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	assert.Error(t, f.ctrl.AddInterruption("too early"), "notes need a running session")

	require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, nil))
	require.NoError(t, f.ctrl.AddInterruption("buy milk"))
	assert.Error(t, f.ctrl.AddInterruption(""))

	assert.Equal(t, []string{"buy milk"}, f.ctrl.Session().Interruptions)
	assert.Equal(t, 1, f.notifier.count(audio.KindMemo))
}

func TestController_SubtaskTracking(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	subtasks := []domain.Subtask{
		{Title: "outline"},
		{Title: "draft"},
	}
	require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, subtasks))

	// Ids are assigned at start when missing
	for _, st := range f.ctrl.Session().Subtasks {
		assert.NotEmpty(t, st.ID)
	}

	allDone, err := f.ctrl.AdvanceSubtask()
	require.NoError(t, err)
	assert.False(t, allDone)

	allDone, err = f.ctrl.AdvanceSubtask()
	require.NoError(t, err)
	assert.True(t, allDone)
	assert.Equal(t, 1, f.notifier.count(audio.KindPraise1), "finishing every subtask plays a praise cue")

	// Final subtask state survives onto the persisted task
	require.NoError(t, f.ctrl.Stop())
	require.NoError(t, f.ctrl.CompleteRefresh())
	require.NoError(t, f.ctrl.CompleteChecklist(ctx))
	task := f.store.logs["2026-08-31"].Tasks[0]
	require.Len(t, task.Subtasks, 2)
	assert.True(t, task.Subtasks[0].IsCompleted)
	assert.True(t, task.Subtasks[1].IsCompleted)
}

func TestController_PraiseCuePlaysOnceAfterAllComplete(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	subtasks := []domain.Subtask{
		{Title: "outline"},
		{Title: "draft"},
	}
	require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, subtasks))

	_, err := f.ctrl.AdvanceSubtask()
	require.NoError(t, err)
	allDone, err := f.ctrl.AdvanceSubtask()
	require.NoError(t, err)
	require.True(t, allDone)

	// Advancing again with everything complete stays done but must not
	// replay the cue
	for i := 0; i < 3; i++ {
		allDone, err = f.ctrl.AdvanceSubtask()
		require.NoError(t, err)
		assert.True(t, allDone)
	}
	assert.Equal(t, 1, f.notifier.count(audio.KindPraise1), "praise plays only on the transition to all-complete")
}

func TestController_PersistenceFailuresDegrade(t *testing.T) {
	t.Run("should start a fresh log when the read fails", func(t *testing.T) {
		f := setupController(t)
		ctx := context.Background()
		f.store.getErr = errors.New("disk gone")

		require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, nil))
		require.NoError(t, f.ctrl.Stop())
		require.NoError(t, f.ctrl.CompleteRefresh())

		f.store.getErr = nil // let the save through
		require.NoError(t, f.ctrl.CompleteChecklist(ctx))
		assert.Equal(t, PhaseBreak, f.ctrl.Phase())
	})

	t.Run("should still reach the break when the write fails", func(t *testing.T) {
		f := setupController(t)
		ctx := context.Background()
		f.store.saveErr = errors.New("disk full")

		require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, nil))
		require.NoError(t, f.ctrl.Stop())
		require.NoError(t, f.ctrl.CompleteRefresh())
		require.NoError(t, f.ctrl.CompleteChecklist(ctx))
		assert.Equal(t, PhaseBreak, f.ctrl.Phase())
	})
}

func TestController_StampEarnedOnLongSession(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.Start(ctx, "Marathon", 130, nil))
	require.NoError(t, f.ctrl.Stop())
	require.NoError(t, f.ctrl.CompleteRefresh())
	require.NoError(t, f.ctrl.CompleteChecklist(ctx))
	assert.True(t, f.ctrl.StampNewlyEarned())
	require.NoError(t, f.ctrl.FinishBreak())

	// A second qualifying session the same day never re-earns
	require.NoError(t, f.ctrl.Start(ctx, "Encore", 130, nil))
	require.NoError(t, f.ctrl.Stop())
	require.NoError(t, f.ctrl.CompleteRefresh())
	require.NoError(t, f.ctrl.CompleteChecklist(ctx))
	assert.False(t, f.ctrl.StampNewlyEarned())
}

func TestController_BreakCountdown(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.Start(ctx, "Write report", 25, nil))
	require.NoError(t, f.ctrl.Stop())
	require.NoError(t, f.ctrl.CompleteRefresh())
	require.NoError(t, f.ctrl.CompleteChecklist(ctx))

	result := f.ctrl.Tick(f.clk.Now())
	assert.Equal(t, PhaseBreak, result.Phase)
	assert.Equal(t, 5*60, result.RemainingSec)
	assert.False(t, result.BreakOver)

	f.clk.advance(5 * time.Minute)
	result = f.ctrl.Tick(f.clk.Now())
	assert.True(t, result.BreakOver)
	assert.Equal(t, 1, f.notifier.count(audio.KindBreakEnd))

	// Further ticks do not repeat the break-end cue
	f.clk.advance(time.Second)
	f.ctrl.Tick(f.clk.Now())
	assert.Equal(t, 1, f.notifier.count(audio.KindBreakEnd))

	require.NoError(t, f.ctrl.FinishBreak())
	assert.Equal(t, PhaseHome, f.ctrl.Phase())
}

func TestController_DismissingTimeUpForcesChecklist(t *testing.T) {
	f := setupController(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.Start(ctx, "Sprint", 1, nil))
	f.clk.advance(time.Minute)
	f.ctrl.Tick(f.clk.Now())
	require.True(t, f.ctrl.TimeUp())
	require.True(t, f.notifier.playing, "timeout alert should be looping")

	// The user acknowledges the time's-up alert
	require.NoError(t, f.ctrl.Stop())
	assert.Equal(t, PhaseChecklist, f.ctrl.Phase())
	assert.False(t, f.notifier.playing, "the timeout loop must not survive the transition")
}
