package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/reward"
	"github.com/winterfair/fairbot/internal/game/session"
)

const testUserID int64 = 100500

type sinkRecorder struct {
	mu     sync.Mutex
	views  []View
	alerts []string
	err    error
}

func (r *sinkRecorder) Render(_ context.Context, _ int64, view View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.views = append(r.views, view)
	return nil
}

func (r *sinkRecorder) Alert(_ context.Context, _ int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, text)
	return nil
}

func (r *sinkRecorder) last(t *testing.T) View {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.views)
	return r.views[len(r.views)-1]
}

func (r *sinkRecorder) lastAlert(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.alerts)
	return r.alerts[len(r.alerts)-1]
}

type rewardStub struct {
	completions atomic.Int64
	registry    *catalog.Registry
}

func (s *rewardStub) Complete(_ context.Context, userID, taskID int64) (*reward.Result, error) {
	s.completions.Add(1)

	spec, err := s.registry.Lookup(taskID)
	if err != nil {
		return nil, err
	}

	return &reward.Result{
		TaskID:     taskID,
		TaskName:   spec.Task.Name,
		TaskEmoji:  spec.Task.Emoji,
		PavilionID: spec.Task.PavilionID,
		Reward:     spec.Task.Reward,
		NewBalance: 50 + spec.Task.Reward,
		FactID:     spec.Task.FactID,
	}, nil
}

type testRig struct {
	engine   *Engine
	sessions *session.MemoryStore
	sink     *sinkRecorder
	rewards  *rewardStub
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	registry := catalog.NewRegistry(slog.Default())
	registry.Load(catalog.Default())

	sessions := session.NewMemoryStore()
	sink := &sinkRecorder{}
	rewards := &rewardStub{registry: registry}

	eng := New(sessions, registry, rewards, sink, nil, slog.Default())
	eng.sleep = func(ctx context.Context, _ time.Duration) bool { return ctx.Err() == nil }

	return &testRig{engine: eng, sessions: sessions, sink: sink, rewards: rewards}
}

func (r *testRig) handle(t *testing.T, ev *Event) {
	t.Helper()
	require.NoError(t, r.engine.HandleEvent(context.Background(), ev))
}

func (r *testRig) start(t *testing.T, pavilionID, taskID int64) {
	t.Helper()
	r.handle(t, &Event{Kind: KindStart, UserID: testUserID, PavilionID: pavilionID, TaskID: taskID})
}

func (r *testRig) sessionOf(t *testing.T, taskID int64) *session.Session {
	t.Helper()
	sess, err := r.sessions.Get(context.Background(), testUserID, taskID)
	require.NoError(t, err)
	return sess
}

func (r *testRig) noSession(t *testing.T, taskID int64) {
	t.Helper()
	_, err := r.sessions.Get(context.Background(), testUserID, taskID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestStartUnknownTask(t *testing.T) {
	rig := newTestRig(t)

	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindStart, UserID: testUserID, PavilionID: 1, TaskID: 999})
	assert.Equal(t, apperrors.CodeNotFound, appCode(t, err))
}

func TestHitWithoutSession(t *testing.T) {
	rig := newTestRig(t)

	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindHit, UserID: testUserID, TaskID: 3})
	assert.Equal(t, apperrors.CodeNoSession, appCode(t, err))
}

func TestReactionFlow(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 1, 3)

	require.Eventually(t, func() bool {
		sess, err := rig.sessions.Get(context.Background(), testUserID, 3)
		return err == nil && sess.Reaction != nil && sess.Reaction.Ready
	}, time.Second, time.Millisecond, "hit window should open")

	rig.handle(t, &Event{Kind: KindHit, UserID: testUserID, TaskID: 3})

	rig.noSession(t, 3)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
	assert.Contains(t, rig.sink.last(t).Text, "Задание выполнено")

	// A duplicate hit after completion hits no session.
	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindHit, UserID: testUserID, TaskID: 3})
	assert.Equal(t, apperrors.CodeNoSession, appCode(t, err))
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestReactionEarlyHit(t *testing.T) {
	rig := newTestRig(t)
	// Freeze the narration so the window never opens.
	rig.engine.sleep = func(context.Context, time.Duration) bool { return false }

	rig.start(t, 1, 3)

	rig.handle(t, &Event{Kind: KindHit, UserID: testUserID, TaskID: 3})

	sess := rig.sessionOf(t, 3)
	assert.False(t, sess.Reaction.Ready)
	assert.EqualValues(t, 2, sess.Epoch, "failed attempt should invalidate running narration")
	assert.EqualValues(t, 0, rig.rewards.completions.Load())
	assert.Contains(t, rig.sink.last(t).Text, "Слишком рано")
}

func TestReactionWaitBeforeWindow(t *testing.T) {
	rig := newTestRig(t)
	// Freeze the narration so the window never opens.
	rig.engine.sleep = func(context.Context, time.Duration) bool { return false }

	rig.start(t, 1, 3)

	view := rig.sink.last(t)
	require.NotEmpty(t, view.Buttons)
	assert.Equal(t, WaitData(3), view.Buttons[0][0].Data, "pre-window screen offers the wait button, not the hit")

	// Pressing wait only toasts; the session and window stay as they were.
	rig.handle(t, &Event{Kind: KindWait, UserID: testUserID, TaskID: 3})
	assert.Contains(t, rig.sink.lastAlert(t), "Жди сигнала")
	sess := rig.sessionOf(t, 3)
	assert.False(t, sess.Reaction.Ready)
	assert.EqualValues(t, 1, sess.Epoch)
	assert.EqualValues(t, 0, rig.rewards.completions.Load())
}

func TestReactionInstant(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 2, 8)

	sess := rig.sessionOf(t, 8)
	require.True(t, sess.Reaction.Ready, "instant tasks open the window on entry")

	rig.handle(t, &Event{Kind: KindHit, UserID: testUserID, TaskID: 8})
	rig.noSession(t, 8)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestRestartBumpsEpoch(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 1, 3)
	first := rig.sessionOf(t, 3).Epoch

	rig.start(t, 1, 3)
	second := rig.sessionOf(t, 3).Epoch

	assert.Greater(t, second, first)
}

func TestChoicePredicate(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 1, 1)

	// Wrong pick re-prompts and keeps the session.
	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 1, Value: "blue"})
	assert.Contains(t, rig.sink.last(t).Text, "Не тот цвет")
	rig.sessionOf(t, 1)
	assert.EqualValues(t, 0, rig.rewards.completions.Load())

	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 1, Value: "red"})
	rig.noSession(t, 1)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestChoiceUnknownValue(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 1, 1)

	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindChoice, UserID: testUserID, TaskID: 1, Value: "purple"})
	assert.Equal(t, apperrors.CodeInvalidEvent, appCode(t, err))
	rig.sessionOf(t, 1)
}

func TestChoiceMultiPick(t *testing.T) {
	rig := newTestRig(t)

	// Task 14 wants three glaze colors.
	rig.start(t, 4, 14)

	// A done press before three picks only re-prompts.
	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 14, Value: DoneValue})
	assert.Contains(t, rig.sink.last(t).Text, "Продолжай выбирать")
	rig.sessionOf(t, 14)

	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 14, Value: "white"})
	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 14, Value: "pink"})

	// Repeated pick of the same value only alerts.
	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 14, Value: "pink"})
	assert.Contains(t, rig.sink.lastAlert(t), "Уже выбрано")
	assert.Len(t, rig.sessionOf(t, 14).Choice.Picks, 2)

	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 14, Value: "gold"})

	view := rig.sink.last(t)
	assert.Contains(t, view.Text, "Выбрано")
	require.NotEmpty(t, view.Buttons)
	assert.Equal(t, ChoiceData(14, DoneValue), view.Buttons[len(view.Buttons)-2][0].Data, "done button appears once satisfied")

	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 14, Value: DoneValue})
	rig.noSession(t, 14)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestChoiceSuccessorHandoff(t *testing.T) {
	rig := newTestRig(t)

	// Task 6 hands off from flavor choice into a one-step sequence.
	rig.start(t, 2, 6)

	rig.handle(t, &Event{Kind: KindChoice, UserID: testUserID, TaskID: 6, Value: "pistachio"})

	sess := rig.sessionOf(t, 6)
	assert.Equal(t, domain.ArchetypeSequence, sess.Archetype)
	assert.Nil(t, sess.Choice)
	require.NotNil(t, sess.Sequence)
	assert.EqualValues(t, 0, rig.rewards.completions.Load())

	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 6, Step: 0, Value: "caramel"})
	rig.noSession(t, 6)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestSequenceFixed(t *testing.T) {
	rig := newTestRig(t)

	// Task 21 packs a gift in five fixed steps.
	rig.start(t, 6, 21)

	steps := []string{"small", "kraft", "wrap", "red"}
	for i, value := range steps {
		rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 21, Step: i, Value: value})
		assert.Equal(t, i+1, rig.sessionOf(t, 21).Sequence.Step)
	}

	// A press from the superseded first screen re-renders the current step.
	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 21, Step: 0, Value: "small"})
	assert.Equal(t, 4, rig.sessionOf(t, 21).Sequence.Step)
	assert.Contains(t, rig.sink.last(t).Text, "Шаг 5/5")

	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindSequence, UserID: testUserID, TaskID: 21, Step: 4, Value: "bogus"})
	assert.Equal(t, apperrors.CodeInvalidEvent, appCode(t, err))

	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 21, Step: 4, Value: "tag"})
	rig.noSession(t, 21)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestSequenceRepeat(t *testing.T) {
	rig := newTestRig(t)

	// Task 10 wants seven tangerines.
	rig.start(t, 3, 10)

	// A premature done press re-renders the counter screen.
	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 10, Step: 0, Value: DoneValue})
	assert.Contains(t, rig.sink.last(t).Text, "Ещё рано")
	assert.Equal(t, 0, rig.sessionOf(t, 10).Sequence.Counter)

	for i := 0; i < 7; i++ {
		rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 10, Step: 0, Value: "add"})
	}
	assert.Equal(t, 7, rig.sessionOf(t, 10).Sequence.Counter)

	// Extra increments past the requirement are rejected.
	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 10, Step: 0, Value: "add"})
	assert.Equal(t, 7, rig.sessionOf(t, 10).Sequence.Counter)
	assert.Contains(t, rig.sink.lastAlert(t), "Достаточно")

	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 10, Step: 0, Value: DoneValue})
	rig.noSession(t, 10)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
	assert.Contains(t, rig.sink.last(t).Text, "Ваза наполнена")
}

func TestSequenceCategorized(t *testing.T) {
	rig := newTestRig(t)

	// Task 15 wants two candies of each of four colors.
	rig.start(t, 4, 15)

	colors := []string{"red", "blue", "green", "yellow"}
	for _, color := range colors {
		rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: color})
	}

	// A done press before the buckets are full only re-prompts.
	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: DoneValue})
	assert.Contains(t, rig.sink.last(t).Text, "Продолжай")
	rig.sessionOf(t, 15)

	// Overfilling a bucket is a no-op with an alert.
	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: "red"})
	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: "red"})
	assert.Contains(t, rig.sink.lastAlert(t), "уже достаточно")
	assert.Equal(t, 2, rig.sessionOf(t, 15).Sequence.Counts["red"])

	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: "pink"})
	assert.Equal(t, apperrors.CodeInvalidEvent, appCode(t, err))

	for _, color := range []string{"blue", "green", "yellow"} {
		rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: color})
	}

	// Filling the last bucket keeps the session and offers confirmation.
	view := rig.sink.last(t)
	require.NotEmpty(t, view.Buttons)
	assert.Equal(t, SequenceData(15, 0, DoneValue), view.Buttons[len(view.Buttons)-2][0].Data, "done button appears once every bucket is full")
	rig.sessionOf(t, 15)
	assert.EqualValues(t, 0, rig.rewards.completions.Load())

	rig.handle(t, &Event{Kind: KindSequence, UserID: testUserID, TaskID: 15, Step: 0, Value: DoneValue})
	rig.noSession(t, 15)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
	assert.Contains(t, rig.sink.last(t).Text, "Микс собран")
}

func TestCancel(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 1, 1)
	rig.handle(t, &Event{Kind: KindCancel, UserID: testUserID, TaskID: 1})

	rig.noSession(t, 1)
	assert.Contains(t, rig.sink.last(t).Text, "Задание отменено")

	// Cancelling again still confirms: the requested outcome holds.
	rig.handle(t, &Event{Kind: KindCancel, UserID: testUserID, TaskID: 1})
	assert.Contains(t, rig.sink.last(t).Text, "Задание отменено")
}

func TestCancelStopsNarration(t *testing.T) {
	rig := newTestRig(t)

	release := make(chan struct{})
	rig.engine.sleep = func(ctx context.Context, _ time.Duration) bool {
		select {
		case <-release:
			return true
		case <-ctx.Done():
			return false
		}
	}

	rig.start(t, 1, 3)
	rig.handle(t, &Event{Kind: KindCancel, UserID: testUserID, TaskID: 3})
	close(release)

	// The narration wakes up, finds no session and stops without writing.
	assert.Never(t, func() bool {
		rig.sink.mu.Lock()
		defer rig.sink.mu.Unlock()
		return len(rig.sink.views) > 0 && rig.sink.views[len(rig.sink.views)-1].Text != cancelledView(1).Text
	}, 100*time.Millisecond, 10*time.Millisecond)

	rig.noSession(t, 3)
}

func TestRenderFailureIsTransient(t *testing.T) {
	rig := newTestRig(t)

	rig.start(t, 1, 1)
	rig.sink.err = errors.New("message is not modified")

	err := rig.engine.HandleEvent(context.Background(), &Event{Kind: KindChoice, UserID: testUserID, TaskID: 1, Value: "red"})
	assert.Equal(t, apperrors.CodeTransientRender, appCode(t, err))

	// The completion itself is committed regardless of the render.
	rig.noSession(t, 1)
	assert.EqualValues(t, 1, rig.rewards.completions.Load())
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *Event
	}{
		{name: "start", data: "task_start:2:6", want: &Event{Kind: KindStart, UserID: testUserID, PavilionID: 2, TaskID: 6}},
		{name: "hit", data: "task_reaction_hit:3", want: &Event{Kind: KindHit, UserID: testUserID, TaskID: 3}},
		{name: "wait", data: "task_reaction_wait:3", want: &Event{Kind: KindWait, UserID: testUserID, TaskID: 3}},
		{name: "choice", data: "task_choice:1:red", want: &Event{Kind: KindChoice, UserID: testUserID, TaskID: 1, Value: "red"}},
		{name: "sequence", data: "task_sequence:21:4:tag", want: &Event{Kind: KindSequence, UserID: testUserID, TaskID: 21, Step: 4, Value: "tag"}},
		{name: "cancel", data: "task_cancel:10", want: &Event{Kind: KindCancel, UserID: testUserID, TaskID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent(testUserID, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestParseEventRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"task_start",
		"task_start:1",
		"task_start:x:1",
		"task_start:1:0",
		"task_start:-5:1",
		"task_reaction_hit:abc",
		"task_reaction_wait:1:extra",
		"task_choice:1:",
		"task_sequence:1:red:2",
		"task_sequence:1:-1:red",
		"task_cancel:1:extra",
		"unknown:1",
	}

	for _, data := range bad {
		_, err := ParseEvent(testUserID, data)
		assert.Equal(t, apperrors.CodeInvalidEvent, appCode(t, err), "data %q", data)
	}
}

func TestConcurrentIndependentTasks(t *testing.T) {
	rig := newTestRig(t)

	// Choice tasks with no predicate complete on any pick.
	tasks := map[int64]string{7: "nuts", 9: "gold", 17: "ginger", 25: "winter"}
	for taskID := range tasks {
		spec, err := rig.engine.catalog.Lookup(taskID)
		require.NoError(t, err)
		rig.start(t, spec.Task.PavilionID, taskID)
	}

	var wg sync.WaitGroup
	for taskID, value := range tasks {
		wg.Add(1)
		go func(taskID int64, value string) {
			defer wg.Done()
			_ = rig.engine.HandleEvent(context.Background(), &Event{Kind: KindChoice, UserID: testUserID, TaskID: taskID, Value: value})
		}(taskID, value)
	}
	wg.Wait()

	assert.EqualValues(t, len(tasks), rig.rewards.completions.Load())
	for taskID := range tasks {
		rig.noSession(t, taskID)
	}
}
