package draw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

func mk(id int64, duration int) task.Task {
	return task.Task{
		ID: id, Name: "t", Kind: task.OneOff, Duration: duration,
		Priority: task.High, Energy: task.Low, Category: "Work",
	}
}

func crit(minutes int) Criteria {
	return Criteria{AvailableTime: minutes, Filter: AnyFilter()}
}

func TestEligible(t *testing.T) {
	daily := mk(1, 10)
	daily.Kind = task.Recurring
	daily.CompletedToday = true

	doneOnce := mk(2, 10)
	doneOnce.Completed = true

	stalled := mk(3, 10)
	stalled.Stalled = true

	allow := crit(30)
	allow.AllowCompleted = true

	tests := []struct {
		name string
		t    task.Task
		c    Criteria
		want bool
	}{
		{"fits", mk(1, 30), crit(30), true},
		{"too long", mk(1, 45), crit(30), false},
		{"too long even with allow-completed", mk(1, 45), allow, false},
		{"stalled", stalled, allow, false},
		{"completed one-off", doneOnce, allow, false},
		{"recurring done today", daily, crit(30), false},
		{"recurring done today, allowed", daily, allow, true},
		{"priority filter miss", mk(1, 5), Criteria{AvailableTime: 30, Filter: Filter{Priority: "low", Energy: All, Category: All}}, false},
		{"energy filter hit", mk(1, 5), Criteria{AvailableTime: 30, Filter: Filter{Priority: All, Energy: "low", Category: All}}, true},
		{"category filter miss", mk(1, 5), Criteria{AvailableTime: 30, Filter: Filter{Priority: All, Energy: All, Category: "Home"}}, false},
		{"zero filter matches", mk(1, 5), Criteria{AvailableTime: 30}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.t, tt.c))
		})
	}
}

func TestEligibleSetKeepsOrder(t *testing.T) {
	tasks := []task.Task{mk(1, 10), mk(2, 60), mk(3, 20)}
	set := EligibleSet(tasks, crit(30))
	require.Len(t, set, 2)
	assert.Equal(t, int64(1), set[0].ID)
	assert.Equal(t, int64(3), set[1].ID)
}

func TestPickIsDeterministicForSeed(t *testing.T) {
	tasks := []task.Task{mk(1, 5), mk(2, 5), mk(3, 5), mk(4, 5)}
	a, b := NewRand(7), NewRand(7)
	for range 20 {
		x, ok := Pick(a, tasks)
		require.True(t, ok)
		y, _ := Pick(b, tasks)
		assert.Equal(t, x.ID, y.ID)
	}

	_, ok := Pick(a, nil)
	assert.False(t, ok)
}

func TestPickCoversAllCandidates(t *testing.T) {
	tasks := []task.Task{mk(1, 5), mk(2, 5), mk(3, 5)}
	rng := NewRand(1)
	seen := map[int64]bool{}
	for range 200 {
		p, _ := Pick(rng, tasks)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("HIGH", "", "all")
	require.NoError(t, err)
	assert.Equal(t, Filter{Priority: "high", Energy: All, Category: All}, f)
	assert.False(t, f.IsAll())

	_, err = ParseFilter("", "max", "")
	assert.True(t, clierr.HasCode(err, clierr.InvalidEnergy))
}

func TestCriteriaValidate(t *testing.T) {
	assert.True(t, clierr.HasCode(crit(0).Validate(), clierr.InvalidDuration))
	assert.NoError(t, crit(15).Validate())
}

func TestFan(t *testing.T) {
	var many []task.Task
	for i := range 10 {
		many = append(many, mk(int64(i+1), 5))
	}
	sel := mk(99, 5)

	cards := Fan(many, sel)
	require.Len(t, cards, FanSize)
	assert.Equal(t, int64(1), cards[0].ID)
	assert.Equal(t, int64(99), cards[FanSize-1].ID)

	few := Fan(many[:2], many[1])
	require.Len(t, few, 3)
	assert.Equal(t, int64(2), few[2].ID)
}

func TestCountdown(t *testing.T) {
	var c Countdown
	assert.Equal(t, "00:00", c.String())
	assert.False(t, c.Tick())

	c.Start(1)
	assert.Equal(t, "01:00", c.String())
	assert.True(t, c.Running())

	expired := 0
	for range 61 {
		if c.Tick() {
			expired++
		}
	}
	assert.Equal(t, 1, expired)
	assert.Equal(t, "00:00", c.String())
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)

	c.Start(2)
	c.Tick()
	assert.Equal(t, "01:59", c.String())
	c.Cancel()
	assert.False(t, c.Running())
	assert.Equal(t, 0, c.Remaining())
	assert.Zero(t, c.Progress())
}

type sessionRecorder struct {
	sessions []string
	actions  []string
}

func (r *sessionRecorder) RecordSession(session, action string, _ int64, _ string) {
	r.sessions = append(r.sessions, session)
	r.actions = append(r.actions, action)
}

func newTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
	tr, err := tracker.Open(kv.NewMemory(), tracker.Options{
		Now: func() time.Time {
			now = now.Add(time.Millisecond)
			return now
		},
	})
	require.NoError(t, err)
	return tr
}

func add(t *testing.T, tr *tracker.Tracker, name, kind, duration string) task.Task {
	t.Helper()
	added, err := tr.Add(task.Input{
		Name: name, Kind: kind, Duration: duration, Priority: "medium", Energy: "medium",
	})
	require.NoError(t, err)
	return added
}

func TestSessionRedrawBudget(t *testing.T) {
	tr := newTracker(t)
	add(t, tr, "a", "once", "15")
	add(t, tr, "b", "once", "15")

	s := NewSession(tr, NewRand(3), DefaultRedraws)
	_, err := s.Draw(crit(30))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Remaining())

	for want := 4; want >= 0; want-- {
		_, err := s.Redraw()
		require.NoError(t, err)
		assert.Equal(t, want, s.Remaining())
	}

	_, err = s.Redraw()
	assert.True(t, clierr.HasCode(err, clierr.RedrawExhausted))
	assert.True(t, s.Active())

	_, err = s.Draw(crit(30))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Remaining(), "a new draw restores the budget")
}

func TestSessionEmptySet(t *testing.T) {
	tr := newTracker(t)
	add(t, tr, "long", "once", "45")

	s := NewSession(tr, NewRand(1), DefaultRedraws)
	_, err := s.Draw(crit(30))
	assert.True(t, clierr.HasCode(err, clierr.NoEligibleTasks))
	_, ok := s.Current()
	assert.False(t, ok)

	_, err = s.Redraw()
	assert.True(t, clierr.HasCode(err, clierr.NoActiveDraw))
	_, err = s.Complete()
	assert.True(t, clierr.HasCode(err, clierr.NoActiveDraw))
}

func TestRedrawOnEmptiedSetKeepsBudget(t *testing.T) {
	tr := newTracker(t)
	only := add(t, tr, "only", "once", "15")

	s := NewSession(tr, NewRand(1), DefaultRedraws)
	_, err := s.Draw(crit(30))
	require.NoError(t, err)

	_, err = tr.Stall(only.ID)
	require.NoError(t, err)

	_, err = s.Redraw()
	assert.True(t, clierr.HasCode(err, clierr.NoEligibleTasks))
	assert.Equal(t, DefaultRedraws, s.Remaining())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, only.ID, cur.ID)
}

func TestCompleteMarksDoneAndClears(t *testing.T) {
	tr := newTracker(t)
	daily := add(t, tr, "stretch", "regular", "10")
	rec := &sessionRecorder{}

	s := NewSession(tr, NewRand(1), DefaultRedraws).WithRecorder(rec)
	_, err := s.Draw(crit(15))
	require.NoError(t, err)
	id := s.ID()
	assert.NotEmpty(t, id)

	done, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, daily.ID, done.ID)
	assert.True(t, done.CompletedToday)
	assert.False(t, s.Active())

	got, err := tr.Get(daily.ID)
	require.NoError(t, err)
	assert.True(t, got.CompletedToday)

	_, err = s.Draw(crit(15))
	assert.True(t, clierr.HasCode(err, clierr.NoEligibleTasks), "done today is excluded by default")

	assert.Equal(t, []string{ActionDraw, ActionComplete}, rec.actions)
	assert.Equal(t, []string{id, id}, rec.sessions)
}

func TestAbandonLeavesTasksAlone(t *testing.T) {
	tr := newTracker(t)
	a := add(t, tr, "a", "once", "5")

	s := NewSession(tr, NewRand(1), DefaultRedraws)
	_, err := s.Draw(crit(5))
	require.NoError(t, err)
	s.Abandon()

	assert.False(t, s.Active())
	got, err := tr.Get(a.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}
