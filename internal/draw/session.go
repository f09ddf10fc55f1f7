package draw

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// DefaultRedraws is the redraw budget of a fresh draw.
const DefaultRedraws = 5

// Session actions written to the Recorder.
const (
	ActionDraw     = "draw"
	ActionRedraw   = "redraw"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// Source supplies the live task list and persists completions.
// *tracker.Tracker satisfies it.
type Source interface {
	Tasks() []task.Task
	MarkDone(id int64) (task.Task, error)
}

// Recorder receives session events tagged with the session ID.
type Recorder interface {
	RecordSession(session, action string, taskID int64, detail string)
}

// Session holds at most one drawn task and its remaining redraws.
// It is not safe for concurrent use.
type Session struct {
	src      Source
	rng      *rand.Rand
	budget   int
	recorder Recorder

	id         string
	current    *task.Task
	criteria   Criteria
	remaining  int
	candidates []task.Task
}

// NewSession returns an idle session. A negative budget is treated as 0.
func NewSession(src Source, rng *rand.Rand, budget int) *Session {
	return &Session{src: src, rng: rng, budget: max(budget, 0)}
}

// WithRecorder sets the recorder and returns s.
func (s *Session) WithRecorder(r Recorder) *Session {
	s.recorder = r
	return s
}

// Draw picks a task under c and resets the redraw budget. On an empty
// eligible set the session is left as it was.
func (s *Session) Draw(c Criteria) (task.Task, error) {
	if err := c.Validate(); err != nil {
		return task.Task{}, err
	}
	candidates := EligibleSet(s.src.Tasks(), c)
	picked, ok := Pick(s.rng, candidates)
	if !ok {
		return task.Task{}, NoEligible(c)
	}

	s.id = uuid.NewString()
	s.current = &picked
	s.criteria = c
	s.remaining = s.budget
	s.candidates = candidates
	s.record(ActionDraw, picked.ID, fmt.Sprintf("%dm, %d candidates", c.AvailableTime, len(candidates)))
	return picked, nil
}

// Redraw re-evaluates the eligible set with the stored criteria and picks
// again, spending one redraw. An empty set costs nothing.
func (s *Session) Redraw() (task.Task, error) {
	if s.current == nil {
		return task.Task{}, noActiveDraw()
	}
	if s.remaining <= 0 {
		return task.Task{}, clierr.New(clierr.RedrawExhausted, "no redraws left").
			WithDetails(map[string]any{"budget": s.budget})
	}
	candidates := EligibleSet(s.src.Tasks(), s.criteria)
	picked, ok := Pick(s.rng, candidates)
	if !ok {
		return task.Task{}, NoEligible(s.criteria)
	}

	s.remaining--
	s.current = &picked
	s.candidates = candidates
	s.record(ActionRedraw, picked.ID, fmt.Sprintf("%d left", s.remaining))
	return picked, nil
}

// Complete marks the drawn task done through the source and ends the draw.
func (s *Session) Complete() (task.Task, error) {
	if s.current == nil {
		return task.Task{}, noActiveDraw()
	}
	done, err := s.src.MarkDone(s.current.ID)
	if err != nil {
		return task.Task{}, err
	}
	s.record(ActionComplete, done.ID, done.Name)
	s.clear()
	return done, nil
}

// Abandon ends the draw without touching any task.
func (s *Session) Abandon() {
	if s.current == nil {
		return
	}
	s.record(ActionAbandon, s.current.ID, "")
	s.clear()
}

// Current returns the drawn task, if any.
func (s *Session) Current() (task.Task, bool) {
	if s.current == nil {
		return task.Task{}, false
	}
	return *s.current, true
}

// Active reports whether a task is drawn.
func (s *Session) Active() bool { return s.current != nil }

// Remaining returns the redraws left for the current draw.
func (s *Session) Remaining() int { return s.remaining }

// Budget returns the redraws granted per draw.
func (s *Session) Budget() int { return s.budget }

// Criteria returns the criteria of the current draw.
func (s *Session) Criteria() Criteria { return s.criteria }

// Candidates returns the eligible set the current task was picked from.
func (s *Session) Candidates() []task.Task { return slices.Clone(s.candidates) }

// ID returns the session ID of the current draw, or "".
func (s *Session) ID() string { return s.id }

func (s *Session) clear() {
	s.current = nil
	s.remaining = 0
	s.candidates = nil
	s.id = ""
}

func (s *Session) record(action string, id int64, detail string) {
	if s.recorder != nil {
		s.recorder.RecordSession(s.id, action, id, detail)
	}
}

func noActiveDraw() *clierr.Error {
	return clierr.New(clierr.NoActiveDraw, "no task has been drawn")
}
