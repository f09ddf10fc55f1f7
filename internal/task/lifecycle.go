package task

// Done reports the completion flag that matches the task's kind:
// Completed for one-off tasks, CompletedToday for recurring ones.
func (t *Task) Done() bool {
	if t.Kind == Recurring {
		return t.CompletedToday
	}
	return t.Completed
}

// SetDone writes v into the per-kind completion flag and leaves the other
// flag untouched.
func (t *Task) SetDone(v bool) {
	if t.Kind == Recurring {
		t.CompletedToday = v
		return
	}
	t.Completed = v
}

// ToggleDone flips the per-kind completion flag.
func (t *Task) ToggleDone() {
	t.SetDone(!t.Done())
}

// ToggleStall flips Stalled. Un-stalling clears the reason; stalling keeps
// whatever reason was already set.
func (t *Task) ToggleStall() {
	t.Stalled = !t.Stalled
	if !t.Stalled {
		t.StallReason = ""
	}
}
