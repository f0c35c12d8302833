package session

import (
	"focusflow/internal/domain"
)

// FocusTracker walks an ordered subtask list one item at a time during the
// timer phase. The focus index is only meaningful while incomplete subtasks
// remain.
type FocusTracker struct {
	subtasks []domain.Subtask
	focus    int
}

// NewFocusTracker creates a tracker over the session's subtask slice. The
// tracker mutates the elements in place so completion state stays on the
// session.
func NewFocusTracker(subtasks []domain.Subtask) *FocusTracker {
	return &FocusTracker{subtasks: subtasks}
}

// Current returns the focused subtask, or false when none remain incomplete.
func (t *FocusTracker) Current() (domain.Subtask, bool) {
	if t.AllComplete() {
		return domain.Subtask{}, false
	}
	return t.subtasks[t.focus], true
}

// FocusIndex returns the current focus position.
func (t *FocusTracker) FocusIndex() int {
	return t.focus
}

// Subtasks returns the tracked list in order.
func (t *FocusTracker) Subtasks() []domain.Subtask {
	return t.subtasks
}

// Advance marks the focused subtask complete and moves focus to the next
// incomplete one after it, wrapping to pick up any skipped subtask. Returns
// true when no incomplete subtasks remain.
func (t *FocusTracker) Advance() bool {
	if len(t.subtasks) == 0 {
		return true
	}
	t.subtasks[t.focus].IsCompleted = true

	next := t.nextIncomplete(t.focus + 1)
	if next < 0 {
		return true
	}
	t.focus = next
	return false
}

// Skip moves focus forward to the next incomplete subtask without marking
// the current one complete.
func (t *FocusTracker) Skip() {
	next := t.nextIncomplete(t.focus + 1)
	if next >= 0 && next != t.focus {
		t.focus = next
	}
}

// Toggle flips the completion state of the subtask with the given id,
// regardless of focus position. When the focused subtask becomes complete,
// focus moves on to the next incomplete one. Returns false for an unknown id.
func (t *FocusTracker) Toggle(id string) bool {
	for i := range t.subtasks {
		if t.subtasks[i].ID != id {
			continue
		}
		t.subtasks[i].IsCompleted = !t.subtasks[i].IsCompleted
		if i == t.focus && t.subtasks[i].IsCompleted {
			if next := t.nextIncomplete(t.focus + 1); next >= 0 {
				t.focus = next
			}
		}
		return true
	}
	return false
}

// AllComplete reports whether every subtask is completed. An empty list
// counts as complete.
func (t *FocusTracker) AllComplete() bool {
	for _, st := range t.subtasks {
		if !st.IsCompleted {
			return false
		}
	}
	return true
}

// nextIncomplete finds the first incomplete subtask at or after from,
// wrapping to the start. Returns -1 when every subtask is complete.
func (t *FocusTracker) nextIncomplete(from int) int {
	n := len(t.subtasks)
	for i := 0; i < n; i++ {
		idx := (from + i) % n
		if !t.subtasks[idx].IsCompleted {
			return idx
		}
	}
	return -1
}
