package form

import (
	"github.com/garyjia/doc-request/internal/schema"
)

// CompletionTracker maintains the set of sections considered complete, used
// for progress display and submit gating. It is updated synchronously by
// every model mutation, never lazily.
type CompletionTracker struct {
	completed map[string]struct{}
}

// NewCompletionTracker creates an empty tracker.
func NewCompletionTracker() *CompletionTracker {
	return &CompletionTracker{completed: make(map[string]struct{})}
}

// sectionComplete derives completeness from current state: an applicable
// section is complete when every schema field has a file (vacuously so with
// zero fields); an inapplicable section is never complete — it drops out of
// the denominator instead.
func sectionComplete(state *SectionState, fields []schema.Field) bool {
	if !state.Applicable {
		return false
	}
	for _, f := range fields {
		if state.Files[f.Key] == nil {
			return false
		}
	}
	return true
}

// Recompute re-derives one section's membership from its current file state.
func (t *CompletionTracker) Recompute(sectionKey string, state *SectionState, fields []schema.Field) {
	if sectionComplete(state, fields) {
		t.completed[sectionKey] = struct{}{}
	} else {
		delete(t.completed, sectionKey)
	}
}

// OnFileAttached recomputes the section after a file lands in a slot.
// Re-attaching to an already complete section is a no-op on the set.
func (t *CompletionTracker) OnFileAttached(sectionKey string, state *SectionState, fields []schema.Field) {
	t.Recompute(sectionKey, state, fields)
}

// OnFileRemoved recomputes the section after a slot is cleared.
func (t *CompletionTracker) OnFileRemoved(sectionKey string, state *SectionState, fields []schema.Field) {
	t.Recompute(sectionKey, state, fields)
}

// OnApplicabilityChanged retracts completion when a section is switched off,
// regardless of file state. Switching a section back on does NOT re-add it:
// the section stays out of the set until the next file event recomputes it
// from the files actually attached.
func (t *CompletionTracker) OnApplicabilityChanged(sectionKey string, applicable bool) {
	if !applicable {
		delete(t.completed, sectionKey)
	}
}

// IsComplete reports membership in the completed set.
func (t *CompletionTracker) IsComplete(sectionKey string) bool {
	_, ok := t.completed[sectionKey]
	return ok
}

// Count returns the size of the completed set.
func (t *CompletionTracker) Count() int {
	return len(t.completed)
}

// Completed filters the given ordered keys down to the completed ones.
func (t *CompletionTracker) Completed(order []string) []string {
	out := make([]string, 0, len(t.completed))
	for _, key := range order {
		if _, ok := t.completed[key]; ok {
			out = append(out, key)
		}
	}
	return out
}
