package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/doc-request/internal/schema"
)

func TestCompletionTracker(t *testing.T) {
	fields := []schema.Field{
		{Key: "trialbalance", Label: "Trial Balance"},
		{Key: "generalledger", Label: "General Ledger"},
	}

	newState := func() *SectionState {
		return &SectionState{Applicable: true, Files: make(map[string]*AttachedFile)}
	}

	t.Run("partial files leave the section incomplete", func(t *testing.T) {
		tr := NewCompletionTracker()
		state := newState()
		state.Files["trialbalance"] = testFile("tb.pdf")

		tr.OnFileAttached("general", state, fields)

		assert.False(t, tr.IsComplete("general"))
		assert.Equal(t, 0, tr.Count())
	})

	t.Run("full files complete the section idempotently", func(t *testing.T) {
		tr := NewCompletionTracker()
		state := newState()
		state.Files["trialbalance"] = testFile("tb.pdf")
		state.Files["generalledger"] = testFile("gl.pdf")

		tr.OnFileAttached("general", state, fields)
		tr.OnFileAttached("general", state, fields)

		assert.True(t, tr.IsComplete("general"))
		assert.Equal(t, 1, tr.Count())
	})

	t.Run("file removal retracts completion", func(t *testing.T) {
		tr := NewCompletionTracker()
		state := newState()
		state.Files["trialbalance"] = testFile("tb.pdf")
		state.Files["generalledger"] = testFile("gl.pdf")
		tr.OnFileAttached("general", state, fields)
		require.True(t, tr.IsComplete("general"))

		delete(state.Files, "generalledger")
		tr.OnFileRemoved("general", state, fields)

		assert.False(t, tr.IsComplete("general"))
	})

	t.Run("inapplicable section never completes regardless of files", func(t *testing.T) {
		tr := NewCompletionTracker()
		state := newState()
		state.Applicable = false
		state.Files["trialbalance"] = testFile("tb.pdf")
		state.Files["generalledger"] = testFile("gl.pdf")

		tr.OnFileAttached("general", state, fields)

		assert.False(t, tr.IsComplete("general"))
	})

	t.Run("switching off removes, switching on does not add", func(t *testing.T) {
		tr := NewCompletionTracker()
		state := newState()
		state.Files["trialbalance"] = testFile("tb.pdf")
		state.Files["generalledger"] = testFile("gl.pdf")
		tr.OnFileAttached("general", state, fields)

		tr.OnApplicabilityChanged("general", false)
		assert.False(t, tr.IsComplete("general"))

		tr.OnApplicabilityChanged("general", true)
		assert.False(t, tr.IsComplete("general"))
	})

	t.Run("completed preserves the given order", func(t *testing.T) {
		tr := NewCompletionTracker()
		empty := newState()
		tr.Recompute("b", empty, nil)
		tr.Recompute("a", empty, nil)

		assert.Equal(t, []string{"a", "b"}, tr.Completed([]string{"a", "b", "c"}))
	})
}
