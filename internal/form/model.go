package form

import (
	"github.com/garyjia/doc-request/internal/schema"
)

// AttachedFile is an opaque uploaded blob. A document slot holds at most one;
// replacing or removing it simply drops the previous handle.
type AttachedFile struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// SectionState tracks one section of a submission in progress.
type SectionState struct {
	Applicable bool
	Remark     string
	Files      map[string]*AttachedFile
}

// Capabilities toggles the optional form features. Deployments that want the
// plain checklist disable these instead of running a different code path.
type Capabilities struct {
	Applicability bool
	Remarks       bool
}

// Options configures a form model.
type Options struct {
	Capabilities Capabilities
	StrictPeriod bool
}

// DefaultOptions returns the full-featured configuration.
func DefaultOptions() Options {
	return Options{
		Capabilities: Capabilities{Applicability: true, Remarks: true},
		StrictPeriod: true,
	}
}

// Model is the in-memory state of one submission: client and period metadata
// plus one SectionState per schema section. It owns the section map
// exclusively; all access goes key -> state, and mutations referencing keys
// outside the schema never create entries.
type Model struct {
	schema   *schema.Schema
	opts     Options
	client   string
	period   string
	sections map[string]*SectionState
	tracker  *CompletionTracker
}

// NewModel creates a model for the given schema, seeding client, period and
// per-section applicability from the URL-derived defaults. Every schema
// section gets a state; sections the defaults never mention stay applicable.
func NewModel(s *schema.Schema, defaults Defaults, opts Options) *Model {
	m := &Model{
		schema:   s,
		opts:     opts,
		client:   defaults.Client,
		period:   defaults.Period,
		sections: make(map[string]*SectionState, s.Len()),
		tracker:  NewCompletionTracker(),
	}

	for _, sec := range s.Sections() {
		applicable := true
		if opts.Capabilities.Applicability {
			if v, ok := defaults.Applicability[sec.Key]; ok {
				applicable = v
			}
		}
		state := &SectionState{
			Applicable: applicable,
			Files:      make(map[string]*AttachedFile),
		}
		m.sections[sec.Key] = state
		// Zero-field applicable sections are vacuously complete from the start.
		m.tracker.Recompute(sec.Key, state, sec.Fields)
	}

	return m
}

// Schema returns the schema this model was initialized against.
func (m *Model) Schema() *schema.Schema { return m.schema }

// Client returns the client name.
func (m *Model) Client() string { return m.client }

// SetClient sets the client name.
func (m *Model) SetClient(client string) { m.client = client }

// Period returns the period label.
func (m *Model) Period() string { return m.period }

// SetPeriod sets the period label.
func (m *Model) SetPeriod(period string) { m.period = period }

// SetApplicability toggles whether a section applies to this client.
// Unknown section keys are ignored: dynamic schemas may omit legacy keys
// still present in old shareable links. Turning a section off retracts its
// completion; turning it back on does not restore it — completeness is only
// re-derived by the next file event.
func (m *Model) SetApplicability(sectionKey string, applicable bool) {
	if !m.opts.Capabilities.Applicability {
		return
	}
	state, ok := m.sections[sectionKey]
	if !ok {
		return
	}
	if state.Applicable == applicable {
		return
	}
	state.Applicable = applicable
	m.tracker.OnApplicabilityChanged(sectionKey, applicable)
}

// AttachFile places a file in a document slot, replacing any existing one.
// Content validation is the caller's concern; the model only refuses keys
// outside the schema. Completion is recomputed before this returns.
func (m *Model) AttachFile(sectionKey, fieldKey string, f *AttachedFile) error {
	state, ok := m.sections[sectionKey]
	if !ok {
		return ErrUnknownSection
	}
	if !m.schema.HasField(sectionKey, fieldKey) {
		return ErrUnknownField
	}
	state.Files[fieldKey] = f
	fields, _ := m.schema.Fields(sectionKey)
	m.tracker.OnFileAttached(sectionKey, state, fields)
	return nil
}

// RemoveFile clears a document slot. A no-op for unknown keys or empty slots.
func (m *Model) RemoveFile(sectionKey, fieldKey string) {
	state, ok := m.sections[sectionKey]
	if !ok {
		return
	}
	delete(state.Files, fieldKey)
	fields, _ := m.schema.Fields(sectionKey)
	m.tracker.OnFileRemoved(sectionKey, state, fields)
}

// SetRemark records free-text notes against a section.
func (m *Model) SetRemark(sectionKey, text string) {
	if !m.opts.Capabilities.Remarks {
		return
	}
	state, ok := m.sections[sectionKey]
	if !ok {
		return
	}
	state.Remark = text
}

// Applicable reports whether a section is marked applicable.
// Sections outside the schema report false.
func (m *Model) Applicable(sectionKey string) bool {
	state, ok := m.sections[sectionKey]
	return ok && state.Applicable
}

// Remark returns the remark text for a section.
func (m *Model) Remark(sectionKey string) string {
	state, ok := m.sections[sectionKey]
	if !ok {
		return ""
	}
	return state.Remark
}

// File returns the file attached to a document slot, or nil.
func (m *Model) File(sectionKey, fieldKey string) *AttachedFile {
	state, ok := m.sections[sectionKey]
	if !ok {
		return nil
	}
	return state.Files[fieldKey]
}

// Completed returns the completed section keys in schema order.
func (m *Model) Completed() []string {
	return m.tracker.Completed(m.schema.Keys())
}

// IsComplete reports whether one section is in the completed set.
func (m *Model) IsComplete(sectionKey string) bool {
	return m.tracker.IsComplete(sectionKey)
}

// ApplicableCount counts the applicable sections present in the schema.
func (m *Model) ApplicableCount() int {
	n := 0
	for _, key := range m.schema.Keys() {
		if m.sections[key].Applicable {
			n++
		}
	}
	return n
}

// Validate checks the client/period metadata.
func (m *Model) Validate() error {
	if err := ValidateClient(m.client); err != nil {
		return err
	}
	return ValidatePeriod(m.period, m.opts.StrictPeriod)
}

// IsReadyToSubmit reports whether the submission can go out: metadata valid
// and every applicable section complete.
func (m *Model) IsReadyToSubmit() bool {
	if m.Validate() != nil {
		return false
	}
	return m.tracker.Count() == m.ApplicableCount()
}
