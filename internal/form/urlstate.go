package form

import (
	"fmt"
	"net/url"

	"github.com/garyjia/doc-request/internal/schema"
)

// PeriodMode selects which two-year label the computed default period uses.
type PeriodMode string

const (
	// PeriodModeNext labels the period starting this year: "Y-(Y+1)".
	PeriodModeNext PeriodMode = "next"
	// PeriodModePrevious labels the period ending this year: "(Y-1)-Y".
	PeriodModePrevious PeriodMode = "previous"
)

// Defaults is the whitelisted launch configuration carried by a shareable
// link: client, period, and one applicability flag per known section.
// Files and remarks are deliberately never encoded in the URL.
type Defaults struct {
	Client        string
	Period        string
	Applicability map[string]bool
}

// Reconciler maps shareable-link query parameters onto form defaults and
// re-seeds them into a live model when the parameter set changes.
type Reconciler struct {
	clock  Clock
	mode   PeriodMode
	strict bool
}

// NewReconciler creates a reconciler. The clock is injected because the
// computed default period depends on the calendar year.
func NewReconciler(clock Clock, mode PeriodMode, strict bool) *Reconciler {
	if mode != PeriodModePrevious {
		mode = PeriodModeNext
	}
	return &Reconciler{clock: clock, mode: mode, strict: strict}
}

// DefaultPeriod computes the fallback period label for the current year.
func (r *Reconciler) DefaultPeriod() string {
	year := r.clock.Now().Year()
	if r.mode == PeriodModePrevious {
		return fmt.Sprintf("%d-%d", year-1, year)
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}

// DeriveDefaults resolves query parameters into deterministic defaults:
//   - client: taken verbatim, empty when absent
//   - period: kept only when it passes validation, else the computed default
//     (a malformed period never reaches the model)
//   - applicability: true for every schema section unless the parameter is
//     the literal string "false"
func (r *Reconciler) DeriveDefaults(params url.Values, s *schema.Schema) Defaults {
	d := Defaults{
		Client:        params.Get("client"),
		Applicability: make(map[string]bool, s.Len()),
	}

	period := params.Get("period")
	if period != "" && ValidatePeriod(period, r.strict) == nil {
		d.Period = period
	} else {
		d.Period = r.DefaultPeriod()
	}

	for _, key := range s.Keys() {
		d.Applicability[key] = params.Get(key) != "false"
	}

	return d
}

// Reconcile re-seeds the whitelisted fields of a live model from the current
// parameter set. Attached files and remarks are never touched, and a section
// is never pushed back into the completed set: applicability goes through
// the model so the usual retract-only rules apply.
func (r *Reconciler) Reconcile(m *Model, params url.Values) {
	d := r.DeriveDefaults(params, m.Schema())
	m.SetClient(d.Client)
	m.SetPeriod(d.Period)
	for key, applicable := range d.Applicability {
		m.SetApplicability(key, applicable)
	}
}
