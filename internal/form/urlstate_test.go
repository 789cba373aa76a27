package form

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func june(year int) Clock {
	return FixedClock(time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC))
}

func TestReconciler_DefaultPeriod(t *testing.T) {
	t.Run("next mode labels the period starting this year", func(t *testing.T) {
		r := NewReconciler(june(2024), PeriodModeNext, true)
		assert.Equal(t, "2024-2025", r.DefaultPeriod())
	})

	t.Run("previous mode labels the period ending this year", func(t *testing.T) {
		r := NewReconciler(june(2024), PeriodModePrevious, true)
		assert.Equal(t, "2023-2024", r.DefaultPeriod())
	})

	t.Run("unknown mode falls back to next", func(t *testing.T) {
		r := NewReconciler(june(2024), PeriodMode("sideways"), true)
		assert.Equal(t, "2024-2025", r.DefaultPeriod())
	})
}

func TestReconciler_DeriveDefaults(t *testing.T) {
	s := testSchema(t)
	r := NewReconciler(june(2024), PeriodModeNext, true)

	t.Run("round trip of whitelisted parameters", func(t *testing.T) {
		params, err := url.ParseQuery("client=Acme+Ltd&period=2023-2024&payroll=false")
		require.NoError(t, err)

		d := r.DeriveDefaults(params, s)

		assert.Equal(t, "Acme Ltd", d.Client)
		assert.Equal(t, "2023-2024", d.Period)
		assert.False(t, d.Applicability["payroll"])
		assert.True(t, d.Applicability["general"])
		assert.True(t, d.Applicability["others"])
	})

	t.Run("absent parameters yield deterministic defaults", func(t *testing.T) {
		d := r.DeriveDefaults(url.Values{}, s)

		assert.Equal(t, "", d.Client)
		assert.Equal(t, "2024-2025", d.Period)
		for key, applicable := range d.Applicability {
			assert.True(t, applicable, "section %s", key)
		}
	})

	t.Run("malformed period falls back to the computed default", func(t *testing.T) {
		d := r.DeriveDefaults(url.Values{"period": {"abc"}}, s)

		assert.Equal(t, "2024-2025", d.Period)
	})

	t.Run("only the literal false flips applicability", func(t *testing.T) {
		d := r.DeriveDefaults(url.Values{
			"general": {"False"},
			"payroll": {"0"},
			"others":  {"false"},
		}, s)

		assert.True(t, d.Applicability["general"])
		assert.True(t, d.Applicability["payroll"])
		assert.False(t, d.Applicability["others"])
	})

	t.Run("flags for unknown sections are ignored", func(t *testing.T) {
		d := r.DeriveDefaults(url.Values{"legacySection": {"false"}}, s)

		_, tracked := d.Applicability["legacySection"]
		assert.False(t, tracked)
	})

	t.Run("non-strict mode keeps any non-empty period", func(t *testing.T) {
		loose := NewReconciler(june(2024), PeriodModeNext, false)

		d := loose.DeriveDefaults(url.Values{"period": {"FY24"}}, s)

		assert.Equal(t, "FY24", d.Period)
	})
}

func TestReconciler_Reconcile(t *testing.T) {
	s := testSchema(t)
	r := NewReconciler(june(2024), PeriodModeNext, true)

	t.Run("re-seeds whitelisted fields only", func(t *testing.T) {
		m := NewModel(s, r.DeriveDefaults(url.Values{"client": {"Acme Ltd"}}, s), DefaultOptions())
		require.NoError(t, m.AttachFile("payroll", "salarybreakdown", testFile("sb.pdf")))
		m.SetRemark("payroll", "final figures pending")
		require.True(t, m.IsComplete("payroll"))

		params, err := url.ParseQuery("client=Beta+Co&period=2022-2023&general=false")
		require.NoError(t, err)
		r.Reconcile(m, params)

		assert.Equal(t, "Beta Co", m.Client())
		assert.Equal(t, "2022-2023", m.Period())
		assert.False(t, m.Applicable("general"))

		// Files, remarks and completion survive reconciliation
		assert.NotNil(t, m.File("payroll", "salarybreakdown"))
		assert.Equal(t, "final figures pending", m.Remark("payroll"))
		assert.True(t, m.IsComplete("payroll"))
	})

	t.Run("never pushes a section back into the completed set", func(t *testing.T) {
		m := NewModel(s, r.DeriveDefaults(url.Values{}, s), DefaultOptions())
		require.NoError(t, m.AttachFile("payroll", "salarybreakdown", testFile("sb.pdf")))

		r.Reconcile(m, url.Values{"payroll": {"false"}})
		assert.False(t, m.IsComplete("payroll"))

		// Link edited back to applicable: completion stays retracted
		r.Reconcile(m, url.Values{})
		assert.True(t, m.Applicable("payroll"))
		assert.False(t, m.IsComplete("payroll"))
	})
}
