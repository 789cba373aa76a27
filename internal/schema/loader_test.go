package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sampleCSV = `label,description,section name
Trial Balance,As at year end,general
General Ledger,Full ledger,general
Salary Breakdown,By employee,payroll
`

func TestLoader_FetchSheet(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("resolves schema from CSV export", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "csv", r.URL.Query().Get("format"))
			assert.Equal(t, "gid42", r.URL.Query().Get("gid"))
			w.Write([]byte(sampleCSV))
		}))
		defer srv.Close()

		loader := NewLoader(LoaderConfig{SpreadsheetID: "sheet123", ExportURL: srv.URL}, logger)

		s, err := loader.FetchSheet(context.Background(), "gid42")

		require.NoError(t, err)
		assert.Equal(t, []string{"general", "payroll"}, s.Keys())

		fields, ok := s.Fields("general")
		require.True(t, ok)
		require.Len(t, fields, 2)
		assert.Equal(t, "trialbalance", fields[0].Key)
		assert.Equal(t, "As at year end", fields[0].Description)
	})

	t.Run("non-OK status reports unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		loader := NewLoader(LoaderConfig{ExportURL: srv.URL}, logger)

		_, err := loader.FetchSheet(context.Background(), "gid1")

		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unreachable source reports unavailable", func(t *testing.T) {
		loader := NewLoader(LoaderConfig{ExportURL: "http://127.0.0.1:1"}, logger)

		_, err := loader.FetchSheet(context.Background(), "gid1")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestLoader_LoadWorkbook(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("resolves schema from workbook sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "request_list.xlsx")

		f := excelize.NewFile()
		rows := [][]string{
			{"label", "description", "section name"},
			{"Bank Statements", "Full period", "cashAndEquivalent"},
			{"Bank Reconciliations", "Year end", "cashAndEquivalent"},
			{"Sales Listing", "Detailed", "revenue"},
		}
		for i, row := range rows {
			for j, val := range row {
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue("Sheet1", cell, val))
			}
		}
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		loader := NewLoader(LoaderConfig{}, logger)

		s, err := loader.LoadWorkbook(path, "Sheet1")

		require.NoError(t, err)
		assert.Equal(t, []string{"cashAndEquivalent", "revenue"}, s.Keys())
		assert.True(t, s.HasField("cashAndEquivalent", "bankreconciliations"))
	})

	t.Run("missing workbook reports unavailable", func(t *testing.T) {
		loader := NewLoader(LoaderConfig{}, logger)

		_, err := loader.LoadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), "Sheet1")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestFromTable(t *testing.T) {
	t.Run("skips blank and sectionless rows", func(t *testing.T) {
		s, err := fromTable([][]string{
			{"label", "description", "section name"},
			{"Trial Balance", "desc", "general"},
			{"", "", ""},
			{"Orphan Row", "no section", ""},
			{"Salary Breakdown", "", "payroll"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"general", "payroll"}, s.Keys())
	})

	t.Run("missing required columns", func(t *testing.T) {
		_, err := fromTable([][]string{
			{"name", "notes"},
			{"Trial Balance", "x"},
		})

		require.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := fromTable([][]string{{"label", "description", "section name"}})
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("accepts section column alias", func(t *testing.T) {
		s, err := fromTable([][]string{
			{"Label", "Description", "Section"},
			{"Trial Balance", "desc", "general"},
		})

		require.NoError(t, err)
		assert.True(t, s.HasSection("general"))
	})
}
