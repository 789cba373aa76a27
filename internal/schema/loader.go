package schema

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// row is one requested document as it appears in the source table.
type row struct {
	label       string
	description string
	section     string
}

// LoaderConfig holds schema source configuration
type LoaderConfig struct {
	SpreadsheetID string        // Google Sheets document ID
	ExportURL     string        // override for the CSV export endpoint (tests)
	Timeout       time.Duration // per-fetch timeout
}

// Loader resolves form schemas from a remote spreadsheet or a local workbook.
type Loader struct {
	cfg    LoaderConfig
	client *http.Client
	logger *zap.Logger
}

// NewLoader creates a new schema loader
func NewLoader(cfg LoaderConfig, logger *zap.Logger) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// FetchSheet downloads the CSV export of one sheet (tab) of the configured
// spreadsheet and resolves it into a Schema. Any fetch or parse failure is
// reported as ErrUnavailable: without a schema the form cannot render.
func (l *Loader) FetchSheet(ctx context.Context, sheetID string) (*Schema, error) {
	url := l.exportURL(sheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error("Failed to fetch schema sheet",
			zap.String("sheet_id", sheetID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Error("Schema sheet fetch returned non-OK status",
			zap.String("sheet_id", sheetID),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	s, err := parseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	l.logger.Info("Schema resolved from sheet",
		zap.String("sheet_id", sheetID),
		zap.Int("section_count", s.Len()))
	return s, nil
}

// exportURL builds the CSV export URL for a sheet tab.
func (l *Loader) exportURL(sheetID string) string {
	if l.cfg.ExportURL != "" {
		return fmt.Sprintf("%s?format=csv&id=%s&gid=%s", l.cfg.ExportURL, l.cfg.SpreadsheetID, sheetID)
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&id=%s&gid=%s",
		l.cfg.SpreadsheetID, l.cfg.SpreadsheetID, sheetID)
}

// LoadWorkbook resolves a schema from a local XLSX workbook sheet with the
// same column layout as the remote spreadsheet.
func (l *Loader) LoadWorkbook(path, sheetName string) (*Schema, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		l.logger.Error("Failed to open schema workbook",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s, err := fromTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	l.logger.Info("Schema resolved from workbook",
		zap.String("path", path),
		zap.String("sheet", sheetName),
		zap.Int("section_count", s.Len()))
	return s, nil
}

// parseCSV parses the sheet export: a header row naming the columns
// (label, description, section name) followed by one row per document slot.
func parseCSV(r io.Reader) (*Schema, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromTable(records)
}

// fromTable resolves a raw table (header + data rows) into a Schema,
// grouping rows by section in first-seen order. Blank rows and rows with no
// section are skipped.
func fromTable(records [][]string) (*Schema, error) {
	if len(records) < 2 {
		return nil, ErrEmptyTable
	}

	labelCol, descCol, sectionCol := -1, -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "label":
			labelCol = i
		case "description":
			descCol = i
		case "section name", "section":
			sectionCol = i
		}
	}
	if labelCol < 0 || sectionCol < 0 {
		return nil, fmt.Errorf("missing required columns (have %v)", records[0])
	}

	cell := func(rec []string, col int) string {
		if col < 0 || col >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[col])
	}

	var order []string
	grouped := make(map[string][]row)
	for _, rec := range records[1:] {
		r := row{
			label:       cell(rec, labelCol),
			description: cell(rec, descCol),
			section:     cell(rec, sectionCol),
		}
		if r.section == "" || r.label == "" {
			continue
		}
		if _, ok := grouped[r.section]; !ok {
			order = append(order, r.section)
		}
		grouped[r.section] = append(grouped[r.section], r)
	}

	if len(order) == 0 {
		return nil, ErrEmptyTable
	}

	sections := make([]Section, 0, len(order))
	for _, key := range order {
		sec := Section{Key: key}
		for _, r := range grouped[key] {
			sec.Fields = append(sec.Fields, Field{Label: r.label, Description: r.description})
		}
		sections = append(sections, sec)
	}

	return New(sections)
}
