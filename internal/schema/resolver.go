package schema

import (
	"context"

	"go.uber.org/zap"
)

// Source selects where form schemas come from.
type Source string

const (
	SourceSheet    Source = "sheet"    // remote spreadsheet CSV export
	SourceWorkbook Source = "workbook" // local XLSX workbook
	SourceStatic   Source = "static"   // compiled-in table
)

// Resolver resolves the schema for a form identifier according to the
// configured source. With the sheet source the identifier is the sheet tab
// id; the other sources ignore it and serve the one configured table.
type Resolver struct {
	source        Source
	loader        *Loader
	workbookPath  string
	workbookSheet string
	logger        *zap.Logger
}

// NewResolver creates a schema resolver
func NewResolver(source Source, loader *Loader, workbookPath, workbookSheet string, logger *zap.Logger) *Resolver {
	return &Resolver{
		source:        source,
		loader:        loader,
		workbookPath:  workbookPath,
		workbookSheet: workbookSheet,
		logger:        logger,
	}
}

// Resolve returns the schema for a form identifier.
func (r *Resolver) Resolve(ctx context.Context, formID string) (*Schema, error) {
	switch r.source {
	case SourceSheet:
		return r.loader.FetchSheet(ctx, formID)
	case SourceWorkbook:
		return r.loader.LoadWorkbook(r.workbookPath, r.workbookSheet)
	default:
		return Static(), nil
	}
}
