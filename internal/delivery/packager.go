package delivery

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/garyjia/doc-request/internal/submission"
	"github.com/garyjia/doc-request/pkg/utils"
	"go.uber.org/zap"
)

// Packager bundles payload entries into a single zip archive laid out
// sectionKey/fieldKey/originalFileName, in payload order.
type Packager struct {
	logger *zap.Logger
}

// NewPackager creates a new packager
func NewPackager(logger *zap.Logger) *Packager {
	return &Packager{logger: logger}
}

// Build writes the archive into memory. Entry paths come from schema keys;
// the file name is the only client-controlled component and is sanitized.
func (p *Packager) Build(entries []submission.Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range entries {
		name := utils.SanitizePathComponent(entry.File.Name)
		if name == "" {
			name = "unnamed"
		}
		w, err := zw.Create(entry.Path + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", entry.Path, err)
		}
		if _, err := w.Write(entry.File.Data); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", entry.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	p.logger.Debug("Archive built",
		zap.Int("entry_count", len(entries)),
		zap.Int("size_bytes", buf.Len()))

	return buf.Bytes(), nil
}

// BundleName returns the attachment file name for a submission.
func BundleName(client, period string) string {
	name := fmt.Sprintf("%s-%s-documents.zip", client, period)
	return utils.SanitizePathComponent(name)
}
