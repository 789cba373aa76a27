package form

import "regexp"

// MaxFileSize is the largest accepted upload, matching the client-side gate.
const MaxFileSize = 5 << 20 // 5 MiB

var periodPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}$`)

// acceptedTypes lists the MIME types a document slot accepts.
var acceptedTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"application/pdf": true,
}

// ValidatePeriod checks a period label. Strict mode requires the
// YYYY-YYYY form; otherwise any non-empty string passes.
func ValidatePeriod(period string, strict bool) error {
	if strict {
		if !periodPattern.MatchString(period) {
			return ErrInvalidPeriod
		}
		return nil
	}
	if period == "" {
		return ErrInvalidPeriod
	}
	return nil
}

// ValidateClient checks the client name.
func ValidateClient(client string) error {
	if client == "" {
		return ErrClientRequired
	}
	return nil
}

// ValidateFile checks a candidate attachment against the size and type
// constraints. The two rejection reasons are distinct so the caller can
// surface them separately. A rejected file must leave any prior attachment
// in place; validation therefore happens before AttachFile.
func ValidateFile(f *AttachedFile) error {
	if f == nil || f.Name == "" {
		return ErrEmptyFileName
	}
	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	if !acceptedTypes[f.ContentType] {
		return ErrUnsupportedType
	}
	return nil
}
