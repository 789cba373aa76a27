package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePeriod(t *testing.T) {
	t.Run("strict accepts the two-year form only", func(t *testing.T) {
		assert.NoError(t, ValidatePeriod("2024-2025", true))
		assert.ErrorIs(t, ValidatePeriod("FY24", true), ErrInvalidPeriod)
		assert.ErrorIs(t, ValidatePeriod("2024/2025", true), ErrInvalidPeriod)
		assert.ErrorIs(t, ValidatePeriod("2024-25", true), ErrInvalidPeriod)
		assert.ErrorIs(t, ValidatePeriod("", true), ErrInvalidPeriod)
	})

	t.Run("non-strict accepts any non-empty label", func(t *testing.T) {
		assert.NoError(t, ValidatePeriod("FY24", false))
		assert.ErrorIs(t, ValidatePeriod("", false), ErrInvalidPeriod)
	})
}

func TestValidateClient(t *testing.T) {
	assert.NoError(t, ValidateClient("Acme Ltd"))
	assert.ErrorIs(t, ValidateClient(""), ErrClientRequired)
}

func TestValidateFile(t *testing.T) {
	t.Run("accepts every whitelisted type", func(t *testing.T) {
		for _, ct := range []string{"image/png", "image/jpeg", "image/gif", "application/pdf"} {
			f := testFile("doc")
			f.ContentType = ct
			assert.NoError(t, ValidateFile(f), ct)
		}
	})

	t.Run("oversized file is distinguishable from a bad type", func(t *testing.T) {
		big := testFile("big.pdf")
		big.Size = MaxFileSize + 1

		err := ValidateFile(big)

		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.NotErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("exact limit passes", func(t *testing.T) {
		f := testFile("limit.pdf")
		f.Size = MaxFileSize

		assert.NoError(t, ValidateFile(f))
	})

	t.Run("unsupported type", func(t *testing.T) {
		f := testFile("macro.docx")
		f.ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

		assert.ErrorIs(t, ValidateFile(f), ErrUnsupportedType)
	})

	t.Run("nil or nameless file", func(t *testing.T) {
		assert.ErrorIs(t, ValidateFile(nil), ErrEmptyFileName)

		f := testFile("")
		assert.ErrorIs(t, ValidateFile(f), ErrEmptyFileName)
	})
}
