package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolver_Resolve(t *testing.T) {
	logger := zap.NewNop()

	t.Run("static source ignores the form id", func(t *testing.T) {
		r := NewResolver(SourceStatic, nil, "", "", logger)

		s, err := r.Resolve(context.Background(), "anything")

		require.NoError(t, err)
		assert.Equal(t, Static().Keys(), s.Keys())
	})

	t.Run("unknown source falls back to static", func(t *testing.T) {
		r := NewResolver(Source("mystery"), nil, "", "", logger)

		s, err := r.Resolve(context.Background(), "anything")

		require.NoError(t, err)
		assert.Equal(t, 11, s.Len())
	})

	t.Run("sheet source fetches the tab named by the form id", func(t *testing.T) {
		var gotGID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotGID = r.URL.Query().Get("gid")
			w.Write([]byte(sampleCSV))
		}))
		defer srv.Close()

		loader := NewLoader(LoaderConfig{SpreadsheetID: "sheet123", ExportURL: srv.URL}, logger)
		r := NewResolver(SourceSheet, loader, "", "", logger)

		s, err := r.Resolve(context.Background(), "tab7")

		require.NoError(t, err)
		assert.Equal(t, "tab7", gotGID)
		assert.True(t, s.HasSection("general"))
	})
}
