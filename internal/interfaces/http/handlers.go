package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/doc-request/internal/form"
	"github.com/garyjia/doc-request/internal/models"
	"github.com/garyjia/doc-request/internal/schema"
	"github.com/garyjia/doc-request/internal/submission"
)

// SchemaResolver resolves the schema for a form identifier.
type SchemaResolver interface {
	Resolve(ctx context.Context, formID string) (*schema.Schema, error)
}

// Submitter delivers a ready form model.
type Submitter interface {
	Submit(ctx context.Context, m *form.Model) (*submission.Result, error)
}

// SubmissionStore records delivered submissions.
type SubmissionStore interface {
	Create(record *models.SubmissionRecord) error
	ListRecent(limit int) ([]*models.SubmissionRecord, error)
}

// Handlers implements the HTTP endpoints.
type Handlers struct {
	resolver   SchemaResolver
	reconciler *form.Reconciler
	formOpts   form.Options
	submitter  Submitter
	store      SubmissionStore
	logger     *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewHandlers creates the endpoint handlers
func NewHandlers(
	resolver SchemaResolver,
	reconciler *form.Reconciler,
	formOpts form.Options,
	submitter Submitter,
	store SubmissionStore,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		resolver:   resolver,
		reconciler: reconciler,
		formOpts:   formOpts,
		submitter:  submitter,
		store:      store,
		logger:     logger,
		inFlight:   make(map[string]struct{}),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "doc-request",
		"time":    time.Now().Format(time.RFC3339),
	})
}

type sectionView struct {
	Key        string         `json:"key"`
	Fields     []schema.Field `json:"fields"`
	Applicable bool           `json:"applicable"`
}

// GetForm handles GET /api/forms/:id. It resolves the schema and seeds the
// render configuration from the shareable-link query parameters.
func (h *Handlers) GetForm(c *gin.Context) {
	s, err := h.resolver.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to resolve form schema",
			zap.String("form_id", c.Param("id")),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "form configuration unavailable"})
		return
	}

	defaults := h.reconciler.DeriveDefaults(c.Request.URL.Query(), s)

	sections := make([]sectionView, 0, s.Len())
	for _, sec := range s.Sections() {
		sections = append(sections, sectionView{
			Key:        sec.Key,
			Fields:     sec.Fields,
			Applicable: defaults.Applicability[sec.Key],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"client":   defaults.Client,
		"period":   defaults.Period,
		"sections": sections,
	})
}

// Submit handles POST /api/forms/:id/submit. The multipart body carries
// client, period, optional <sectionKey>=false applicability flags, optional
// <sectionKey>_remark texts, and parallel files/fileFields entries where
// each fileFields value is the "sectionKey/fieldKey" slot for the file at
// the same index.
func (h *Handlers) Submit(c *gin.Context) {
	formID := c.Param("id")

	s, err := h.resolver.Resolve(c.Request.Context(), formID)
	if err != nil {
		h.logger.Error("Failed to resolve form schema",
			zap.String("form_id", formID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "form configuration unavailable"})
		return
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	// The posted fields use the same whitelist convention as the shareable
	// link, so they seed the model the same way.
	values := url.Values(mpForm.Value)
	defaults := h.reconciler.DeriveDefaults(values, s)
	m := form.NewModel(s, defaults, h.formOpts)

	for key, vs := range mpForm.Value {
		if sectionKey, ok := strings.CutSuffix(key, "_remark"); ok && len(vs) > 0 {
			m.SetRemark(sectionKey, vs[0])
		}
	}

	files := mpForm.File["files"]
	fieldPaths := mpForm.Value["fileFields"]
	if len(files) != len(fieldPaths) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files and fileFields must be parallel"})
		return
	}

	for i, fh := range files {
		parts := strings.SplitN(fieldPaths[i], "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed fileFields entry: " + fieldPaths[i]})
			return
		}

		if fh.Size > form.MaxFileSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": form.ErrFileTooLarge.Error(), "file": fh.Filename})
			return
		}

		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload: " + fh.Filename})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload: " + fh.Filename})
			return
		}

		af := &form.AttachedFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}

		if err := form.ValidateFile(af); err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, form.ErrFileTooLarge):
				status = http.StatusRequestEntityTooLarge
			case errors.Is(err, form.ErrUnsupportedType):
				status = http.StatusUnsupportedMediaType
			}
			c.JSON(status, gin.H{"error": err.Error(), "file": fh.Filename})
			return
		}

		if err := m.AttachFile(parts[0], parts[1], af); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": fieldPaths[i]})
			return
		}
	}

	if !m.IsReadyToSubmit() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":               "submission is not ready",
			"completed_sections":  m.Completed(),
			"applicable_sections": m.ApplicableCount(),
		})
		return
	}

	// One in-flight submission per client/period pair: a duplicate submit
	// while the first is still delivering is rejected, not queued.
	key := m.Client() + "|" + m.Period()
	if !h.acquire(key) {
		c.JSON(http.StatusConflict, gin.H{"error": "submission already in progress"})
		return
	}
	defer h.release(key)

	result, err := h.submitter.Submit(c.Request.Context(), m)
	if err != nil {
		if errors.Is(err, submission.ErrNotReady) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to process form submission"})
		return
	}

	if h.store != nil {
		record := &models.SubmissionRecord{
			Client:    m.Client(),
			Period:    m.Period(),
			FileCount: result.FileCount,
			Reference: result.Reference,
			SentAt:    time.Now(),
		}
		if err := h.store.Create(record); err != nil {
			// The bundle is already delivered; a logging gap is not a failure.
			h.logger.Error("Failed to record submission", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reference":  result.Reference,
		"file_count": result.FileCount,
	})
}

// ListSubmissions handles GET /api/submissions
func (h *Handlers) ListSubmissions(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"submissions": []*models.SubmissionRecord{}})
		return
	}

	records, err := h.store.ListRecent(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list submissions"})
		return
	}
	if records == nil {
		records = []*models.SubmissionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"submissions": records})
}

func (h *Handlers) acquire(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.inFlight[key]; busy {
		return false
	}
	h.inFlight[key] = struct{}{}
	return true
}

func (h *Handlers) release(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inFlight, key)
}
