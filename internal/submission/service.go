package submission

import (
	"context"
	"fmt"

	"github.com/garyjia/doc-request/internal/form"
	"go.uber.org/zap"
)

// Deliverer is the external collaborator that bundles the payload and
// dispatches it. It returns a reference identifying the delivered bundle.
type Deliverer interface {
	Deliver(ctx context.Context, payload *Payload) (string, error)
}

// Result describes a completed submission.
type Result struct {
	Reference string
	FileCount int
}

// Service gates, assembles and delivers submissions.
type Service struct {
	deliverer Deliverer
	opts      Options
	logger    *zap.Logger
}

// NewService creates a submission service.
func NewService(deliverer Deliverer, opts Options, logger *zap.Logger) *Service {
	return &Service{
		deliverer: deliverer,
		opts:      opts,
		logger:    logger,
	}
}

// Submit delivers the model's files as one atomic operation: either the
// whole bundle goes out or the caller gets a single DeliveryFailed outcome.
// There is no retry here — a retry is the user resubmitting, and the model
// keeps every attached file either way.
func (s *Service) Submit(ctx context.Context, m *form.Model) (*Result, error) {
	if !m.IsReadyToSubmit() {
		return nil, ErrNotReady
	}

	payload := Assemble(m, s.opts)

	s.logger.Info("Submitting document bundle",
		zap.String("client", payload.Client),
		zap.String("period", payload.Period),
		zap.Int("entry_count", len(payload.Entries)))

	ref, err := s.deliverer.Deliver(ctx, payload)
	if err != nil {
		s.logger.Error("Delivery failed",
			zap.String("client", payload.Client),
			zap.String("period", payload.Period),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("Document bundle delivered",
		zap.String("client", payload.Client),
		zap.String("reference", ref))

	return &Result{Reference: ref, FileCount: len(payload.Entries)}, nil
}
