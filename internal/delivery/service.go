package delivery

import (
	"context"
	"fmt"

	"github.com/garyjia/doc-request/internal/submission"
	"go.uber.org/zap"
)

// Service implements submission.Deliverer: it bundles the payload into a zip
// and emails it to the configured back-office address in one shot.
type Service struct {
	packager *Packager
	sender   MailSender
	logger   *zap.Logger
}

// NewService creates a delivery service
func NewService(packager *Packager, sender MailSender, logger *zap.Logger) *Service {
	return &Service{
		packager: packager,
		sender:   sender,
		logger:   logger,
	}
}

// Deliver bundles and dispatches the payload, returning the bundle name as
// the delivery reference. Either both steps succeed or the caller gets one
// error; there is no partial outcome to report.
func (d *Service) Deliver(ctx context.Context, payload *submission.Payload) (string, error) {
	archive, err := d.packager.Build(payload.Entries)
	if err != nil {
		return "", fmt.Errorf("failed to build bundle: %w", err)
	}

	bundleName := BundleName(payload.Client, payload.Period)
	subject := fmt.Sprintf("Form Submission - %s - %s", payload.Client, payload.Period)
	body := d.buildBody(payload)

	if err := d.sender.Send(ctx, subject, body, bundleName, archive); err != nil {
		return "", err
	}

	d.logger.Info("Submission delivered",
		zap.String("client", payload.Client),
		zap.String("period", payload.Period),
		zap.String("bundle", bundleName))

	return bundleName, nil
}

// buildBody builds the notification body listing the bundle contents.
func (d *Service) buildBody(payload *submission.Payload) string {
	body := fmt.Sprintf("New form submission from %s for period %s\n",
		payload.Client, payload.Period)

	if len(payload.Entries) > 0 {
		body += "\nDocuments:\n"
		for i, entry := range payload.Entries {
			body += fmt.Sprintf("%d. %s/%s\n", i+1, entry.Path, entry.File.Name)
		}
	}

	return body
}
