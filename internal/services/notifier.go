package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/platform/sendgrid"
)

// Notifier sends purchaser-facing email. Every call is best-effort from the
// caller's point of view: activation and purchase outcomes never depend on
// delivery.
type Notifier interface {
	SendActivationConfirmation(ctx context.Context, email, code string) error
	SendPurchaseCodes(ctx context.Context, email string, codes []string, orderID string) error
}

type notifier struct {
	log  *logger.Logger
	mail sendgrid.Client
}

// NewNotifier wraps the mail client. A nil client yields a notifier that only
// logs, for deployments without outbound email.
func NewNotifier(log *logger.Logger, mail sendgrid.Client) Notifier {
	return &notifier{log: log.With("service", "Notifier"), mail: mail}
}

func (n *notifier) SendActivationConfirmation(ctx context.Context, email, code string) error {
	if n.mail == nil {
		n.log.Info("Mail client not configured, skipping activation confirmation", "to_email", email)
		return nil
	}
	_, err := n.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: email}},
		Subject: "Your PuzLabu activation",
		Text: fmt.Sprintf(
			"Your activation code %s was just used to unlock PuzLabu on a new device.\n\n"+
				"If this wasn't you, reply to this email.\n", code),
	})
	return err
}

func (n *notifier) SendPurchaseCodes(ctx context.Context, email string, codes []string, orderID string) error {
	if n.mail == nil {
		n.log.Info("Mail client not configured, skipping purchase codes email", "to_email", email)
		return nil
	}
	_, err := n.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: email}},
		Subject: "Your PuzLabu activation codes",
		Text: fmt.Sprintf(
			"Thanks for your purchase (order %s).\n\n"+
				"Activation codes:\n%s\n\n"+
				"Each code unlocks the full puzzle set on up to %d devices.\n",
			orderID, strings.Join(codes, "\n"), domain.MaxDevices),
	})
	return err
}
