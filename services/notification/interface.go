package notification

import (
	"context"
	"fmt"

	providerRepo "carematch/database/repository/provider"
	"carematch/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService delivers dispatch notices to providers. It is a
// fire-and-forget collaborator: callers enqueue, the worker delivers, and
// delivery failures never propagate into dispatch results.
type NotificationService interface {
	NotifyProvider(ctx context.Context, providerID, title, body string, data map[string]string) error
}

// DefaultNotificationService resolves the provider and pushes over FCM,
// with email as a secondary channel when SMTP is configured.
type DefaultNotificationService struct {
	Providers providerRepo.ProviderRepository
	Mailer    *Mailer
}

func (s *DefaultNotificationService) NotifyProvider(ctx context.Context, providerID, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	p, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("NotifyProvider: could not load provider %s: %w", providerID, err)
	}
	if p == nil {
		return fmt.Errorf("NotifyProvider: provider %s not found", providerID)
	}

	delivered := false
	if utils.FCMClient != nil && p.FCMToken != "" {
		msg := &messaging.Message{
			Token: p.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			logger.Warn("push delivery failed",
				zap.String("providerId", providerID), zap.Error(err))
		} else {
			delivered = true
		}
	}

	if s.Mailer != nil && p.Email != "" {
		if err := s.Mailer.Send(p.Email, title, body); err != nil {
			logger.Warn("email delivery failed",
				zap.String("providerId", providerID), zap.Error(err))
		} else {
			delivered = true
		}
	}

	if !delivered {
		return fmt.Errorf("NotifyProvider: no channel reached provider %s", providerID)
	}
	return nil
}
