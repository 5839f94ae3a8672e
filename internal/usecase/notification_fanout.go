package usecase

import (
	"context"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
)

// NotificationFanout resolves the recipients for a route's owner group and
// delivers an alert message to each of them independently
type NotificationFanout struct {
	groupRepo     repository.GroupRepository
	messengerRepo repository.MessengerRepository
	logger        logger.Logger
}

// NewNotificationFanout creates a new notification fanout
func NewNotificationFanout(
	groupRepo repository.GroupRepository,
	messengerRepo repository.MessengerRepository,
	log logger.Logger,
) *NotificationFanout {
	return &NotificationFanout{
		groupRepo:     groupRepo,
		messengerRepo: messengerRepo,
		logger:        log,
	}
}

// Deliver sends the message to every member of the route's owner group and
// returns how many sends succeeded. A group that resolves to nothing falls
// back to the route's requester alone, so a decided alert is never silently
// dropped. A failed delivery to one recipient does not stop the others.
func (f *NotificationFanout) Deliver(ctx context.Context, route *entity.Route, text string) int {
	recipients, err := f.groupRepo.GetMembers(ctx, route.OwnerGroup)
	if err != nil {
		f.logger.Error("Failed to resolve recipients", "routeId", route.ID, "group", route.OwnerGroup, "error", err)
		recipients = nil
	}
	if len(recipients) == 0 {
		recipients = []string{route.RequesterID}
	}

	sent := 0
	for _, chatID := range recipients {
		if err := f.messengerRepo.Send(ctx, chatID, text); err != nil {
			f.logger.Error("Failed to deliver alert", "routeId", route.ID, "chatId", chatID, "error", err)
			continue
		}
		sent++
	}

	f.logger.Info("Alert fanned out", "routeId", route.ID, "recipients", len(recipients), "sent", sent)
	return sent
}
