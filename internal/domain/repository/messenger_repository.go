package repository

import (
	"context"
)

// MessengerRepository defines the interface for delivering alert messages.
// Delivery is per-recipient and best-effort; a failed send returns an error
// without affecting other recipients.
type MessengerRepository interface {
	Send(ctx context.Context, chatID string, text string) error
}
