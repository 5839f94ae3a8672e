package repository

import (
	"context"
)

// GroupRepository resolves recipient chat ids for an owner group
type GroupRepository interface {
	GetMembers(ctx context.Context, groupID string) ([]string, error)
}
