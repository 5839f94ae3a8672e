package repository

import (
	"context"
	"time"

	"farewatch-service/internal/domain/entity"
)

// RouteRepository defines the interface for route storage operations
type RouteRepository interface {
	ListActiveRoutes(ctx context.Context) ([]*entity.Route, error)
	Create(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, id string) (*entity.Route, error)
	UpdateLastPrice(ctx context.Context, routeID string, price float64) error
	WritePriceObservation(ctx context.Context, routeID string, price float64, at time.Time) error
	GetHistory(ctx context.Context, routeID string, since time.Time) ([]*entity.PriceObservation, error)
	Delete(ctx context.Context, id string) error
}
