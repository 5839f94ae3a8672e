package usecase

import (
	"context"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/utils"
)

// PriceReconciler compares a newly extracted price against a route's last
// known price and decides whether to notify
type PriceReconciler struct {
	routeRepo repository.RouteRepository
	logger    logger.Logger
}

// NewPriceReconciler creates a new price reconciler
func NewPriceReconciler(routeRepo repository.RouteRepository, log logger.Logger) *PriceReconciler {
	return &PriceReconciler{
		routeRepo: routeRepo,
		logger:    log,
	}
}

// Reconcile persists one successful check and returns the alert to deliver,
// or nil when the move is upward or flat.
//
// Decision table:
//   - no prior price: alert "monitor started"
//   - new < prior:    alert "price dropped by prior-new"
//   - new >= prior:   no alert, the move is tracked silently
//
// Every successful check writes a PriceObservation and updates lastPrice,
// notified or not, and both writes happen before the caller may deliver
// anything, so the persisted lastPrice always matches the reported price.
func (r *PriceReconciler) Reconcile(ctx context.Context, route *entity.Route, price float64, carrier string) (*entity.PriceAlert, error) {
	var alert *entity.PriceAlert

	if route.LastPrice == nil {
		alert = &entity.PriceAlert{
			Kind:    entity.AlertMonitorStarted,
			Price:   price,
			Carrier: carrier,
		}
	} else if price < *route.LastPrice {
		alert = &entity.PriceAlert{
			Kind:    entity.AlertPriceDrop,
			Price:   price,
			Delta:   *route.LastPrice - price,
			Carrier: carrier,
		}
	} else {
		r.logger.Debug("Price unchanged or higher", "routeId", route.ID, "price", price)
	}

	if err := r.routeRepo.WritePriceObservation(ctx, route.ID, price, time.Now()); err != nil {
		return nil, err
	}
	if err := r.routeRepo.UpdateLastPrice(ctx, route.ID, price); err != nil {
		return nil, err
	}

	if alert != nil {
		alert.URL = utils.BuildFlightsURL(route.Origin, route.Destination, route.DepartDate, route.ReturnDate)
	}
	return alert, nil
}
