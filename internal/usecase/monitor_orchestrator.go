package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/render"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"
	"farewatch-service/templates"
)

// ErrCycleInProgress is returned when a cycle is invoked while another one
// is still running
var ErrCycleInProgress = errors.New("monitoring cycle already in progress")

// MonitorOrchestrator runs one monitoring cycle over all active routes
type MonitorOrchestrator struct {
	routeRepo    repository.RouteRepository
	renderClient render.Client
	fetcher      *FareFetcher
	reconciler   *PriceReconciler
	fanout       *NotificationFanout
	metrics      *metrics.Metrics
	logger       logger.Logger

	mu sync.Mutex
}

// NewMonitorOrchestrator creates a new monitor orchestrator
func NewMonitorOrchestrator(
	routeRepo repository.RouteRepository,
	renderClient render.Client,
	fetcher *FareFetcher,
	reconciler *PriceReconciler,
	fanout *NotificationFanout,
	m *metrics.Metrics,
	log logger.Logger,
) *MonitorOrchestrator {
	return &MonitorOrchestrator{
		routeRepo:    routeRepo,
		renderClient: renderClient,
		fetcher:      fetcher,
		reconciler:   reconciler,
		fanout:       fanout,
		metrics:      m,
		logger:       log,
	}
}

// RunCycle checks every active route once, strictly in sequence on a single
// render session. Overlapping invocations are rejected with
// ErrCycleInProgress so a manual trigger cannot interleave with a scheduled
// one on the shared session. Only listing routes and acquiring the session
// are cycle-fatal; everything scoped to one route is contained there.
func (o *MonitorOrchestrator) RunCycle(ctx context.Context) error {
	if !o.mu.TryLock() {
		return ErrCycleInProgress
	}
	defer o.mu.Unlock()

	started := time.Now()
	o.logger.Info("Starting monitoring cycle")

	routes, err := o.routeRepo.ListActiveRoutes(ctx)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("list_routes").Inc()
		return fmt.Errorf("failed to list active routes: %w", err)
	}
	if len(routes) == 0 {
		o.logger.Info("No active routes, nothing to check")
		return nil
	}

	session, err := o.renderClient.NewSession(ctx)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("render_session").Inc()
		return fmt.Errorf("failed to acquire render session: %w", err)
	}
	// Released unconditionally; already-closed is not an error.
	defer session.Close()

	for _, route := range routes {
		if err := o.checkRoute(ctx, session, route); err != nil {
			o.logger.Error("Route check failed", "routeId", route.ID, "error", err)
			o.metrics.ErrorsCount.WithLabelValues("route_check").Inc()
		}
	}

	o.metrics.CycleDuration.Observe(time.Since(started).Seconds())
	o.logger.Info("Monitoring cycle finished", "routes", len(routes), "elapsed", time.Since(started).String())
	return nil
}

// checkRoute drives a single route end to end. Anything unexpected raised
// by one route, panics included, is converted to an error here so the loop
// continues with the next route.
func (o *MonitorOrchestrator) checkRoute(ctx context.Context, session render.Session, route *entity.Route) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("route check panicked: %v", r)
		}
	}()

	o.logger.Info("Checking route",
		"routeId", route.ID,
		"origin", route.Origin,
		"destination", route.Destination)
	o.metrics.RoutesChecked.Inc()

	outcome, err := o.fetcher.Fetch(ctx, session, route)
	if err != nil {
		return err
	}

	switch outcome.Kind {
	case entity.OutcomeSuccess:
	case entity.OutcomeExhausted:
		// The route is skipped for this cycle; no state is mutated.
		o.logger.Warn("Attempt budget exhausted", "routeId", route.ID, "attempts", outcome.Attempts)
		return nil
	default:
		return nil
	}

	o.metrics.FaresExtracted.Inc()
	o.logger.Info("Fare extracted",
		"routeId", route.ID,
		"price", outcome.Price,
		"carrier", outcome.Carrier,
		"attempts", outcome.Attempts)

	alert, err := o.reconciler.Reconcile(ctx, route, outcome.Price, outcome.Carrier)
	if err != nil {
		return fmt.Errorf("failed to persist price: %w", err)
	}
	if alert == nil {
		return nil
	}

	text := templates.BuildPriceAlert(route, alert)
	sent := o.fanout.Deliver(ctx, route, text)
	o.metrics.AlertsSent.Add(float64(sent))
	return nil
}
