package usecase

import (
	"context"
	"errors"
	"testing"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

func priceOf(v float64) *float64 {
	return &v
}

func TestReconcileFirstObservation(t *testing.T) {
	repo := newFakeRouteRepo()
	reconciler := NewPriceReconciler(repo, logger.NewNop())

	route := testRoute("r1")
	alert, err := reconciler.Reconcile(context.Background(), route, 1500.00, "Acme Air")
	require.NoError(t, err)
	require.NotNil(t, alert)
	require.Equal(t, entity.AlertMonitorStarted, alert.Kind)
	require.Equal(t, 1500.00, alert.Price)
	require.Equal(t, "Acme Air", alert.Carrier)
	require.Contains(t, alert.URL, "GRU%20MIA%202026-10-10%202026-10-17")

	require.Equal(t, []observation{{routeID: "r1", price: 1500.00}}, repo.observations)
	require.Equal(t, 1500.00, repo.lastPrices["r1"])
}

func TestReconcilePriceDrop(t *testing.T) {
	repo := newFakeRouteRepo()
	reconciler := NewPriceReconciler(repo, logger.NewNop())

	route := testRoute("r1")
	route.LastPrice = priceOf(1000)

	alert, err := reconciler.Reconcile(context.Background(), route, 900, "Acme Air")
	require.NoError(t, err)
	require.NotNil(t, alert)
	require.Equal(t, entity.AlertPriceDrop, alert.Kind)
	require.Equal(t, 900.00, alert.Price)
	require.Equal(t, 100.00, alert.Delta)
	require.Equal(t, 900.00, repo.lastPrices["r1"])
}

func TestReconcilePriceRiseIsSilent(t *testing.T) {
	repo := newFakeRouteRepo()
	reconciler := NewPriceReconciler(repo, logger.NewNop())

	route := testRoute("r1")
	route.LastPrice = priceOf(900)

	alert, err := reconciler.Reconcile(context.Background(), route, 1000, "Acme Air")
	require.NoError(t, err)
	require.Nil(t, alert)

	// The upward move is still tracked: history gets a sample and
	// lastPrice follows the observation.
	require.Equal(t, []observation{{routeID: "r1", price: 1000}}, repo.observations)
	require.Equal(t, 1000.00, repo.lastPrices["r1"])
}

func TestReconcileEqualPriceIsSilent(t *testing.T) {
	repo := newFakeRouteRepo()
	reconciler := NewPriceReconciler(repo, logger.NewNop())

	route := testRoute("r1")
	route.LastPrice = priceOf(1000)

	alert, err := reconciler.Reconcile(context.Background(), route, 1000, "Acme Air")
	require.NoError(t, err)
	require.Nil(t, alert)
	require.Len(t, repo.observations, 1)
}

func TestReconcileWriteFailureSuppressesAlert(t *testing.T) {
	repo := newFakeRouteRepo()
	repo.writeErr = errors.New("storage down")
	reconciler := NewPriceReconciler(repo, logger.NewNop())

	alert, err := reconciler.Reconcile(context.Background(), testRoute("r1"), 1500, "Acme Air")
	require.Error(t, err)
	require.Nil(t, alert)
}
