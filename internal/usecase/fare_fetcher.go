package usecase

import (
	"context"
	"errors"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/render"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/utils"
)

// maxAttempts is the fixed attempt budget per route
const maxAttempts = 3

// retryLabel is the text on the error page's refresh affordance
const retryLabel = "Atualizar"

// FetcherConfig bounds every suspension point of the attempt loop so a
// single unresponsive target cannot stall a cycle indefinitely
type FetcherConfig struct {
	NavigationTimeout  time.Duration
	ContentWaitTimeout time.Duration
	RecoverySettle     time.Duration // pause after clicking the refresh affordance
	RouteSettle        time.Duration // pause after a successful extraction
}

// FareFetcher obtains one successful fare extraction for a single route,
// tolerating the target's transient error page within the attempt budget
type FareFetcher struct {
	parser *utils.FareParser
	config FetcherConfig
	logger logger.Logger
}

// NewFareFetcher creates a new fare fetcher
func NewFareFetcher(parser *utils.FareParser, config FetcherConfig, log logger.Logger) *FareFetcher {
	return &FareFetcher{
		parser: parser,
		config: config,
		logger: log,
	}
}

// Fetch drives the attempt loop for one route on the given session.
//
// Each attempt navigates (after the first, a re-navigation), waits for the
// results card or the error banner, and tries extraction. The error banner
// triggers one best-effort recovery click before the next attempt. The loop
// stops at the first non-absent extraction; a wait that expires with
// nothing observed still attempts extraction, because an absent fare is a
// valid outcome, not a retry trigger by itself.
//
// A non-nil error is only returned for unexpected render failures; those
// map to the NavigationError outcome.
func (f *FareFetcher) Fetch(ctx context.Context, session render.Session, route *entity.Route) (*entity.FetchOutcome, error) {
	url := utils.BuildFlightsURL(route.Origin, route.Destination, route.DepartDate, route.ReturnDate)

	if err := session.Navigate(ctx, url, f.config.NavigationTimeout); err != nil {
		if !errors.Is(err, render.ErrNavigationTimeout) {
			return &entity.FetchOutcome{Kind: entity.OutcomeNavigationError}, err
		}
		// A navigation timeout is not fatal; the wait below decides.
		f.logger.Warn("Navigation timed out", "routeId", route.ID)
	}

	attempts := 0
	for attempts < maxAttempts {
		if attempts > 0 {
			f.logger.Info("Recovery attempt", "routeId", route.ID, "attempt", attempts+1)
			if err := session.Navigate(ctx, url, f.config.NavigationTimeout); err != nil && !errors.Is(err, render.ErrNavigationTimeout) {
				return &entity.FetchOutcome{Kind: entity.OutcomeNavigationError, Attempts: attempts + 1}, err
			}
		}

		cond, err := session.WaitForAny(ctx,
			[]render.Condition{render.CondResultsCard, render.CondErrorBanner},
			f.config.ContentWaitTimeout)
		if err != nil {
			return &entity.FetchOutcome{Kind: entity.OutcomeNavigationError, Attempts: attempts + 1}, err
		}

		if cond == render.CondErrorBanner {
			f.logger.Warn("Target error page detected", "routeId", route.ID)
			clicked, err := session.ClickIfPresent(ctx, retryLabel)
			if err != nil {
				return &entity.FetchOutcome{Kind: entity.OutcomeNavigationError, Attempts: attempts + 1}, err
			}
			if clicked {
				time.Sleep(f.config.RecoverySettle)
			}
			attempts++
			continue
		}

		text, err := session.ReadVisibleText(ctx)
		if err != nil {
			return &entity.FetchOutcome{Kind: entity.OutcomeNavigationError, Attempts: attempts + 1}, err
		}

		if quote := f.parser.ExtractFare(text); quote != nil {
			time.Sleep(f.config.RouteSettle)
			return &entity.FetchOutcome{
				Kind:     entity.OutcomeSuccess,
				Price:    quote.Price,
				Carrier:  quote.Carrier,
				Attempts: attempts + 1,
			}, nil
		}

		f.logger.Warn("No fare found on results surface", "routeId", route.ID, "attempt", attempts+1)
		attempts++
	}

	return &entity.FetchOutcome{Kind: entity.OutcomeExhausted, Attempts: attempts}, nil
}
