package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/render"
)

// fakeSession scripts the render session per call: queues are consumed one
// entry per invocation and fall back to a zero answer when drained.
type fakeSession struct {
	navErrs []error
	waits   []render.Condition
	texts   []string

	clickResult bool
	clickErr    error

	// when gate is set, the first Navigate signals started and then
	// blocks until the gate is closed
	gate      chan struct{}
	started   chan struct{}
	startOnce sync.Once

	navCalls   int
	waitCalls  int
	readCalls  int
	clickCalls int
	closeCalls int
}

func (s *fakeSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	s.navCalls++
	if s.gate != nil {
		s.startOnce.Do(func() { close(s.started) })
		<-s.gate
	}
	if len(s.navErrs) > 0 {
		err := s.navErrs[0]
		s.navErrs = s.navErrs[1:]
		return err
	}
	return nil
}

func (s *fakeSession) WaitForAny(ctx context.Context, conds []render.Condition, timeout time.Duration) (render.Condition, error) {
	s.waitCalls++
	if len(s.waits) > 0 {
		cond := s.waits[0]
		s.waits = s.waits[1:]
		return cond, nil
	}
	return render.CondNone, nil
}

func (s *fakeSession) ReadVisibleText(ctx context.Context) (string, error) {
	s.readCalls++
	if len(s.texts) > 0 {
		text := s.texts[0]
		s.texts = s.texts[1:]
		return text, nil
	}
	return "", nil
}

func (s *fakeSession) ClickIfPresent(ctx context.Context, label string) (bool, error) {
	s.clickCalls++
	return s.clickResult, s.clickErr
}

func (s *fakeSession) Close() error {
	s.closeCalls++
	return nil
}

type fakeRenderClient struct {
	session  *fakeSession
	err      error
	sessions int
}

func (c *fakeRenderClient) NewSession(ctx context.Context) (render.Session, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.sessions++
	return c.session, nil
}

type observation struct {
	routeID string
	price   float64
}

type fakeRouteRepo struct {
	routes  []*entity.Route
	listErr error

	observations []observation
	lastPrices   map[string]float64
	writeErr     error

	// panicOn simulates an unexpected route-scoped failure
	panicOn string
}

func newFakeRouteRepo(routes ...*entity.Route) *fakeRouteRepo {
	return &fakeRouteRepo{
		routes:     routes,
		lastPrices: make(map[string]float64),
	}
}

func (r *fakeRouteRepo) ListActiveRoutes(ctx context.Context) ([]*entity.Route, error) {
	return r.routes, r.listErr
}

func (r *fakeRouteRepo) Create(ctx context.Context, route *entity.Route) error {
	r.routes = append(r.routes, route)
	return nil
}

func (r *fakeRouteRepo) FindByID(ctx context.Context, id string) (*entity.Route, error) {
	for _, route := range r.routes {
		if route.ID == id {
			return route, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRouteRepo) UpdateLastPrice(ctx context.Context, routeID string, price float64) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.lastPrices[routeID] = price
	return nil
}

func (r *fakeRouteRepo) WritePriceObservation(ctx context.Context, routeID string, price float64, at time.Time) error {
	if routeID == r.panicOn {
		panic("fake storage blew up")
	}
	if r.writeErr != nil {
		return r.writeErr
	}
	r.observations = append(r.observations, observation{routeID: routeID, price: price})
	return nil
}

func (r *fakeRouteRepo) GetHistory(ctx context.Context, routeID string, since time.Time) ([]*entity.PriceObservation, error) {
	var history []*entity.PriceObservation
	for _, obs := range r.observations {
		if obs.routeID == routeID {
			history = append(history, &entity.PriceObservation{RouteID: obs.routeID, Price: obs.price})
		}
	}
	return history, nil
}

func (r *fakeRouteRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeGroupRepo struct {
	members map[string][]string
	err     error
}

func (r *fakeGroupRepo) GetMembers(ctx context.Context, groupID string) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.members[groupID], nil
}

type sentMessage struct {
	chatID string
	text   string
}

type fakeMessengerRepo struct {
	sent    []sentMessage
	failFor map[string]error
}

func (r *fakeMessengerRepo) Send(ctx context.Context, chatID string, text string) error {
	if err, ok := r.failFor[chatID]; ok {
		return err
	}
	r.sent = append(r.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func testRoute(id string) *entity.Route {
	return &entity.Route{
		ID:          id,
		Origin:      "GRU",
		Destination: "MIA",
		DepartDate:  "2026-10-10",
		ReturnDate:  "2026-10-17",
		Active:      true,
		OwnerGroup:  "group-1",
		RequesterID: "chat-owner",
	}
}

func testFetcherConfig() FetcherConfig {
	return FetcherConfig{
		NavigationTimeout:  time.Millisecond,
		ContentWaitTimeout: time.Millisecond,
		RecoverySettle:     time.Millisecond,
		RouteSettle:        time.Millisecond,
	}
}
