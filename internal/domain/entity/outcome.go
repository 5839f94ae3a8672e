package entity

// OutcomeKind classifies the result of checking a single route
type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "SUCCESS"
	OutcomeExhausted       OutcomeKind = "EXHAUSTED"
	OutcomeNavigationError OutcomeKind = "NAVIGATION_ERROR"
)

// FetchOutcome is the transient per-route result of the fetch attempt loop.
// It is never persisted as its own entity; success folds into a
// PriceObservation plus notification side effects.
type FetchOutcome struct {
	Kind     OutcomeKind
	Price    float64
	Carrier  string
	Attempts int
}
