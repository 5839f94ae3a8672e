package entity

// AlertKind identifies why a route should notify
type AlertKind string

const (
	AlertMonitorStarted AlertKind = "monitor_started"
	AlertPriceDrop      AlertKind = "price_drop"
)

// PriceAlert is a pending notification decided by the reconciler.
// Delta is only meaningful for AlertPriceDrop.
type PriceAlert struct {
	Kind    AlertKind
	Price   float64
	Delta   float64
	Carrier string
	URL     string
}
