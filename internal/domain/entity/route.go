// internal/domain/entity/route.go
package entity

import (
	"time"
)

// Route is a monitored origin/destination/date itinerary
type Route struct {
	ID          string     `bson:"_id"` // {origin}_{destination}_{millis} - assigned at creation, never reused
	Origin      string     `bson:"origin"`
	Destination string     `bson:"destination"`
	DepartDate  string     `bson:"departDate"` // YYYY-MM-DD
	ReturnDate  string     `bson:"returnDate"` // YYYY-MM-DD
	Active      bool       `bson:"active"`
	OwnerGroup  string     `bson:"ownerGroup"`
	RequesterID string     `bson:"requesterId"` // chat id that registered the route
	LastPrice   *float64   `bson:"lastPrice,omitempty"` // nil means never checked
	LastCheck   *time.Time `bson:"lastCheck,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

// PriceObservation is one fare sample for a route, append-only
type PriceObservation struct {
	ID        string    `bson:"_id,omitempty"`
	RouteID   string    `bson:"routeId"`
	Price     float64   `bson:"price"`
	Timestamp time.Time `bson:"timestamp"`
}
