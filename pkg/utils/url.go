package utils

import (
	"fmt"
)

// BuildFlightsURL builds the search URL for a route query. The same route
// fields always produce the same URL, so the deep link embedded in alerts
// is stable. Spaces are encoded as %20; codes and ISO dates need no other
// escaping.
func BuildFlightsURL(origin, destination, departDate, returnDate string) string {
	return fmt.Sprintf(
		"https://www.google.com/travel/flights?q=%s%%20%s%%20%s%%20%s&curr=BRL&hl=pt-BR",
		origin, destination, departDate, returnDate,
	)
}
