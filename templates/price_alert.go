package templates

import (
	"fmt"

	"farewatch-service/internal/domain/entity"
)

const priceAlertTemplate = "%s\n\n✈️ %s ➡️ %s\n📅 %s to %s\n💰 *R$ %.2f*\n🏢 %s\n🔗 [View on Google](%s)"

const monitorStartedHeadline = "🆕 *Monitor started*"

// BuildPriceAlert renders the Markdown alert message for a route. The
// message carries everything a recipient needs to act on it: both dates,
// the formatted price, the carrier label and the deep link back to the
// source query.
func BuildPriceAlert(route *entity.Route, alert *entity.PriceAlert) string {
	return fmt.Sprintf(priceAlertTemplate,
		headline(alert),
		route.Origin,
		route.Destination,
		route.DepartDate,
		route.ReturnDate,
		alert.Price,
		alert.Carrier,
		alert.URL,
	)
}

func headline(alert *entity.PriceAlert) string {
	if alert.Kind == entity.AlertPriceDrop {
		return fmt.Sprintf("📉 *Price dropped! R$ %.2f less*", alert.Delta)
	}
	return monitorStartedHeadline
}
