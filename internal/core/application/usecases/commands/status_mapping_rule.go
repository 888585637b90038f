package commands

import "fulfillment/internal/core/domain/model/order"

// StatusMapping advances an order from From to To when the courier reports Courier.
type StatusMapping struct {
	From    order.Status
	Courier order.DeliveryStatus
	To      order.Status
}

// StatusMappingRule is the explicit list of courier-driven order transitions.
// An empty rule never advances anything.
type StatusMappingRule []StatusMapping

// DefaultStatusMappingRule maps pickup to OUT_FOR_DELIVERY and drop-off to DELIVERED.
func DefaultStatusMappingRule() StatusMappingRule {
	return StatusMappingRule{
		{From: order.Ready, Courier: order.DeliveryPickedUp, To: order.OutForDelivery},
		{From: order.OutForDelivery, Courier: order.DeliveryDelivered, To: order.Delivered},
	}
}

// Target returns the order status to advance to, if any mapping applies.
func (r StatusMappingRule) Target(current order.Status, courier order.DeliveryStatus) (order.Status, bool) {
	for _, m := range r {
		if m.From == current && m.Courier == courier {
			return m.To, true
		}
	}
	return order.Unknown, false
}
