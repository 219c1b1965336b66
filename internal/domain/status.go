package domain

// StockOp is the inventory adjustment a status transition requires for every
// line item of the order.
type StockOp int

const (
	StockNone StockOp = iota
	StockDecrement
	StockIncrement
)

var orderStatuses = map[OrderStatus]bool{
	StatusPending:   true,
	StatusShipping:  true,
	StatusDelivered: true,
	StatusCancelled: true,
	StatusReturning: true,
	StatusReturned:  true,
}

// ValidStatus reports whether s is one of the fixed fulfillment states.
func ValidStatus(s OrderStatus) bool {
	return orderStatuses[s]
}

// StockEffect returns the inventory adjustment for the transition from -> to.
// The policy depends only on the pair of states, not on how the order reached
// the current state:
//
//   - entering shipping from anything except shipping/delivered decrements,
//     since stock is reserved at dispatch rather than at placement;
//   - shipping -> delivered is a no-op (already decremented);
//   - entering delivered directly (without passing shipping) decrements;
//   - entering cancelled or returned from anything except cancelled/returned
//     increments, releasing the reservation;
//   - everything else, including entering returning, leaves stock alone.
//
// The release on entering cancelled/returned is unconditional: cancelling a
// still-pending order credits stock that was never decremented. The storefront
// has always reconciled this way and downstream stock counts assume it, so the
// over-credit is preserved deliberately.
func StockEffect(from, to OrderStatus) StockOp {
	switch {
	case to == StatusShipping && from != StatusShipping && from != StatusDelivered:
		return StockDecrement
	case to == StatusDelivered && from == StatusShipping:
		return StockNone
	case to == StatusDelivered && from != StatusDelivered:
		return StockDecrement
	case (to == StatusCancelled || to == StatusReturned) &&
		from != StatusCancelled && from != StatusReturned:
		return StockIncrement
	default:
		return StockNone
	}
}
