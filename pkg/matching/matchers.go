package matching

// matchLimitOrder handles LIMIT and MARKET_TO_LIMIT orders: a pure resting
// limit, filled as MAKER the moment the market reaches it. Both order types
// share this matcher because MARKET_TO_LIMIT only differs in how its price
// was derived at order-entry time — once resting, it behaves exactly like a
// limit order.
func (c *MatchingCore) matchLimitOrder(order Order) {
	price := order.Price()
	if c.IsLimitMatched(order.Side(), price) {
		order.SetLiquiditySide(Maker)
		c.callbacks.FillLimitOrder(order)
	}
}

// matchStopMarketOrder handles STOP_MARKET and TRAILING_STOP_MARKET orders.
// There is no separate trigger callback: the fill sink is the sole observer
// of activation, since a triggered stop-market has nothing left to do but
// fill.
func (c *MatchingCore) matchStopMarketOrder(order Order) {
	trigger := order.TriggerPrice()
	if c.IsStopTriggered(order.Side(), trigger) {
		order.SetTriggeredPrice(trigger)
		c.callbacks.FillMarketOrder(order)
	}
}

// matchStopLimitOrder handles STOP_LIMIT and TRAILING_STOP_LIMIT orders. An
// already-triggered order behaves exactly like a resting limit order. An
// order that triggers this call may, in the same call, immediately cross its
// own limit — the trigger took the market straight through the limit price
// — in which case the liquidity side set at trigger time is overwritten to
// TAKER before the limit fill fires.
func (c *MatchingCore) matchStopLimitOrder(order Order, initial bool) {
	if order.IsTriggered() {
		c.matchLimitOrder(order)
		return
	}

	trigger := order.TriggerPrice()
	if !c.IsStopTriggered(order.Side(), trigger) {
		return
	}

	price := order.Price()
	order.SetTriggeredPrice(trigger)
	order.SetLiquiditySide(liquiditySideOnTrigger(initial, order.Side(), price, trigger))
	c.callbacks.TriggerStopOrder(order)

	if c.IsLimitMatched(order.Side(), price) {
		order.SetLiquiditySide(Taker)
		c.callbacks.FillLimitOrder(order)
	}
}

// matchMarketIfTouchedOrder handles MARKET_IF_TOUCHED orders: the touch
// analogue of matchStopMarketOrder, with IsTouchTriggered in place of
// IsStopTriggered.
func (c *MatchingCore) matchMarketIfTouchedOrder(order Order) {
	trigger := order.TriggerPrice()
	if c.IsTouchTriggered(order.Side(), trigger) {
		order.SetTriggeredPrice(trigger)
		c.callbacks.FillMarketOrder(order)
	}
}

// matchLimitIfTouchedOrder handles LIMIT_IF_TOUCHED orders: the touch
// analogue of matchStopLimitOrder, with one documented asymmetry. On the
// initial sweep (initial == true) the triggered price is deliberately left
// unset: the touch condition may already hold against pre-existing state at
// order-entry time, and the caller — not this call — owns fixing the
// triggered price in that case. Every subsequent sweep sets it normally.
func (c *MatchingCore) matchLimitIfTouchedOrder(order Order, initial bool) {
	if order.IsTriggered() {
		c.matchLimitOrder(order)
		return
	}

	trigger := order.TriggerPrice()
	if !c.IsTouchTriggered(order.Side(), trigger) {
		return
	}

	if !initial {
		order.SetTriggeredPrice(trigger)
	}

	price := order.Price()
	order.SetLiquiditySide(liquiditySideOnTrigger(initial, order.Side(), price, trigger))
	c.callbacks.TriggerStopOrder(order)

	if c.IsLimitMatched(order.Side(), price) {
		order.SetLiquiditySide(Taker)
		c.callbacks.FillLimitOrder(order)
	}
}

// MatchOrder dispatches a single order to its type's matcher. initial marks
// the first sweep an order is subjected to (typically right after AddOrder);
// it only affects matchStopLimitOrder/matchLimitIfTouchedOrder's liquidity-
// side and triggered-price handling. Market orders have no matcher — the
// core does not rest or trigger market orders — and return
// InvalidOrderTypeError.
func (c *MatchingCore) MatchOrder(order Order, initial bool) error {
	switch order.OrderType() {
	case Limit, MarketToLimit:
		c.matchLimitOrder(order)
	case StopLimit, TrailingStopLimit:
		c.matchStopLimitOrder(order, initial)
	case StopMarket, TrailingStopMarket:
		c.matchStopMarketOrder(order)
	case LimitIfTouched:
		c.matchLimitIfTouchedOrder(order, initial)
	case MarketIfTouched:
		c.matchMarketIfTouchedOrder(order)
	default:
		return &InvalidOrderTypeError{OrderType: order.OrderType()}
	}
	return nil
}

// Iterate sweeps every working order against the current market. It takes
// its snapshot (bid list then ask list, in priority order) at entry, so
// orders added by a callback mid-sweep are not matched this pass, and orders
// closed by a callback mid-sweep are skipped via the IsClosed check rather
// than removed from the snapshot. timestampNs is passed through for
// callback use only — the core itself never consults wall-clock time.
func (c *MatchingCore) Iterate(timestampNs int64) error {
	c.lastIterateNs = timestampNs

	snapshot := make([]Order, 0, len(c.ordersBid)+len(c.ordersAsk))
	snapshot = append(snapshot, c.ordersBid...)
	snapshot = append(snapshot, c.ordersAsk...)

	for _, order := range snapshot {
		if order.IsClosed() {
			continue
		}
		if err := c.MatchOrder(order, false); err != nil {
			return err
		}
	}
	return nil
}
