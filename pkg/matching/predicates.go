package matching

// IsLimitMatched reports whether a resting limit-bearing order at price
// would match the current market: a buy matches once the ask has fallen to
// or through it, a sell once the bid has risen to or through it. It returns
// false — never errors — when the opposite side has no market yet: the
// uninitialized flag is exactly what distinguishes "no market" from "market
// at zero."
func (c *MatchingCore) IsLimitMatched(side Side, price Price) bool {
	switch side {
	case Buy:
		if !c.askInit {
			return false
		}
		return c.askRaw <= price.Raw
	case Sell:
		if !c.bidInit {
			return false
		}
		return c.bidRaw >= price.Raw
	default:
		panic(invalidSide(side))
	}
}

// IsStopTriggered reports whether a stop order at trigger would activate: a
// buy stop fires once the ask has risen up into it, a sell stop once the bid
// has fallen down into it.
func (c *MatchingCore) IsStopTriggered(side Side, trigger Price) bool {
	switch side {
	case Buy:
		if !c.askInit {
			return false
		}
		return c.askRaw >= trigger.Raw
	case Sell:
		if !c.bidInit {
			return false
		}
		return c.bidRaw <= trigger.Raw
	default:
		panic(invalidSide(side))
	}
}

// IsTouchTriggered reports whether an if-touched order at trigger would
// activate. It mirrors IsStopTriggered: a buy if-touched fires once the ask
// has fallen down to it, a sell if-touched once the bid has risen up to it.
func (c *MatchingCore) IsTouchTriggered(side Side, trigger Price) bool {
	switch side {
	case Buy:
		if !c.askInit {
			return false
		}
		return c.askRaw <= trigger.Raw
	case Sell:
		if !c.bidInit {
			return false
		}
		return c.bidRaw >= trigger.Raw
	default:
		panic(invalidSide(side))
	}
}

// liquiditySideOnTrigger determines MAKER vs TAKER for a conditional order
// at the instant it triggers. An order that arrives already in range
// (initial) always crosses on arrival and is TAKER. Otherwise an order whose
// limit sits on the passive side of its own trigger — a buy with
// trigger > limit, a sell with trigger < limit — rests through the trigger
// as MAKER; any other order is TAKER.
func liquiditySideOnTrigger(initial bool, side Side, price, triggerPrice Price) LiquiditySide {
	if initial {
		return Taker
	}
	switch side {
	case Buy:
		if triggerPrice.Raw > price.Raw {
			return Maker
		}
	case Sell:
		if triggerPrice.Raw < price.Raw {
			return Maker
		}
	}
	return Taker
}
