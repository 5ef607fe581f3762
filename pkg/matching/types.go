// Package matching implements the per-instrument order matching core: given
// an instrument's current top-of-book (bid/ask) and last-traded price, it
// decides when resting orders of various types trigger or fill. The package
// owns no venue, account, or position state — it observes and mutates the
// order fields documented below and delegates every effect to three injected
// callbacks.
package matching

import "github.com/shopspring/decimal"

// Side is an order's resting side. It is immutable for an order's lifetime.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// OrderType is one of the eight order-type families the core understands.
// Market is accepted by the enum but rejected by MatchOrder — the core has no
// matcher for it, since a market order has nothing to trigger or rest on.
type OrderType int

const (
	Limit OrderType = iota
	MarketToLimit
	StopMarket
	StopLimit
	MarketIfTouched
	LimitIfTouched
	TrailingStopMarket
	TrailingStopLimit
	Market
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "limit"
	case MarketToLimit:
		return "market_to_limit"
	case StopMarket:
		return "stop_market"
	case StopLimit:
		return "stop_limit"
	case MarketIfTouched:
		return "market_if_touched"
	case LimitIfTouched:
		return "limit_if_touched"
	case TrailingStopMarket:
		return "trailing_stop_market"
	case TrailingStopLimit:
		return "trailing_stop_limit"
	case Market:
		return "market"
	default:
		return "unknown"
	}
}

// LiquiditySide records whether a fill provided (Maker) or removed (Taker)
// liquidity. The core sets this on the order just before invoking a fill
// callback.
type LiquiditySide int

const (
	Maker LiquiditySide = iota
	Taker
)

func (l LiquiditySide) String() string {
	switch l {
	case Maker:
		return "maker"
	case Taker:
		return "taker"
	default:
		return "unknown"
	}
}

// Instrument exposes the immutable metadata the core needs about the
// instrument it is matching. Everything else about an instrument — its
// symbol, its venue, its contract spec — lives outside the core.
type Instrument interface {
	PricePrecision() uint32
}

// Price is a fixed-point decimal: a signed raw integer scaled by the
// instrument's precision. All matching comparisons use Raw directly; Decimal
// exists only so logging and harness code can render a human price, never on
// the hot comparison path.
type Price struct {
	Raw       int64
	Precision uint32
}

// Decimal renders the price as a decimal.Decimal for display. It is never
// consulted by a predicate.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(p.Raw, -int32(p.Precision))
}

func (p Price) String() string {
	return p.Decimal().String()
}

// Order is the external, mutable order object the core observes and
// mutates. The core holds a non-owning reference: whoever constructs an
// Order and calls AddOrder owns its lifetime and the fields not documented
// here (quantity, account, venue routing, and so on).
type Order interface {
	ClientOrderID() uint64
	Side() Side
	OrderType() OrderType

	// Price is the limit price. Present (by construction of the concrete
	// order type) for LIMIT, MARKET_TO_LIMIT, STOP_LIMIT, LIMIT_IF_TOUCHED,
	// and TRAILING_STOP_LIMIT orders.
	Price() Price

	// TriggerPrice is the activation threshold. Present for STOP_MARKET,
	// STOP_LIMIT, MARKET_IF_TOUCHED, LIMIT_IF_TOUCHED,
	// TRAILING_STOP_MARKET, and TRAILING_STOP_LIMIT orders.
	TriggerPrice() Price

	IsTriggered() bool
	SetTriggered(bool)

	// SetTriggeredPrice records the price at which a conditional order
	// activated. It does not, by itself, flip IsTriggered — SetTriggered
	// is a distinct call the TriggerStopOrder callback is expected to make
	// (see the Callbacks doc comment in MatchingCore).
	SetTriggeredPrice(Price)

	LiquiditySide() LiquiditySide
	SetLiquiditySide(LiquiditySide)

	IsClosed() bool
}
