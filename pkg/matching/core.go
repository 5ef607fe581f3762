package matching

import "sort"

// Callbacks are the three event sinks a MatchingCore is parameterized by.
// Each is invoked synchronously from within MatchOrder/Iterate; none of them
// may be nil.
//
// TriggerStopOrder fires when a conditional (stop/touch) order activates.
// Implementations typically set the order's triggered flag externally — the
// core never inspects the effect, it only relies on IsTriggered reflecting
// the change on the next observation.
//
// FillMarketOrder and FillLimitOrder effect a market-style and limit-style
// fill respectively. The core does not know what a "fill" does to a venue,
// account, or position; it only calls the sink and moves on.
type Callbacks struct {
	TriggerStopOrder func(Order)
	FillMarketOrder  func(Order)
	FillLimitOrder   func(Order)
}

// MatchingCore owns the working orders of one instrument and decides, on
// every price update, which of them trigger or fill. It is a value type: an
// owner creates one per instrument and drives it synchronously. Nothing
// inside MatchingCore spawns a goroutine or blocks.
type MatchingCore struct {
	instrument Instrument
	callbacks  Callbacks

	bidRaw   int64
	bidInit  bool
	askRaw   int64
	askInit  bool
	lastRaw  int64
	lastInit bool

	orders    map[uint64]Order
	ordersBid []Order
	ordersAsk []Order

	lastIterateNs int64
}

// NewMatchingCore constructs a core for one instrument. All three callbacks
// are required; a nil callback would panic on first use, so callers must
// supply real sinks (a no-op func is fine for tests).
func NewMatchingCore(instrument Instrument, callbacks Callbacks) *MatchingCore {
	return &MatchingCore{
		instrument: instrument,
		callbacks:  callbacks,
		orders:     make(map[uint64]Order),
		ordersBid:  make([]Order, 0),
		ordersAsk:  make([]Order, 0),
	}
}

// --- price state ---

func (c *MatchingCore) SetBidRaw(v int64) {
	c.bidRaw = v
	c.bidInit = true
}

func (c *MatchingCore) SetAskRaw(v int64) {
	c.askRaw = v
	c.askInit = true
}

func (c *MatchingCore) SetLastRaw(v int64) {
	c.lastRaw = v
	c.lastInit = true
}

// Bid returns the current best bid, or false if no bid has ever been
// published.
func (c *MatchingCore) Bid() (Price, bool) {
	if !c.bidInit {
		return Price{}, false
	}
	return Price{Raw: c.bidRaw, Precision: c.instrument.PricePrecision()}, true
}

func (c *MatchingCore) Ask() (Price, bool) {
	if !c.askInit {
		return Price{}, false
	}
	return Price{Raw: c.askRaw, Precision: c.instrument.PricePrecision()}, true
}

func (c *MatchingCore) Last() (Price, bool) {
	if !c.lastInit {
		return Price{}, false
	}
	return Price{Raw: c.lastRaw, Precision: c.instrument.PricePrecision()}, true
}

// Reset zeroes every price slot, clears every initialized flag, and empties
// every order collection. It is the only operation that clears working
// orders outside of individual DeleteOrder calls.
func (c *MatchingCore) Reset() {
	c.bidRaw, c.bidInit = 0, false
	c.askRaw, c.askInit = 0, false
	c.lastRaw, c.lastInit = 0, false
	c.orders = make(map[uint64]Order)
	c.ordersBid = c.ordersBid[:0]
	c.ordersAsk = c.ordersAsk[:0]
}

// --- order index & priority lists ---

// AddOrder registers a working order, appends it to its side's priority
// list, and re-sorts that list. Fails with InvalidEnumError if the order's
// side is neither Buy nor Sell.
func (c *MatchingCore) AddOrder(order Order) error {
	switch order.Side() {
	case Buy:
		c.orders[order.ClientOrderID()] = order
		c.ordersBid = append(c.ordersBid, order)
		sortSide(c.ordersBid, Buy)
	case Sell:
		c.orders[order.ClientOrderID()] = order
		c.ordersAsk = append(c.ordersAsk, order)
		sortSide(c.ordersAsk, Sell)
	default:
		return invalidSide(order.Side())
	}
	return nil
}

// DeleteOrder removes an order from the index and its side list. It is a
// no-op if the order is absent, so calling it twice has the same effect as
// calling it once.
func (c *MatchingCore) DeleteOrder(order Order) {
	id := order.ClientOrderID()
	if _, ok := c.orders[id]; !ok {
		return
	}
	delete(c.orders, id)

	switch order.Side() {
	case Buy:
		c.ordersBid = removeByID(c.ordersBid, id)
	case Sell:
		c.ordersAsk = removeByID(c.ordersAsk, id)
	}
}

func removeByID(list []Order, id uint64) []Order {
	for i, o := range list {
		if o.ClientOrderID() == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (c *MatchingCore) GetOrder(id uint64) (Order, bool) {
	o, ok := c.orders[id]
	return o, ok
}

func (c *MatchingCore) OrderExists(id uint64) bool {
	_, ok := c.orders[id]
	return ok
}

// GetOrders returns the concatenation of the bid and ask lists. It is not
// globally sorted — callers wanting priority order should read
// GetOrdersBid/GetOrdersAsk separately.
func (c *MatchingCore) GetOrders() []Order {
	out := make([]Order, 0, len(c.ordersBid)+len(c.ordersAsk))
	out = append(out, c.ordersBid...)
	out = append(out, c.ordersAsk...)
	return out
}

func (c *MatchingCore) GetOrdersBid() []Order {
	return c.ordersBid
}

func (c *MatchingCore) GetOrdersAsk() []Order {
	return c.ordersAsk
}

// LastIterateTimestampNs returns the timestamp passed to the most recent
// Iterate call. Callback implementations that need "when did this sweep
// run" (for logging, event timestamps, latency metrics) read it from here,
// since Callbacks' own function signatures carry only the order.
func (c *MatchingCore) LastIterateTimestampNs() int64 {
	return c.lastIterateNs
}

// orderSortKey maps an order to the integer priority used to sort its side's
// list. Any type not listed below, Market included, is a programming error: the
// caller should never construct an order with an unrecognized OrderType, so
// this panics rather than returning an error.
func orderSortKey(order Order) int64 {
	switch order.OrderType() {
	case Limit, MarketToLimit:
		return order.Price().Raw
	case StopMarket, MarketIfTouched, TrailingStopMarket:
		return order.TriggerPrice().Raw
	case StopLimit, LimitIfTouched, TrailingStopLimit:
		if order.IsTriggered() {
			return order.Price().Raw
		}
		return order.TriggerPrice().Raw
	default:
		panic(invalidOrderType(order.OrderType()))
	}
}

// sortSide sorts a side's order list by orderSortKey: descending for Buy
// (most aggressive = highest price first), ascending for Sell. Tie-breaking
// is unspecified; sort.SliceStable is used so that, for a given input
// sequence, repeated sorts are deterministic.
func sortSide(list []Order, side Side) {
	switch side {
	case Buy:
		sort.SliceStable(list, func(i, j int) bool {
			return orderSortKey(list[i]) > orderSortKey(list[j])
		})
	case Sell:
		sort.SliceStable(list, func(i, j int) bool {
			return orderSortKey(list[i]) < orderSortKey(list[j])
		})
	}
}
