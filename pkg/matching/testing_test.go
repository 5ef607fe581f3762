package matching

// testOrder is a minimal concrete Order used across the test files in this
// package. It is deliberately bare — no quantity, no account — since the
// core never looks past the fields the Order interface documents.
type testOrder struct {
	id            uint64
	side          Side
	orderType     OrderType
	price         Price
	triggerPrice  Price
	triggered     bool
	triggeredAt   Price
	liquiditySide LiquiditySide
	closed        bool
}

func (o *testOrder) ClientOrderID() uint64 { return o.id }
func (o *testOrder) Side() Side            { return o.side }
func (o *testOrder) OrderType() OrderType  { return o.orderType }
func (o *testOrder) Price() Price          { return o.price }
func (o *testOrder) TriggerPrice() Price   { return o.triggerPrice }
func (o *testOrder) IsTriggered() bool     { return o.triggered }
func (o *testOrder) SetTriggered(b bool)   { o.triggered = b }

func (o *testOrder) SetTriggeredPrice(p Price) { o.triggeredAt = p }

func (o *testOrder) LiquiditySide() LiquiditySide        { return o.liquiditySide }
func (o *testOrder) SetLiquiditySide(l LiquiditySide)     { o.liquiditySide = l }

func (o *testOrder) IsClosed() bool { return o.closed }

// testInstrument is a fixed-precision instrument for tests.
type testInstrument struct {
	precision uint32
}

func (i testInstrument) PricePrecision() uint32 { return i.precision }

// recordingCallbacks counts and records every callback invocation, and
// optionally runs a hook after recording — used by the snapshot-stability
// test to mutate the core mid-sweep the way a real fill handler would.
type recordingCallbacks struct {
	triggered   []Order
	filledMkt   []Order
	filledLimit []Order

	onTrigger   func(Order)
	onFillMkt   func(Order)
	onFillLimit func(Order)
}

func (r *recordingCallbacks) callbacks() Callbacks {
	return Callbacks{
		TriggerStopOrder: func(o Order) {
			o.SetTriggered(true)
			r.triggered = append(r.triggered, o)
			if r.onTrigger != nil {
				r.onTrigger(o)
			}
		},
		FillMarketOrder: func(o Order) {
			r.filledMkt = append(r.filledMkt, o)
			if r.onFillMkt != nil {
				r.onFillMkt(o)
			}
		},
		FillLimitOrder: func(o Order) {
			r.filledLimit = append(r.filledLimit, o)
			if r.onFillLimit != nil {
				r.onFillLimit(o)
			}
		},
	}
}

func newCore(precision uint32, rc *recordingCallbacks) *MatchingCore {
	return NewMatchingCore(testInstrument{precision: precision}, rc.callbacks())
}
