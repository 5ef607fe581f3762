package main

import "github.com/luxfi/matchcore/pkg/matching"

// demoOrder is a minimal concrete matching.Order, the shape a real exchange
// simulator or live execution adapter would own. It carries nothing beyond
// what the core documents needing — quantity, account, and venue routing
// live one layer up, outside this package entirely.
type demoOrder struct {
	id            uint64
	side          matching.Side
	orderType     matching.OrderType
	price         matching.Price
	triggerPrice  matching.Price
	triggered     bool
	triggeredAt   matching.Price
	liquiditySide matching.LiquiditySide
	closed        bool
}

func (o *demoOrder) ClientOrderID() uint64                     { return o.id }
func (o *demoOrder) Side() matching.Side                       { return o.side }
func (o *demoOrder) OrderType() matching.OrderType             { return o.orderType }
func (o *demoOrder) Price() matching.Price                     { return o.price }
func (o *demoOrder) TriggerPrice() matching.Price              { return o.triggerPrice }
func (o *demoOrder) IsTriggered() bool                         { return o.triggered }
func (o *demoOrder) SetTriggered(b bool)                       { o.triggered = b }
func (o *demoOrder) SetTriggeredPrice(p matching.Price)        { o.triggeredAt = p }
func (o *demoOrder) LiquiditySide() matching.LiquiditySide     { return o.liquiditySide }
func (o *demoOrder) SetLiquiditySide(l matching.LiquiditySide) { o.liquiditySide = l }
func (o *demoOrder) IsClosed() bool                            { return o.closed }
