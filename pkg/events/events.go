// Package events republishes matching core callback invocations onto NATS,
// giving the three injected callbacks a concrete downstream shape: risk,
// position-keeping, and client notification subscribe to subjects instead
// of being wired directly into matching.Callbacks.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/luxfi/log"
	"github.com/nats-io/nats.go"

	"github.com/luxfi/matchcore/pkg/matching"
)

// Config configures the NATS connection an Publisher uses.
type Config struct {
	URL     string
	Timeout time.Duration
}

// DefaultConfig returns a Config for the default local NATS URL, the same
// fallback-to-nats.DefaultURL behavior the rest of the NATS-backed pack
// repos use.
func DefaultConfig() Config {
	return Config{URL: nats.DefaultURL, Timeout: time.Second}
}

// conn is the subset of *nats.Conn a Publisher needs. Declared as an
// interface so tests can substitute a recording stub without dialing a real
// NATS server.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// Publisher wraps a NATS connection and republishes matching core events
// under subjects scoped to a symbol: matching.<symbol>.triggered,
// matching.<symbol>.filled.market, matching.<symbol>.filled.limit.
type Publisher struct {
	nc     conn
	symbol string
	logger log.Logger
}

// Connect dials NATS and returns a Publisher for symbol. Callers normally
// hold one Publisher per instrument, matching MatchingCore's own
// single-instrument-per-instance discipline.
func Connect(config Config, symbol string, logger log.Logger) (*Publisher, error) {
	nc, err := nats.Connect(config.URL, nats.Timeout(config.Timeout))
	if err != nil {
		return nil, fmt.Errorf("events: connect to %s: %w", config.URL, err)
	}
	return &Publisher{nc: nc, symbol: symbol, logger: logger}, nil
}

// Close closes the underlying NATS connection without draining it.
func (p *Publisher) Close() {
	p.nc.Close()
}

// eventEnvelope is the wire shape published for every event.
type eventEnvelope struct {
	Symbol        string `json:"symbol"`
	ClientOrderID uint64 `json:"clientOrderId"`
	Side          string `json:"side"`
	OrderType     string `json:"orderType"`
	LiquiditySide string `json:"liquiditySide"`
	TimestampNs   int64  `json:"timestampNs"`
}

func (p *Publisher) envelope(core *matching.MatchingCore, order matching.Order) eventEnvelope {
	return eventEnvelope{
		Symbol:        p.symbol,
		ClientOrderID: order.ClientOrderID(),
		Side:          order.Side().String(),
		OrderType:     order.OrderType().String(),
		LiquiditySide: order.LiquiditySide().String(),
		TimestampNs:   core.LastIterateTimestampNs(),
	}
}

func (p *Publisher) publish(subject string, env eventEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("events: marshal failed", "subject", subject, "error", err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("events: publish failed", "subject", subject, "error", err)
		return
	}
	p.logger.Debug("events: published", "subject", subject, "orderId", env.ClientOrderID)
}

// Callbacks returns a matching.Callbacks trio that republishes every
// invocation onto NATS before returning. Compose it with other callback
// logic (metrics, position updates) by calling this package's funcs from
// inside a wrapping matching.Callbacks rather than using these directly,
// if both are needed.
func (p *Publisher) Callbacks(core *matching.MatchingCore) matching.Callbacks {
	return matching.Callbacks{
		TriggerStopOrder: func(o matching.Order) {
			o.SetTriggered(true)
			p.publish("matching."+p.symbol+".triggered", p.envelope(core, o))
		},
		FillMarketOrder: func(o matching.Order) {
			p.publish("matching."+p.symbol+".filled.market", p.envelope(core, o))
		},
		FillLimitOrder: func(o matching.Order) {
			p.publish("matching."+p.symbol+".filled.limit", p.envelope(core, o))
		},
	}
}
