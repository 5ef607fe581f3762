// Package feed adapts an upstream WebSocket market data stream into price
// updates on a matching.MatchingCore. Market data ingestion lives entirely
// outside the core: the core never dials a socket or parses JSON, it only
// ever sees SetBidRaw / SetAskRaw / SetLastRaw / Iterate calls.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/luxfi/log"
)

// Tick is the wire shape of one price update for a symbol. Any field left at
// its zero value with its companion flag false is treated as "not present in
// this tick" rather than "price is zero."
type Tick struct {
	Symbol    string `json:"symbol"`
	BidRaw    int64  `json:"bidRaw,omitempty"`
	HasBid    bool   `json:"hasBid,omitempty"`
	AskRaw    int64  `json:"askRaw,omitempty"`
	HasAsk    bool   `json:"hasAsk,omitempty"`
	LastRaw   int64  `json:"lastRaw,omitempty"`
	HasLast   bool   `json:"hasLast,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Config configures a Feed's connection to the upstream WebSocket source.
type Config struct {
	URL              string
	ReadBufferSize   int
	WriteBufferSize  int
	HandshakeTimeout time.Duration
	PongTimeout      time.Duration
}

// DefaultConfig returns a client configuration for url with 1024-byte read
// and write buffers, a 10s handshake timeout, and a 60s pong timeout.
func DefaultConfig(url string) Config {
	return Config{
		URL:              url,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		PongTimeout:      60 * time.Second,
	}
}

// Core is the subset of matching.MatchingCore a Feed drives. Declared as an
// interface so tests can substitute a recording stub without constructing a
// real core and its callbacks.
type Core interface {
	SetBidRaw(int64)
	SetAskRaw(int64)
	SetLastRaw(int64)
	Iterate(timestampNs int64) error
}

// Feed dials one upstream WebSocket source and fans its ticks out to the
// per-symbol cores registered with Register. One Feed can drive many
// instruments: the Feed owns the transport, while each MatchingCore keeps
// owning its own instrument exclusively.
type Feed struct {
	config Config
	logger log.Logger
	dialer websocket.Dialer

	cores map[string]Core

	ticksReceived uint64
}

// New builds a Feed. cores is consulted by symbol on every tick; Register
// may be called concurrently with Run stopped, but not while Run is
// actively dispatching — callers should register all symbols before
// starting the feed, matching the core's own single-owner discipline.
func New(config Config, logger log.Logger) *Feed {
	return &Feed{
		config: config,
		logger: logger,
		dialer: websocket.Dialer{
			HandshakeTimeout: config.HandshakeTimeout,
			ReadBufferSize:   config.ReadBufferSize,
			WriteBufferSize:  config.WriteBufferSize,
		},
		cores: make(map[string]Core),
	}
}

// Register associates a symbol with the core that should receive its ticks.
func (f *Feed) Register(symbol string, core Core) {
	f.cores[symbol] = core
}

// Run dials the upstream source and dispatches ticks until ctx is canceled
// or the connection drops. Run does not reconnect; callers wanting
// reconnect-on-drop should loop Run themselves.
func (f *Feed) Run(ctx context.Context) error {
	conn, _, err := f.dialer.DialContext(ctx, f.config.URL, nil)
	if err != nil {
		return fmt.Errorf("feed: dial %s: %w", f.config.URL, err)
	}
	defer conn.Close()

	f.logger.Info("feed connected", "url", f.config.URL)

	conn.SetReadDeadline(time.Now().Add(f.config.PongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(f.config.PongTimeout))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var tick Tick
		if err := conn.ReadJSON(&tick); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				f.logger.Error("feed read error", "error", err)
			}
			return err
		}

		f.dispatch(tick)
	}
}

func (f *Feed) dispatch(tick Tick) {
	core, ok := f.cores[tick.Symbol]
	if !ok {
		f.logger.Debug("feed: no core registered for symbol", "symbol", tick.Symbol)
		return
	}

	f.ticksReceived++

	if tick.HasBid {
		core.SetBidRaw(tick.BidRaw)
	}
	if tick.HasAsk {
		core.SetAskRaw(tick.AskRaw)
	}
	if tick.HasLast {
		core.SetLastRaw(tick.LastRaw)
	}

	if err := core.Iterate(tick.Timestamp); err != nil {
		f.logger.Error("feed: iterate failed", "symbol", tick.Symbol, "error", err)
	}
}

// TicksReceived returns the number of ticks dispatched so far to a registered
// core. Ticks for a symbol with no registered core are not counted.
func (f *Feed) TicksReceived() uint64 {
	return f.ticksReceived
}
