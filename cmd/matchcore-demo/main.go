// Command matchcore-demo wires pkg/matching, pkg/metrics, pkg/events, and
// pkg/feed together the way a minimal exchange simulator would: one
// instrument, one MatchingCore, a handful of working orders, and a stream of
// price ticks driven through Iterate. It is a harness, not a venue — no
// accounts, no positions, no persistence.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/matchcore/pkg/events"
	"github.com/luxfi/matchcore/pkg/feed"
	"github.com/luxfi/matchcore/pkg/matching"
	"github.com/luxfi/matchcore/pkg/metrics"
)

type instrument struct {
	precision uint32
}

func (i instrument) PricePrecision() uint32 { return i.precision }

func main() {
	symbol := flag.String("symbol", "BTC-USD", "instrument symbol")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus /metrics listen address")
	natsURL := flag.String("nats", "", "NATS URL for event publishing (empty disables publishing)")
	feedURL := flag.String("feed-url", "", "WebSocket market data feed URL (empty replays a hardcoded tick sequence)")
	flag.Parse()

	logger := log.NewLogger("matchcore-demo").WithFields(log.UserString("symbol", *symbol))

	m := metrics.New("matchcore", logger)
	if err := m.StartServer(*metricsAddr); err != nil {
		logger.Error("failed to start metrics server", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.CollectSystemMetrics(ctx, 10*time.Second)

	var publisher *events.Publisher
	if *natsURL != "" {
		p, err := events.Connect(events.Config{URL: *natsURL, Timeout: time.Second}, *symbol, logger)
		if err != nil {
			logger.Error("events: could not connect, continuing without publishing", "error", err)
		} else {
			publisher = p
			defer publisher.Close()
		}
	}

	inst := instrument{precision: 2}

	var core *matching.MatchingCore
	callbacks := matching.Callbacks{
		TriggerStopOrder: func(o matching.Order) {
			o.SetTriggered(true)
			m.RecordTrigger()
			logger.Info("order triggered", "orderId", o.ClientOrderID())
			if publisher != nil {
				publisher.Callbacks(core).TriggerStopOrder(o)
			}
		},
		FillMarketOrder: func(o matching.Order) {
			m.RecordFill(o.LiquiditySide().String())
			logger.Info("market fill", "orderId", o.ClientOrderID(), "liquiditySide", o.LiquiditySide())
			if publisher != nil {
				publisher.Callbacks(core).FillMarketOrder(o)
			}
		},
		FillLimitOrder: func(o matching.Order) {
			m.RecordFill(o.LiquiditySide().String())
			logger.Info("limit fill", "orderId", o.ClientOrderID(), "liquiditySide", o.LiquiditySide())
			if publisher != nil {
				publisher.Callbacks(core).FillLimitOrder(o)
			}
		},
	}
	core = matching.NewMatchingCore(inst, callbacks)

	orders := []*demoOrder{
		{id: 1, side: matching.Buy, orderType: matching.Limit, price: matching.Price{Raw: 10050, Precision: 2}},
		{id: 2, side: matching.Sell, orderType: matching.StopMarket, triggerPrice: matching.Price{Raw: 10200, Precision: 2}},
		{id: 3, side: matching.Buy, orderType: matching.StopLimit, price: matching.Price{Raw: 10300, Precision: 2}, triggerPrice: matching.Price{Raw: 10250, Precision: 2}},
	}
	for _, o := range orders {
		if err := core.AddOrder(o); err != nil {
			logger.Error("failed to add order", "orderId", o.id, "error", err)
			continue
		}
		m.RecordOrderRegistered()
	}

	if *feedURL != "" {
		f := feed.New(feed.DefaultConfig(*feedURL), logger)
		f.Register(*symbol, &timedCore{core: core, onIterate: m.RecordIterateLatency})
		if err := f.Run(ctx); err != nil {
			logger.Error("feed run failed", "error", err)
		}
		logger.Info("feed stopped", "ticksReceived", f.TicksReceived())
		return
	}

	replayTicks(core, m, logger)
}

// timedCore wraps a *matching.MatchingCore so a Feed can drive it while
// still recording iterate latency, without pkg/feed needing to know about
// pkg/metrics.
type timedCore struct {
	core      *matching.MatchingCore
	onIterate func(time.Duration)
}

func (t *timedCore) SetBidRaw(v int64)  { t.core.SetBidRaw(v) }
func (t *timedCore) SetAskRaw(v int64)  { t.core.SetAskRaw(v) }
func (t *timedCore) SetLastRaw(v int64) { t.core.SetLastRaw(v) }

func (t *timedCore) Iterate(timestampNs int64) error {
	start := time.Now()
	err := t.core.Iterate(timestampNs)
	t.onIterate(time.Since(start))
	return err
}

// replayTicks drives core through a hardcoded price sequence, used when no
// feed URL is configured — lets the demo run without a live upstream.
func replayTicks(core *matching.MatchingCore, m *metrics.Matching, logger log.Logger) {
	ticks := []struct {
		bid, ask, last int64
	}{
		{9990, 10000, 9995},
		{10040, 10050, 10045},
		{10190, 10210, 10200},
	}

	for i, tick := range ticks {
		core.SetBidRaw(tick.bid)
		core.SetAskRaw(tick.ask)
		core.SetLastRaw(tick.last)

		start := time.Now()
		if err := core.Iterate(time.Now().UnixNano()); err != nil {
			logger.Error("iterate failed", "error", err)
		}
		m.RecordIterateLatency(time.Since(start))

		logger.Info("tick processed", "index", i, "bid", tick.bid, "ask", tick.ask)
	}
}
