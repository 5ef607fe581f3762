package feed

import (
	"testing"
	"time"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCore is a stub Core that records every call dispatch makes,
// letting dispatch be tested without a real matching.MatchingCore or a live
// WebSocket connection.
type recordingCore struct {
	bid, ask, last int64
	bidSet, askSet bool
	lastSet        bool
	iterateCalls   []int64
	iterateErr     error
}

func (c *recordingCore) SetBidRaw(v int64)  { c.bid, c.bidSet = v, true }
func (c *recordingCore) SetAskRaw(v int64)  { c.ask, c.askSet = v, true }
func (c *recordingCore) SetLastRaw(v int64) { c.last, c.lastSet = v, true }

func (c *recordingCore) Iterate(timestampNs int64) error {
	c.iterateCalls = append(c.iterateCalls, timestampNs)
	return c.iterateErr
}

func newTestFeed() *Feed {
	return New(DefaultConfig("ws://unused"), log.NewLogger("feed-test"))
}

func TestDispatch_SetsOnlyFieldsWithHasFlag(t *testing.T) {
	f := newTestFeed()
	core := &recordingCore{}
	f.Register("BTC-USD", core)

	f.dispatch(Tick{Symbol: "BTC-USD", HasBid: true, BidRaw: 100, Timestamp: 1})

	assert.True(t, core.bidSet)
	assert.False(t, core.askSet, "ask was not present in the tick, must not be set")
	assert.False(t, core.lastSet)
	assert.Equal(t, int64(100), core.bid)
	require.Len(t, core.iterateCalls, 1)
	assert.Equal(t, int64(1), core.iterateCalls[0])
}

func TestDispatch_SetsAllFieldsWhenPresent(t *testing.T) {
	f := newTestFeed()
	core := &recordingCore{}
	f.Register("BTC-USD", core)

	f.dispatch(Tick{
		Symbol: "BTC-USD",
		HasBid: true, BidRaw: 100,
		HasAsk: true, AskRaw: 110,
		HasLast: true, LastRaw: 105,
		Timestamp: 42,
	})

	assert.Equal(t, int64(100), core.bid)
	assert.Equal(t, int64(110), core.ask)
	assert.Equal(t, int64(105), core.last)
	require.Len(t, core.iterateCalls, 1)
	assert.Equal(t, int64(42), core.iterateCalls[0])
}

func TestDispatch_UnregisteredSymbolIsIgnored(t *testing.T) {
	f := newTestFeed()
	core := &recordingCore{}
	f.Register("BTC-USD", core)

	f.dispatch(Tick{Symbol: "ETH-USD", HasBid: true, BidRaw: 999, Timestamp: 1})

	assert.False(t, core.bidSet)
	assert.Empty(t, core.iterateCalls)
	assert.Equal(t, uint64(0), f.TicksReceived())
}

func TestDispatch_IncrementsTicksReceived(t *testing.T) {
	f := newTestFeed()
	core := &recordingCore{}
	f.Register("BTC-USD", core)

	f.dispatch(Tick{Symbol: "BTC-USD", Timestamp: 1})
	f.dispatch(Tick{Symbol: "BTC-USD", Timestamp: 2})

	assert.Equal(t, uint64(2), f.TicksReceived())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("ws://example.com")
	assert.Equal(t, "ws://example.com", cfg.URL)
	assert.Greater(t, cfg.ReadBufferSize, 0)
	assert.Greater(t, cfg.HandshakeTimeout, time.Duration(0))
}
