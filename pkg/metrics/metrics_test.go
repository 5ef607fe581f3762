package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/log"
)

func newTestMatching() *Matching {
	return New("matchcore_test", log.NewLogger("metrics-test"))
}

func TestRecordOrderRegistered(t *testing.T) {
	m := newTestMatching()
	m.RecordOrderRegistered()
	m.RecordOrderRegistered()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ordersRegistered))
}

func TestRecordTrigger(t *testing.T) {
	m := newTestMatching()
	m.RecordTrigger()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.triggersFired))
}

func TestRecordFill_LabelsByLiquiditySide(t *testing.T) {
	m := newTestMatching()
	m.RecordFill("maker")
	m.RecordFill("maker")
	m.RecordFill("taker")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.fillsByLiquidity.WithLabelValues("maker")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fillsByLiquidity.WithLabelValues("taker")))
}

func TestRecordIterateLatency_ObservesHistogram(t *testing.T) {
	m := newTestMatching()
	m.RecordIterateLatency(250 * time.Nanosecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.iterateLatency))
}

func TestCollectSystemMetrics_SamplesUntilCanceled(t *testing.T) {
	m := newTestMatching()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.CollectSystemMetrics(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.goroutines) > 0
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CollectSystemMetrics did not stop after context cancellation")
	}
}
