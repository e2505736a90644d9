package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.Duration(), time.Duration(0))
}

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveSource("new", 10*time.Millisecond, nil)
	c.ObserveSource("used", 5*time.Millisecond, errors.New("db error"))
	c.ObserveSource("used", 5*time.Millisecond, errors.New("db error"))
	c.IncCartOperation("add")

	assert.Equal(t, float64(0), testutil.ToFloat64(c.sourceFailures.WithLabelValues("new")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.sourceFailures.WithLabelValues("used")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.cartOperations.WithLabelValues("add")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.sourceDuration))
}

func TestCollectors_NilSafe(t *testing.T) {
	var nilCollectors *Collectors
	assert.NotPanics(t, func() {
		nilCollectors.ObserveSource("new", time.Second, nil)
		nilCollectors.IncCartOperation("add")
	})

	noop := New(nil)
	assert.NotPanics(t, func() {
		noop.ObserveSource("new", time.Second, errors.New("x"))
		noop.IncCartOperation("clear")
	})
}
