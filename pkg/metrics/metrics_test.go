package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.Observe("counter", "increment", false, true, 2*time.Millisecond)
	c.Observe("counter", "increment", false, false, time.Millisecond)
	c.Observe("counter", "incrementWithError", true, false, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.actions.WithLabelValues("counter", "increment", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actions.WithLabelValues("counter", "incrementWithError", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.changes.WithLabelValues("counter", "increment")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Observe("s", "a", false, true, time.Second)
	})
}
