package colorexpr

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilerMetricsRegister(t *testing.T) {
	m := newCompilerMetrics()
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)

	m.ObserveCompilation(HLSL, 0.0001, nil)
	m.ObserveCompilation(WGSL, 0.0002, errors.New("boom"))
	m.ObserveEvaluation(0.01, nil)
	m.observeMemo(true)
	m.observeMemo(false)
	m.observeMemo(false)
	m.observeFills(HSL, 3)
	m.observeFills(RGB, 0)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.memoLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.memoLookups.WithLabelValues("miss")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.fills.WithLabelValues("hsl")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.compilationTime))
}

func TestCompileRecordsMetrics(t *testing.T) {
	hits := testutil.ToFloat64(Metrics.memoLookups.WithLabelValues("hit"))
	fills := testutil.ToFloat64(Metrics.fills.WithLabelValues("rgb"))

	c := NewCompiler()
	for range 3 {
		_, err := c.Compile("color.rg", colorSource)
		require.NoError(t, err)
	}

	assert.Equal(t, hits+2, testutil.ToFloat64(Metrics.memoLookups.WithLabelValues("hit")))
	assert.Equal(t, fills+2, testutil.ToFloat64(Metrics.fills.WithLabelValues("rgb")))
}
