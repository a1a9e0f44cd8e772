package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoreMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)

	m.ObserveMutation("update_field")
	m.ObserveMutation("update_field")
	m.ObserveMutation("add_formation")
	m.ObserveSave("success")
	m.ObserveSave("error")
	m.ObserveLoad("success")
	m.SetDirty(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("update_field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("add_formation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dirty))

	m.SetDirty(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dirty))

	count, err := testutil.GatherAndCount(reg, "sitecms_store_mutations_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
