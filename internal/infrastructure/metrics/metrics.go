package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics exports document store activity to prometheus
type StoreMetrics struct {
	mutations *prometheus.CounterVec
	saves     *prometheus.CounterVec
	loads     *prometheus.CounterVec
	dirty     prometheus.Gauge
}

// NewStoreMetrics creates the store collectors and registers them on reg
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecms_store_mutations_total",
				Help: "Total number of applied document mutations",
			},
			[]string{"op"},
		),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecms_store_saves_total",
				Help: "Total number of saves to the backend",
			},
			[]string{"result"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecms_store_loads_total",
				Help: "Total number of loads from the backend",
			},
			[]string{"result"},
		),
		dirty: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitecms_store_dirty",
				Help: "1 while the store holds unsaved changes",
			},
		),
	}

	reg.MustRegister(m.mutations, m.saves, m.loads, m.dirty)
	return m
}

// ObserveMutation counts one applied mutation
func (m *StoreMetrics) ObserveMutation(op string) {
	m.mutations.WithLabelValues(op).Inc()
}

// ObserveSave counts one save attempt by result
func (m *StoreMetrics) ObserveSave(result string) {
	m.saves.WithLabelValues(result).Inc()
}

// ObserveLoad counts one load attempt by result
func (m *StoreMetrics) ObserveLoad(result string) {
	m.loads.WithLabelValues(result).Inc()
}

// SetDirty tracks the dirty flag
func (m *StoreMetrics) SetDirty(dirty bool) {
	if dirty {
		m.dirty.Set(1)
		return
	}
	m.dirty.Set(0)
}
