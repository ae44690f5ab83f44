// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunaygrid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts generator activity.
type Metrics struct {
	Steps         prometheus.Counter
	Elements      prometheus.Counter
	Metastructure prometheus.Counter
	Undos         prometheus.Counter
	AliveFacets   prometheus.Gauge
}

// NewMetrics creates the generator metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Steps: f.NewCounter(prometheus.CounterOpts{
			Name: "delaunaygrid_steps_total",
			Help: "Front-advance steps performed.",
		}),
		Elements: f.NewCounter(prometheus.CounterOpts{
			Name: "delaunaygrid_elements_total",
			Help: "Elements accepted.",
		}),
		Metastructure: f.NewCounter(prometheus.CounterOpts{
			Name: "delaunaygrid_metastructure_facets_total",
			Help: "Facets identified as metastructure.",
		}),
		Undos: f.NewCounter(prometheus.CounterOpts{
			Name: "delaunaygrid_undo_total",
			Help: "Steps undone.",
		}),
		AliveFacets: f.NewGauge(prometheus.GaugeOpts{
			Name: "delaunaygrid_alive_facets",
			Help: "Facets currently on the front.",
		}),
	}
}

func (m *Metrics) observeStep(element, meta bool, aliveFacets int) {
	if m == nil {
		return
	}
	m.Steps.Inc()
	if element {
		m.Elements.Inc()
	}
	if meta {
		m.Metastructure.Inc()
	}
	m.AliveFacets.Set(float64(aliveFacets))
}

func (m *Metrics) observeUndo(aliveFacets int) {
	if m == nil {
		return
	}
	m.Undos.Inc()
	m.AliveFacets.Set(float64(aliveFacets))
}
