// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// Metrics preregistered through modules are returned, wrapped for go-kit, by the Provider methods.
// Names that were not preregistered produce ad hoc metrics that are cached for subsequent calls.
// Asking for a name as the wrong type panics.
type Registry interface {
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// NewRegistry creates a Registry and preregisters every metric from the given modules.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	var pr *prometheus.Registry
	if o.pedantic() {
		pr = prometheus.NewPedanticRegistry()
	} else {
		pr = prometheus.NewRegistry()
	}

	if !o.disableGoCollector() {
		pr.MustRegister(collectors.NewGoCollector())
	}

	if !o.disableProcessCollector() {
		pr.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: o.namespace(),
		}))
	}

	r := &registry{
		Registry:  pr,
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, module := range modules {
		for _, m := range module() {
			if err := r.preregister(m); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry, except that it panics on any error
func MustNewRegistry(o *Options, modules ...Module) Registry {
	r, err := NewRegistry(o, modules...)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *registry) preregister(m Metric) error {
	if len(m.Namespace) == 0 {
		m.Namespace = r.namespace
	}

	if len(m.Subsystem) == 0 {
		m.Subsystem = r.subsystem
	}

	if _, ok := r.cache[m.Name]; ok {
		return errors.Errorf("duplicate metric with name: %s", m.Name)
	}

	c, err := NewCollector(m)
	if err != nil {
		return err
	}

	if err := r.Registry.Register(c); err != nil {
		return errors.Wrapf(err, "error while preregistering metric %s", m.Name)
	}

	r.cache[m.Name] = c
	return nil
}

// collector returns the cached collector for name, creating and registering an ad hoc one of type t.
func (r *registry) collector(name, t string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(Metric{
		Name:      name,
		Type:      t,
		Namespace: r.namespace,
		Subsystem: r.subsystem,
	})

	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounter(name string) metrics.Counter {
	counterVec, ok := r.collector(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(errors.Errorf("the metric %s is not a counter", name))
	}

	return gokitprometheus.NewCounter(counterVec)
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	gaugeVec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(errors.Errorf("the metric %s is not a gauge", name))
	}

	return gokitprometheus.NewGauge(gaugeVec)
}

// NewHistogram ignores the bucket count.  Preregistered histograms carry their own buckets, and
// ad hoc histograms use the Prometheus defaults.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	histogramVec, ok := r.collector(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(errors.Errorf("the metric %s is not a histogram", name))
	}

	return gokitprometheus.NewHistogram(histogramVec)
}

func (r *registry) Stop() {
}
