// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

// Module is a function type that returns prebuilt metrics.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.
type Metric struct {
	// Name is the required name of this metric.
	Name string `json:"name"`

	// Type is one of the type constants in this package.
	Type string `json:"type"`

	// Namespace is optional.  The registry's namespace is used if this is not supplied.
	Namespace string `json:"namespace"`

	// Subsystem is optional.  The registry's subsystem is used if this is not supplied.
	Subsystem string `json:"subsystem"`

	// Help defaults to the metric's name
	Help string `json:"help"`

	ConstLabels map[string]string `json:"constLabels"`

	// Buckets only applies to histograms.  Prometheus' default buckets are used when empty.
	Buckets []float64 `json:"buckets"`
}

// NewCollector creates an unlabeled Prometheus vector from a Metric descriptor.  The name and type
// must be valid; namespace and subsystem are used as given.
func NewCollector(m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errors.New("a name is required for a metric")
	}

	help := m.Help
	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, nil), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, nil), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        help,
			Buckets:     m.Buckets,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, nil), nil

	default:
		return nil, errors.Errorf("unsupported metric type: %s", m.Type)
	}
}
