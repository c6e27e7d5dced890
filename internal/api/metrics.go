// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tfctl/awssso/internal/credguard"
)

const metricsNamespace = "awssso"

// Collector holds the server's Prometheus metrics.
type Collector struct {
	credentialFailures *prometheus.CounterVec
	requests           *prometheus.CounterVec
}

// NewCollector returns a Collector with zeroed metrics.
func NewCollector() *Collector {
	return &Collector{
		credentialFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "credential_failures_total",
				Help:      "The number of AWS calls that failed because credentials were unusable.",
			}, []string{"kind"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "The number of HTTP requests served.",
			}, []string{"route", "code"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.credentialFailures.Describe(ch)
	c.requests.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.credentialFailures.Collect(ch)
	c.requests.Collect(ch)
}

// Observe counts credential failures. It is meant to be passed to
// credguard.WithObserver.
func (c *Collector) Observe(cl credguard.Classification) {
	if !cl.Kind.Credential() {
		return
	}
	c.credentialFailures.WithLabelValues(cl.Kind.String()).Inc()
}

func (c *Collector) countRequest(route string, code int) {
	c.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
