// Package metrics учитывает обращения к API провайдера и при необходимости
// отправляет их в Prometheus Pushgateway по завершении команды.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics хранит собственный реестр, чтобы не тащить в push метрики рантайма.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New создаёт и регистрирует метрики клиента.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mol",
			Name:      "api_requests_total",
			Help:      "Requests sent to the payment provider API by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mol",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of payment provider API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// ObserveRequest учитывает одну попытку запроса.
func (m *Metrics) ObserveRequest(operation, outcome string, duration time.Duration) {
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Push отправляет метрики в Pushgateway, группируя их по имени команды.
func (m *Metrics) Push(ctx context.Context, url, job, command string) error {
	const op = "metrics.Push"
	err := push.New(url, job).
		Gatherer(m.registry).
		Grouping("command", command).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
