// Package metrics 提供 Prometheus 指标集合
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	// 按实体统计的持久化次数
	EntitiesSaved *prometheus.CounterVec
	// 按实体统计的校验失败次数
	ValidationFailures *prometheus.CounterVec
	// 按实体统计的种子数据生成次数
	FixturesSeeded *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec
}

// New 创建指标实例并注册到独立的 registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EntitiesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "nanotrader",
			Name:        "entities_saved_total",
			Help:        "Total entities persisted",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"entity"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "nanotrader",
			Name:        "validation_failures_total",
			Help:        "Total entities rejected by field validation",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"entity"}),
		FixturesSeeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "nanotrader",
			Name:        "fixtures_seeded_total",
			Help:        "Total fixture records generated",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"entity"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "nanotrader",
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: prometheus.Labels{"service": serviceName},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.EntitiesSaved,
		m.ValidationFailures,
		m.FixturesSeeded,
		m.HTTPRequestDuration,
	)
	return m
}

// Registry 返回底层 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordSaved 记录一次持久化，nil 接收者安全
func (m *Metrics) RecordSaved(entity string) {
	if m == nil {
		return
	}
	m.EntitiesSaved.WithLabelValues(entity).Inc()
}

// RecordValidationFailure 记录一次校验失败
func (m *Metrics) RecordValidationFailure(entity string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(entity).Inc()
}

// RecordSeeded 记录生成的种子数据条数
func (m *Metrics) RecordSeeded(entity string, count int) {
	if m == nil {
		return
	}
	m.FixturesSeeded.WithLabelValues(entity).Add(float64(count))
}
