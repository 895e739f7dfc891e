// Package metrics 提供 Prometheus helper，包含服务常用 counter/gauge/histogram
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linghann/retailpos/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 数据库查询计数
	DBQueriesTotal prometheus.Counter
	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// 结账计数
	CheckoutsTotal prometheus.Counter
	// 结账失败计数，按失败类别区分
	CheckoutFailuresTotal *prometheus.CounterVec
	// 结账耗时
	CheckoutDuration prometheus.Histogram
	// 已提交订单计数
	OrdersTotal prometheus.Counter
	// outbox 中继投递计数
	OutboxRelayedTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		CheckoutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "checkouts_total",
			Help:      "Total checkout attempts",
		}),
		CheckoutFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "checkout_failures_total",
			Help:      "Total failed checkouts by failure kind",
		}, []string{"kind"}),
		CheckoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "checkout_duration_seconds",
			Help:      "Checkout duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		OrdersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "orders_total",
			Help:      "Total committed orders",
		}),
		OutboxRelayedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retailpos",
			Subsystem: serviceName,
			Name:      "outbox_relayed_total",
			Help:      "Total outbox messages relayed to the broker",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.CheckoutsTotal,
		m.CheckoutFailuresTotal,
		m.CheckoutDuration,
		m.OrdersTotal,
		m.OutboxRelayedTotal,
	}

	for _, collector := range collectors {
		if err := prometheus.DefaultRegisterer.Register(collector); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Prometheus HTTP server error", "error", err)
		}
	}()

	return nil
}
