package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa os coletores da aplicação. Um *Metrics nil ignora as chamadas.
type Metrics struct {
	SalesRegistered  *prometheus.CounterVec
	SaleRejections   *prometheus.CounterVec
	SaleRetries      prometheus.Counter
	StockAdjustments *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New cria e registra os coletores em reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SalesRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "sales_registered_total",
			Help:      "Vendas registradas por forma de pagamento.",
		}, []string{"payment_method"}),
		SaleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "sale_rejections_total",
			Help:      "Vendas rejeitadas por motivo.",
		}, []string{"reason"}),
		SaleRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "sale_tx_retries_total",
			Help:      "Transações de venda repetidas por conflito de concorrência.",
		}),
		StockAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "stock_adjustments_total",
			Help:      "Movimentações de estoque por tipo.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota e status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pos",
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.SalesRegistered,
		m.SaleRejections,
		m.SaleRetries,
		m.StockAdjustments,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// SaleRegistered contabiliza uma venda confirmada
func (m *Metrics) SaleRegistered(paymentMethod string) {
	if m == nil {
		return
	}
	m.SalesRegistered.WithLabelValues(paymentMethod).Inc()
}

// SaleRejected contabiliza uma venda rejeitada
func (m *Metrics) SaleRejected(reason string) {
	if m == nil {
		return
	}
	m.SaleRejections.WithLabelValues(reason).Inc()
}

// SaleRetried contabiliza uma nova tentativa de transação
func (m *Metrics) SaleRetried() {
	if m == nil {
		return
	}
	m.SaleRetries.Inc()
}

// StockAdjusted contabiliza uma movimentação de estoque
func (m *Metrics) StockAdjusted(kind string) {
	if m == nil {
		return
	}
	m.StockAdjustments.WithLabelValues(kind).Inc()
}

// Middleware mede as requisições atendidas pelo gin
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
