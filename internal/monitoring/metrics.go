package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Simulated trading metrics
	tradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingbot_trades_total",
			Help: "Total number of simulated trades closed",
		},
		[]string{"symbol", "exit_reason"},
	)

	tradeProfit = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swingbot_trade_profit",
			Help:    "Distribution of per-trade profit",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"symbol"},
	)

	// Risk gate metrics
	validationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingbot_trade_validations_total",
			Help: "Total number of trade validations by outcome",
		},
		[]string{"outcome"},
	)

	// Ledger metrics
	riskExposure = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "swingbot_risk_exposure",
			Help: "Aggregate worst-case loss across open positions",
		},
	)

	accountBalance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "swingbot_account_balance",
			Help: "Current account cash balance",
		},
	)
)

func init() {
	prometheus.MustRegister(tradesTotal)
	prometheus.MustRegister(tradeProfit)
	prometheus.MustRegister(validationsTotal)
	prometheus.MustRegister(riskExposure)
	prometheus.MustRegister(accountBalance)
}

// MetricsHandler handles the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordTrade records a closed trade
func RecordTrade(symbol, exitReason string, profit float64) {
	tradesTotal.WithLabelValues(symbol, exitReason).Inc()
	tradeProfit.WithLabelValues(symbol).Observe(profit)
}

// RecordValidation records a trade validation outcome ("accepted"/"rejected")
func RecordValidation(outcome string) {
	validationsTotal.WithLabelValues(outcome).Inc()
}

// UpdateExposure updates the ledger exposure and balance gauges
func UpdateExposure(totalRisk, balance float64) {
	riskExposure.Set(totalRisk)
	accountBalance.Set(balance)
}
