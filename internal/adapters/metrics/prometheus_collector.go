package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "spacemining"
	// Subsystem for game metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalFinancialCollector is the singleton financial metrics collector
	// Set by SetGlobalFinancialCollector() when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder

	// globalEconomyCollector is the singleton economy metrics collector
	// Set by SetGlobalEconomyCollector() when metrics are enabled
	globalEconomyCollector EconomyMetricsRecorder

	// globalAPICollector is the singleton HTTP API metrics collector
	// Set by SetGlobalAPICollector() when metrics are enabled
	globalAPICollector APIMetricsRecorder
)

// FinancialMetricsRecorder defines the interface for recording journaled credit changes
type FinancialMetricsRecorder interface {
	RecordTransaction(transactionType string, category string, amount float64, creditsBalance float64)
}

// EconomyMetricsRecorder defines the interface for recording game actions
type EconomyMetricsRecorder interface {
	RecordSessionStarted(startingCredits float64)
	RecordMining(resource string, location string, mined int, loaded int, refunded int)
	RecordTravel(from string, to string, fuelUsed int)
	RecordSale(resource string, outpost string, units int, value float64)
	RecordPurchase(itemType string, item string, cost float64)
	RecordTurn(credits float64)
}

// APIMetricsRecorder defines the interface for recording HTTP API traffic
type APIMetricsRecorder interface {
	RecordAPIRequest(method string, endpoint string, statusCode int, duration float64)
	RecordRateLimited(endpoint string)
	SetEventStreamClients(count int)
	RecordEventBroadcast(event string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and every global collector
func Reset() {
	Registry = nil
	globalFinancialCollector = nil
	globalEconomyCollector = nil
	globalAPICollector = nil
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// SetGlobalEconomyCollector sets the global economy metrics collector
func SetGlobalEconomyCollector(collector EconomyMetricsRecorder) {
	globalEconomyCollector = collector
}

// SetGlobalAPICollector sets the global HTTP API metrics collector
func SetGlobalAPICollector(collector APIMetricsRecorder) {
	globalAPICollector = collector
}

// RecordTransaction records a journaled credit change globally
func RecordTransaction(transactionType string, category string, amount float64, creditsBalance float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(transactionType, category, amount, creditsBalance)
	}
}

// RecordSessionStarted records a new game globally
func RecordSessionStarted(startingCredits float64) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordSessionStarted(startingCredits)
	}
}

// RecordMining records a mining action globally
func RecordMining(resource string, location string, mined int, loaded int, refunded int) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordMining(resource, location, mined, loaded, refunded)
	}
}

// RecordTravel records a trip globally
func RecordTravel(from string, to string, fuelUsed int) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordTravel(from, to, fuelUsed)
	}
}

// RecordSale records one sold cargo line globally
func RecordSale(resource string, outpost string, units int, value float64) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordSale(resource, outpost, units, value)
	}
}

// RecordPurchase records a shop purchase globally
func RecordPurchase(itemType string, item string, cost float64) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordPurchase(itemType, item, cost)
	}
}

// RecordTurn records the end of a turn globally
func RecordTurn(credits float64) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordTurn(credits)
	}
}

// RecordAPIRequest records an HTTP API request globally
func RecordAPIRequest(method string, endpoint string, statusCode int, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRequest(method, endpoint, statusCode, duration)
	}
}

// RecordRateLimited records a rate-limited HTTP request globally
func RecordRateLimited(endpoint string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordRateLimited(endpoint)
	}
}

// SetEventStreamClients records the websocket client count globally
func SetEventStreamClients(count int) {
	if globalAPICollector != nil {
		globalAPICollector.SetEventStreamClients(count)
	}
}

// RecordEventBroadcast records a streamed game event globally
func RecordEventBroadcast(event string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordEventBroadcast(event)
	}
}

const apiSubsystem = "api"

// register adds collectors to Registry; a nil Registry means metrics are off
func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil
	}
	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func counter(sub, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: sub, Name: name, Help: help})
}

func counterVec(sub, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Subsystem: sub, Name: name, Help: help}, labels)
}

func gauge(sub, name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: sub, Name: name, Help: help})
}

func gaugeVec(sub, name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Subsystem: sub, Name: name, Help: help}, labels)
}

func histogramVec(sub, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: sub,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}
