package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var yieldBuckets = []float64{1, 2, 5, 10, 15, 20, 30, 50}

// EconomyMetricsCollector follows the game loop: mining, travel, sales, shop and turns
type EconomyMetricsCollector struct {
	sessionsStarted prometheus.Counter
	turnsTotal      prometheus.Counter
	creditsAtTurn   prometheus.Gauge

	resourcesMined    *prometheus.CounterVec
	resourcesLoaded   *prometheus.CounterVec
	resourcesRefunded *prometheus.CounterVec
	miningYield       *prometheus.HistogramVec

	tripsTotal   *prometheus.CounterVec
	fuelConsumed prometheus.Counter

	unitsSold    *prometheus.CounterVec
	salesRevenue *prometheus.CounterVec

	purchasesTotal *prometheus.CounterVec
	creditsSpent   *prometheus.CounterVec
}

func NewEconomyMetricsCollector() *EconomyMetricsCollector {
	return &EconomyMetricsCollector{
		sessionsStarted: counter(subsystem, "sessions_started_total", "Total number of games started"),
		turnsTotal:      counter(subsystem, "turns_total", "Total number of turns ended"),
		creditsAtTurn: gauge(subsystem, "credits_at_turn_end",
			"Credits of the running session when the last turn ended"),

		resourcesMined: counterVec(subsystem, "resources_mined_units_total",
			"Units extracted from body pools by resource and location", "resource", "location"),
		resourcesLoaded: counterVec(subsystem, "resources_loaded_units_total",
			"Units admitted into cargo by resource", "resource"),
		resourcesRefunded: counterVec(subsystem, "resources_refunded_units_total",
			"Units returned to body pools because cargo was full", "resource"),
		miningYield: histogramVec(subsystem, "mining_yield_units",
			"Units extracted per mining action", yieldBuckets, "resource"),

		tripsTotal:   counterVec(subsystem, "trips_total", "Total number of trips by destination", "destination"),
		fuelConsumed: counter(subsystem, "fuel_consumed_units_total", "Total fuel burned by travel"),

		unitsSold: counterVec(subsystem, "units_sold_total", "Units sold by resource and outpost", "resource", "outpost"),
		salesRevenue: counterVec(subsystem, "sales_revenue_credits_total",
			"Credits earned from sales by resource", "resource"),

		purchasesTotal: counterVec(subsystem, "purchases_total", "Shop purchases by item type and item", "item_type", "item"),
		creditsSpent: counterVec(subsystem, "credits_spent_total",
			"Credits spent in the shop by item type", "item_type"),
	}
}

func (c *EconomyMetricsCollector) Register() error {
	return register(
		c.sessionsStarted, c.turnsTotal, c.creditsAtTurn,
		c.resourcesMined, c.resourcesLoaded, c.resourcesRefunded, c.miningYield,
		c.tripsTotal, c.fuelConsumed,
		c.unitsSold, c.salesRevenue,
		c.purchasesTotal, c.creditsSpent,
	)
}

// RecordSessionStarted counts a new game; its credits seed the turn gauge
func (c *EconomyMetricsCollector) RecordSessionStarted(startingCredits float64) {
	c.sessionsStarted.Inc()
	c.creditsAtTurn.Set(startingCredits)
}

// RecordMining records one extraction; refunded is what did not fit in cargo
func (c *EconomyMetricsCollector) RecordMining(resource string, location string, mined int, loaded int, refunded int) {
	c.resourcesMined.WithLabelValues(resource, location).Add(float64(mined))
	c.resourcesLoaded.WithLabelValues(resource).Add(float64(loaded))
	if refunded > 0 {
		c.resourcesRefunded.WithLabelValues(resource).Add(float64(refunded))
	}
	c.miningYield.WithLabelValues(resource).Observe(float64(mined))
}

func (c *EconomyMetricsCollector) RecordTravel(from string, to string, fuelUsed int) {
	c.tripsTotal.WithLabelValues(to).Inc()
	c.fuelConsumed.Add(float64(fuelUsed))
}

// RecordSale records one sold cargo line
func (c *EconomyMetricsCollector) RecordSale(resource string, outpost string, units int, value float64) {
	if units <= 0 {
		return
	}
	c.unitsSold.WithLabelValues(resource, outpost).Add(float64(units))
	c.salesRevenue.WithLabelValues(resource).Add(value)
}

func (c *EconomyMetricsCollector) RecordPurchase(itemType string, item string, cost float64) {
	c.purchasesTotal.WithLabelValues(itemType, item).Inc()
	c.creditsSpent.WithLabelValues(itemType).Add(cost)
}

// RecordTurn records the end of a turn
func (c *EconomyMetricsCollector) RecordTurn(credits float64) {
	c.turnsTotal.Inc()
	c.creditsAtTurn.Set(credits)
}
