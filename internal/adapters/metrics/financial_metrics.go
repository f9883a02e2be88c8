package metrics

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ledgerQueries "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// Sized around the shop prices: upgrades cost 2000 to 5000, ships up to 35000
var amountBuckets = []float64{10, 50, 100, 500, 1000, 2500, 5000, 15000, 35000}

// SessionIDFunc returns the id of the running session, if any
type SessionIDFunc func() (string, bool)

// FinancialMetricsCollector mirrors the journal: every recorded transaction
// bumps the counters, and a poller keeps the P&L gauges in line with the
// ledger of the running session.
type FinancialMetricsCollector struct {
	mediator  mediator.Mediator
	sessionID SessionIDFunc

	balance   prometheus.Gauge
	journaled *prometheus.CounterVec
	amounts   *prometheus.HistogramVec

	revenue  *prometheus.GaugeVec
	expenses *prometheus.GaugeVec
	net      prometheus.Gauge

	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewFinancialMetricsCollector builds the collector; with a nil mediator only
// RecordTransaction has an effect
func NewFinancialMetricsCollector(m mediator.Mediator, sessionID SessionIDFunc) *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		mediator:  m,
		sessionID: sessionID,
		balance: gauge(subsystem, "credits_balance",
			"Credits balance of the running session after the last journaled change"),
		journaled: counterVec(subsystem, "transactions_total",
			"Total number of journaled transactions by type and category", "type", "category"),
		amounts: histogramVec(subsystem, "transaction_amount",
			"Transaction amount distribution", amountBuckets, "type", "category"),
		revenue: gaugeVec(subsystem, "total_revenue",
			"Total revenue of the running session by category", "category"),
		expenses: gaugeVec(subsystem, "total_expenses",
			"Total expenses of the running session by category", "category"),
		net: gauge(subsystem, "net_profit",
			"Net profit (revenue - expenses) of the running session"),
	}
}

func (c *FinancialMetricsCollector) Register() error {
	return register(c.balance, c.journaled, c.amounts, c.revenue, c.expenses, c.net)
}

// Start refreshes the P&L gauges now and then every interval until Stop
func (c *FinancialMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	ctx, c.stop = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			c.UpdateProfitLoss(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop waits for the poller to exit
func (c *FinancialMetricsCollector) Stop() {
	if c.stop != nil {
		c.stop()
	}
	c.wg.Wait()
}

// UpdateProfitLoss asks the ledger for the running session's P&L
func (c *FinancialMetricsCollector) UpdateProfitLoss(ctx context.Context) {
	if c.mediator == nil || c.sessionID == nil {
		return
	}
	sessionID, ok := c.sessionID()
	if !ok {
		return
	}

	response, err := c.mediator.Send(ctx, &ledgerQueries.GetProfitLossQuery{SessionID: sessionID})
	if err != nil {
		log.Printf("P&L refresh for session %s failed: %v", sessionID, err)
		return
	}
	pl, ok := response.(*ledgerQueries.GetProfitLossResponse)
	if !ok {
		log.Printf("P&L refresh got %T", response)
		return
	}

	setBreakdown(c.revenue, pl.RevenueBreakdown)
	setBreakdown(c.expenses, pl.ExpenseBreakdown)
	c.net.Set(pl.NetProfit)
}

// RecordTransaction counts one journaled credit change
func (c *FinancialMetricsCollector) RecordTransaction(transactionType string, category string, amount float64, creditsBalance float64) {
	c.balance.Set(creditsBalance)
	c.journaled.WithLabelValues(transactionType, category).Inc()
	c.amounts.WithLabelValues(transactionType, category).Observe(math.Abs(amount))
}

// setBreakdown replaces every series of vec so categories that dropped out disappear
func setBreakdown(vec *prometheus.GaugeVec, breakdown map[string]float64) {
	vec.Reset()
	for category, amount := range breakdown {
		vec.WithLabelValues(category).Set(amount)
	}
}
