package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

const (
	statusSuccess  = "success"
	statusRejected = "rejected"
	statusError    = "error"
)

// Game commands run in memory; ledger queries hit the database
var commandBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}

// CommandMetricsCollector times every request sent through the mediator
type CommandMetricsCollector struct {
	duration   *prometheus.HistogramVec
	executions *prometheus.CounterVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		duration: histogramVec(subsystem, "command_duration_seconds",
			"Command execution duration distribution", commandBuckets, "command", "status"),
		executions: counterVec(subsystem, "commands_total",
			"Total number of commands executed by type and status", "command", "status"),
	}
}

func (c *CommandMetricsCollector) Register() error {
	return register(c.duration, c.executions)
}

// RecordCommandExecution counts one request; status is success, rejected or error
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, duration float64, status string) {
	c.duration.WithLabelValues(commandName, status).Observe(duration)
	c.executions.WithLabelValues(commandName, status).Inc()
}

// PrometheusMiddleware records every request under its type name, e.g.
// *commands.MineResourceCommand as MineResourceCommand. A nil collector
// turns the middleware into a pass-through.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(extractCommandName(request), time.Since(start).Seconds(), statusOf(response, err))
		return response, err
	}
}

// outcomeReporter is satisfied by game responses through their embedded Outcome
type outcomeReporter interface {
	IsSuccess() bool
}

// statusOf separates rule rejections, which still return a response, from handler errors
func statusOf(response mediator.Response, err error) string {
	if err != nil {
		return statusError
	}
	if reporter, ok := response.(outcomeReporter); ok && !reporter.IsSuccess() {
		return statusRejected
	}
	return statusSuccess
}

func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
