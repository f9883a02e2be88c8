package common

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// RequestName returns the bare type name of a request ("MineResourceCommand")
func RequestName(request mediator.Request) string {
	t := reflect.TypeOf(request)
	if t == nil {
		return "unknown"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// LoggingMiddleware logs every request with its duration. Infrastructure
// errors are logged at ERROR; handlers report rule violations in their
// responses, so those never reach this level.
func LoggingMiddleware(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
	logger := LoggerFromContext(ctx)
	start := time.Now()

	response, err := next(ctx, request)

	metadata := map[string]interface{}{
		"request":     RequestName(request),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		metadata["error"] = err.Error()
		logger.Log("ERROR", "request failed", metadata)
		return response, err
	}
	logger.Log("DEBUG", "request handled", metadata)
	return response, nil
}
