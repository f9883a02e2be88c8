package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Request is a game command or query; its dynamic type selects the handler
type Request interface{}

// Response is whatever the selected handler returns
type Response interface{}

// RequestHandler serves one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to the handler call shape used by middleware
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatch (logging, command metrics)
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// ErrNoHandler is returned by Send for request types nothing was registered for
var ErrNoHandler = errors.New("no handler registered")

// Mediator dispatches requests to their handlers through the registered middleware chain
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	RegisterMiddleware(middleware Middleware)
}

type mediator struct {
	mu          sync.RWMutex
	handlers    map[reflect.Type]RequestHandler
	middlewares []Middleware
}

func NewMediator() Mediator {
	return &mediator{handlers: make(map[reflect.Type]RequestHandler)}
}

// Register binds handler to requestType; each type gets exactly one handler
func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	switch {
	case requestType == nil:
		return errors.New("cannot register a handler for a nil request type")
	case handler == nil:
		return fmt.Errorf("nil handler for %s", requestType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, taken := m.handlers[requestType]; taken {
		return fmt.Errorf("%s is already handled by %T", requestType, existing)
	}
	m.handlers[requestType] = handler
	return nil
}

// RegisterMiddleware appends to the chain; the first registered runs outermost
func (m *mediator) RegisterMiddleware(middleware Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middlewares = append(m.middlewares, middleware)
}

// Send runs request through the middleware chain into its handler
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, errors.New("cannot send a nil request")
	}

	requestType := reflect.TypeOf(request)
	m.mu.RLock()
	handler, ok := m.handlers[requestType]
	middlewares := m.middlewares
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for type %s", ErrNoHandler, requestType)
	}

	return chain(middlewares, handler.Handle)(ctx, request)
}

// chain folds middlewares around final, innermost last
func chain(middlewares []Middleware, final HandlerFunc) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw, next := middlewares[i], final
		final = func(ctx context.Context, request Request) (Response, error) {
			return mw(ctx, request, next)
		}
	}
	return final
}

// RegisterHandler binds handler to the request type T, e.g. *commands.MineResourceCommand
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	return m.Register(reflect.TypeOf(zero), handler)
}
