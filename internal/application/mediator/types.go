package mediator

import (
	"context"
)

// Request is a command such as RunCycleCommand or a query such as ListMineablesQuery
type Request interface{}

// Response is whatever the handler returns, a cycle report or a list of mineables
type Response interface{}

// RequestHandler is registered for exactly one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is the next step of the middleware chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatched request, e.g. the Prometheus command timer
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
