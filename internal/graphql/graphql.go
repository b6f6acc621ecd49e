package graphql

import (
	"context"
	"net/http"
)

// Operation is a parsed GraphQL request: query text, variable values and an
// optional operation name. Query is always non-empty once an Operation has
// been extracted; a request without query text is rejected before this type
// is ever constructed.
type Operation struct {
	Query         string
	Variables     map[string]any
	OperationName string
}

// Path addresses the response field an error occurred at.
type Path []any

// Location is a position in the query source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is a GraphQL execution error as produced by an engine. It lives
// inside the 200 response body and never influences the HTTP status.
type Error struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e Error) Error() string { return e.Message }

// ExecutionResult is what an engine returns for one operation. The handler
// only serializes it; it never mutates data or errors.
type ExecutionResult struct {
	Data       any            `json:"data"`
	Errors     []Error        `json:"errors,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Engine executes GraphQL operations against some schema. Implementations
// own parsing, validation and resolution; the HTTP layer treats the call as
// an opaque synchronous capability. Implementations must be safe for
// concurrent use.
type Engine interface {
	ExecuteSync(ctx context.Context, op Operation) *ExecutionResult
}

type requestKey struct{}

// WithRequest stores the originating HTTP request in ctx so engines can
// inspect transport details (headers, remote address) if they need to.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// RequestFrom returns the HTTP request the operation arrived on, if any.
func RequestFrom(ctx context.Context) (*http.Request, bool) {
	r, ok := ctx.Value(requestKey{}).(*http.Request)
	return r, ok
}
