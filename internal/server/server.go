package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	eventbus "github.com/gqlgate/gqlgate/internal/eventbus"
	events "github.com/gqlgate/gqlgate/internal/events"
	graphiql "github.com/gqlgate/gqlgate/internal/graphiql"
	graphql "github.com/gqlgate/gqlgate/internal/graphql"
	language "github.com/gqlgate/gqlgate/internal/language"
	reqid "github.com/gqlgate/gqlgate/internal/reqid"
)

// Handler is an http.Handler that adapts GraphQL-over-HTTP requests onto an
// execution engine. It classifies the request shape, extracts the operation,
// dispatches it, and serializes the result per the GraphQL-over-HTTP
// convention. Protocol-level failures short-circuit with a {"Code","Message"}
// body; engine errors always ride back inside a 200 response.
type Handler struct {
	engine graphql.Engine
	opt    Options
	routes []route
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions

	// GraphiQL enables the in-browser exploration page when true.
	GraphiQL bool
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}
func WithGraphiQL(enable bool) Option { return func(o *Options) { o.GraphiQL = enable } }

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates a GraphQL HTTP handler in front of the given engine.
func New(engine graphql.Engine, opts ...Option) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("server: engine is required")
	}
	op := Options{Timeout: 10 * time.Second, GraphiQL: true}
	for _, f := range opts {
		f(&op)
	}
	h := &Handler{engine: engine, opt: op}
	h.routes = h.buildRoutes()
	return h, nil
}

// route pairs a classification predicate with the branch that serves it.
type route struct {
	match func(r *http.Request) bool
	serve func(ctx context.Context, w http.ResponseWriter, r *http.Request) int
}

// buildRoutes returns the classifier table, evaluated in order with the
// first match winning. The order is a contract: method rejection, then JSON
// body, then query string, then the exploration page, then the
// unsupported-media-type catch-all. A bare GET with the page disabled must
// reach the catch-all rather than succeed silently.
func (h *Handler) buildRoutes() []route {
	return []route{
		{
			match: func(r *http.Request) bool {
				return r.Method != http.MethodPost && r.Method != http.MethodGet
			},
			serve: h.serveMethodNotAllowed,
		},
		{
			match: func(r *http.Request) bool {
				return strings.Contains(r.Header.Get("Content-Type"), "application/json")
			},
			serve: h.serveJSONBody,
		},
		{
			match: func(r *http.Request) bool {
				return r.Method == http.MethodGet && len(r.URL.Query()) > 0
			},
			serve: h.serveQueryString,
		},
		{
			match: func(r *http.Request) bool {
				return r.Method == http.MethodGet && h.opt.GraphiQL && acceptsHTML(r.Header.Get("Accept"))
			},
			serve: h.serveGraphiQL,
		},
		{
			match: func(r *http.Request) bool { return true },
			serve: h.serveUnsupportedMediaType,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	ctx = graphql.WithRequest(ctx, r)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	// Preflight is only answered when CORS is configured; otherwise OPTIONS
	// falls through to the method rejection like any other verb.
	if r.Method == http.MethodOptions && len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	for _, rt := range h.routes {
		if rt.match(r) {
			status = rt.serve(ctx, w, r)
			return
		}
	}
}

func (h *Handler) serveMethodNotAllowed(ctx context.Context, w http.ResponseWriter, _ *http.Request) int {
	return h.reject(ctx, w, protocolError{
		Code:    codeMethodNotAllowed,
		Message: msgMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
	})
}

func (h *Handler) serveJSONBody(ctx context.Context, w http.ResponseWriter, r *http.Request) int {
	source, perr := h.decodeJSONBody(r)
	if perr != nil {
		return h.reject(ctx, w, *perr)
	}
	return h.respond(ctx, w, source, sourceBody)
}

func (h *Handler) serveQueryString(ctx context.Context, w http.ResponseWriter, r *http.Request) int {
	return h.respond(ctx, w, queryStringSource(r.URL.Query()), sourceQuery)
}

func (h *Handler) serveGraphiQL(_ context.Context, w http.ResponseWriter, _ *http.Request) int {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(graphiql.Page())
	return http.StatusOK
}

func (h *Handler) serveUnsupportedMediaType(ctx context.Context, w http.ResponseWriter, _ *http.Request) int {
	return h.reject(ctx, w, protocolError{
		Code:    codeUnsupportedMedia,
		Message: msgUnsupportedMedia,
		Status:  http.StatusUnsupportedMediaType,
	})
}

// respond runs extraction, execution and serialization for one request.
func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, source map[string]any, from sourceKind) int {
	op, perr := extractOperation(source, from)
	if perr != nil {
		return h.reject(ctx, w, *perr)
	}
	result := h.execute(ctx, op)
	writeJSON(w, http.StatusOK, toEnvelope(result), h.opt.Pretty)
	return http.StatusOK
}

// execute dispatches one operation to the engine. The query is syntax-parsed
// up front only to tag observability events with the operation type; the
// engine owns real parsing and validation, and whatever errors it reports
// stay inside the result.
func (h *Handler) execute(ctx context.Context, op graphql.Operation) *graphql.ExecutionResult {
	opType := ""
	if doc, err := language.ParseQuery(op.Query); err == nil {
		opType = language.OperationType(doc, op.OperationName)
	}

	start := time.Now()
	eventbus.Publish(ctx, events.GraphQLStart{
		Query:         op.Query,
		OperationName: op.OperationName,
		OperationType: opType,
	})
	result := h.engine.ExecuteSync(ctx, op)
	if result == nil {
		result = &graphql.ExecutionResult{}
	}
	errs := make([]error, len(result.Errors))
	for i := range result.Errors {
		errs[i] = result.Errors[i]
	}
	eventbus.Publish(ctx, events.GraphQLFinish{
		Query:         op.Query,
		OperationName: op.OperationName,
		OperationType: opType,
		Errors:        errs,
		Duration:      time.Since(start),
	})
	return result
}

func acceptsHTML(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "text/html") || strings.HasPrefix(part, "*/*") {
			return true
		}
	}
	return false
}
