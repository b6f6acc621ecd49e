package server

import (
	"context"
	"encoding/json"
	"net/http"

	eventbus "github.com/gqlgate/gqlgate/internal/eventbus"
	events "github.com/gqlgate/gqlgate/internal/events"
	graphql "github.com/gqlgate/gqlgate/internal/graphql"
)

// Protocol error codes surfaced in the {"Code","Message"} rejection body.
const (
	codeMethodNotAllowed = "MethodNotAllowedError"
	codeBadRequest       = "BadRequestError"
	codeUnsupportedMedia = "UnsupportedMediaType"
	codeBodyTooLarge     = "RequestEntityTooLargeError"
)

const (
	msgMethodNotAllowed = "Unsupported method, must be of request type POST or GET"
	msgInvalidBody      = "Provide a valid graphql query in the body of your request"
	msgMissingQuery     = "No GraphQL query found in the request"
	msgInvalidVariables = "Provide valid variables in your request"
	msgUnsupportedMedia = "Unsupported Media Type"
	msgBodyTooLarge     = "Request body exceeds the configured limit"
)

// protocolError is a transport-level failure: a machine-readable code, a
// human message, and the HTTP status it maps to. GraphQL execution errors
// are a disjoint taxonomy and never take this path.
type protocolError struct {
	Code    string
	Message string
	Status  int
}

// errorBody is the single wire shape for every rejection path.
type errorBody struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// reject terminates the request with a protocol error. Rejections are not
// logged here; subscribers observe them through the RequestRejected event.
func (h *Handler) reject(ctx context.Context, w http.ResponseWriter, perr protocolError) int {
	eventbus.Publish(ctx, events.RequestRejected{Code: perr.Code, Status: perr.Status, Message: perr.Message})
	writeJSON(w, perr.Status, errorBody{Code: perr.Code, Message: perr.Message}, h.opt.Pretty)
	return perr.Status
}

type responseError struct {
	Message    string             `json:"message"`
	Locations  []graphql.Location `json:"locations,omitempty"`
	Path       graphql.Path       `json:"path,omitempty"`
	Extensions map[string]any     `json:"extensions,omitempty"`
}

type responseEnvelope struct {
	Data       any             `json:"data"`
	Errors     []responseError `json:"errors,omitempty"`
	Extensions map[string]any  `json:"extensions,omitempty"`
}

// toEnvelope reduces an ExecutionResult to the canonical response shape:
// data always present (null when execution produced none), errors only when
// non-empty, each reduced to {message, locations, path, extensions}.
func toEnvelope(res *graphql.ExecutionResult) responseEnvelope {
	out := responseEnvelope{Data: res.Data, Extensions: res.Extensions}
	if len(res.Errors) == 0 {
		return out
	}
	out.Errors = make([]responseError, len(res.Errors))
	for i, e := range res.Errors {
		out.Errors[i] = responseError{
			Message:    e.Message,
			Locations:  e.Locations,
			Path:       e.Path,
			Extensions: e.Extensions,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}
