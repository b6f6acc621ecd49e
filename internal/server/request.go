package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	graphql "github.com/gqlgate/gqlgate/internal/graphql"
)

// sourceKind tells the extractor where the data source came from; only the
// query string carries variables as a JSON-encoded string.
type sourceKind int

const (
	sourceBody sourceKind = iota
	sourceQuery
)

// decodeJSONBody reads and decodes the request body. The body must decode to
// a JSON object: arrays, bare strings and an absent or truncated body are
// all rejected with the same 400.
func (h *Handler) decodeJSONBody(r *http.Request) (map[string]any, *protocolError) {
	reader := io.Reader(r.Body)
	if h.opt.MaxBodyBytes > 0 {
		reader = io.LimitReader(r.Body, h.opt.MaxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &protocolError{Code: codeBadRequest, Message: msgInvalidBody, Status: http.StatusBadRequest}
	}
	defer r.Body.Close()
	if h.opt.MaxBodyBytes > 0 && int64(len(body)) > h.opt.MaxBodyBytes {
		return nil, &protocolError{Code: codeBodyTooLarge, Message: msgBodyTooLarge, Status: http.StatusRequestEntityTooLarge}
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &protocolError{Code: codeBadRequest, Message: msgInvalidBody, Status: http.StatusBadRequest}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &protocolError{Code: codeBadRequest, Message: msgInvalidBody, Status: http.StatusBadRequest}
	}
	return obj, nil
}

// queryStringSource flattens query parameters into an extraction source.
// Multi-valued parameters keep their first value.
func queryStringSource(values url.Values) map[string]any {
	data := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			data[k] = vs[0]
		}
	}
	return data
}

// extractOperation pulls {query, variables, operationName} out of a decoded
// data source. Pure: no I/O and the source is not mutated.
func extractOperation(data map[string]any, from sourceKind) (graphql.Operation, *protocolError) {
	op := graphql.Operation{Variables: map[string]any{}}

	query, _ := data["query"].(string)
	if query == "" {
		return op, &protocolError{Code: codeBadRequest, Message: msgMissingQuery, Status: http.StatusBadRequest}
	}
	op.Query = query

	switch v := data["variables"].(type) {
	case nil:
	case map[string]any:
		op.Variables = v
	case string:
		// Query-string variables arrive JSON-encoded; anywhere else a bare
		// string is malformed.
		if from != sourceQuery {
			return op, &protocolError{Code: codeBadRequest, Message: msgInvalidVariables, Status: http.StatusBadRequest}
		}
		if v != "" {
			if err := json.Unmarshal([]byte(v), &op.Variables); err != nil {
				return op, &protocolError{Code: codeBadRequest, Message: msgInvalidVariables, Status: http.StatusBadRequest}
			}
		}
	default:
		return op, &protocolError{Code: codeBadRequest, Message: msgInvalidVariables, Status: http.StatusBadRequest}
	}

	if name, ok := data["operationName"].(string); ok {
		op.OperationName = name
	}
	return op, nil
}
