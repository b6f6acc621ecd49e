package server

import (
	"net/http"
	"net/url"
	"testing"
)

func TestExtractOperation(t *testing.T) {
	cases := []struct {
		name     string
		data     map[string]any
		from     sourceKind
		wantErr  bool
		wantName string
		wantVars map[string]any
	}{
		{
			name: "body with object variables",
			data: map[string]any{
				"query":         "{ hello }",
				"variables":     map[string]any{"a": float64(1)},
				"operationName": "Op",
			},
			from:     sourceBody,
			wantName: "Op",
			wantVars: map[string]any{"a": float64(1)},
		},
		{
			name:     "variables default to empty map",
			data:     map[string]any{"query": "{ hello }"},
			from:     sourceBody,
			wantVars: map[string]any{},
		},
		{
			name:     "query-string variables are JSON decoded",
			data:     map[string]any{"query": "{ hello }", "variables": `{"b":true}`},
			from:     sourceQuery,
			wantVars: map[string]any{"b": true},
		},
		{
			name:    "string variables in a body are malformed",
			data:    map[string]any{"query": "{ hello }", "variables": `{"b":true}`},
			from:    sourceBody,
			wantErr: true,
		},
		{
			name:    "missing query",
			data:    map[string]any{"operationName": "Op"},
			from:    sourceBody,
			wantErr: true,
		},
		{
			name:    "empty query",
			data:    map[string]any{"query": ""},
			from:    sourceQuery,
			wantErr: true,
		},
		{
			name:    "non-object query-string variables",
			data:    map[string]any{"query": "{ hello }", "variables": `[1,2]`},
			from:    sourceQuery,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op, perr := extractOperation(tc.data, tc.from)
			if tc.wantErr {
				if perr == nil {
					t.Fatalf("expected protocol error")
				}
				if perr.Status != http.StatusBadRequest {
					t.Fatalf("status %d", perr.Status)
				}
				return
			}
			if perr != nil {
				t.Fatalf("unexpected error: %+v", perr)
			}
			if op.OperationName != tc.wantName {
				t.Fatalf("operation name %q", op.OperationName)
			}
			if len(op.Variables) != len(tc.wantVars) {
				t.Fatalf("variables %v", op.Variables)
			}
			for k, v := range tc.wantVars {
				if op.Variables[k] != v {
					t.Fatalf("variables[%q] = %v, want %v", k, op.Variables[k], v)
				}
			}
		})
	}
}

func TestQueryStringSourceFirstValueWins(t *testing.T) {
	values := url.Values{"query": {"{ a }", "{ b }"}, "empty": {}}
	data := queryStringSource(values)
	if data["query"] != "{ a }" {
		t.Fatalf("query %v", data["query"])
	}
	if _, ok := data["empty"]; ok {
		t.Fatalf("empty parameter should be dropped")
	}
}

func TestAcceptsHTML(t *testing.T) {
	cases := map[string]bool{
		"":                            false,
		"text/html":                   true,
		"application/json":            false,
		"application/json, text/html": true,
		"*/*":                         true,
		"text/html;q=0.9, */*;q=0.8":  true,
		"application/xhtml+xml":       false,
		"text/plain, application/xml": false,
	}
	for accept, want := range cases {
		if got := acceptsHTML(accept); got != want {
			t.Fatalf("acceptsHTML(%q) = %v, want %v", accept, got, want)
		}
	}
}
