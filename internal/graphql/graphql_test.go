package graphql

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestRequestContextRoundTrip(t *testing.T) {
	req := httptest.NewRequest("POST", "/graphql", nil)
	ctx := WithRequest(context.Background(), req)
	got, ok := RequestFrom(ctx)
	if !ok || got != req {
		t.Fatalf("request not recoverable from context")
	}
	if _, ok := RequestFrom(context.Background()); ok {
		t.Fatalf("unexpected request in empty context")
	}
}

func TestMockEngineRegistry(t *testing.T) {
	m := NewMockEngine(map[string]*ExecutionResult{
		"Known": {Data: map[string]any{"x": 1}},
	})
	res := m.ExecuteSync(context.Background(), Operation{Query: "{ x }", OperationName: "Known"})
	if res.Data == nil || len(res.Errors) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	res = m.ExecuteSync(context.Background(), Operation{Query: "{ x }", OperationName: "Unknown"})
	if len(res.Errors) != 1 {
		t.Fatalf("expected error result for unknown operation, got %+v", res)
	}

	if calls := m.Calls(); len(calls) != 2 || calls[0].OperationName != "Known" {
		t.Fatalf("call log %+v", calls)
	}
}

func TestMockEngineFunc(t *testing.T) {
	m := NewMockValueEngine("hi")
	res := m.ExecuteSync(context.Background(), Operation{Query: "{ greeting }"})
	if res.Data != "hi" {
		t.Fatalf("data %v", res.Data)
	}

	e := NewMockErrorEngine("boom")
	res = e.ExecuteSync(context.Background(), Operation{Query: "{ x }"})
	if res.Data != nil || len(res.Errors) != 1 || res.Errors[0].Message != "boom" {
		t.Fatalf("unexpected result %+v", res)
	}
}
