package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	eventbus "github.com/gqlgate/gqlgate/internal/eventbus"
	events "github.com/gqlgate/gqlgate/internal/events"
)

func TestAttachObservesEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	m := New("gqlgate")
	unsubscribe := m.Attach()
	defer unsubscribe()

	req := httptest.NewRequest("POST", "/graphql", nil)
	ctx := context.Background()
	eventbus.Publish(ctx, events.HTTPFinish{Request: req, Status: 200, Duration: 5 * time.Millisecond})
	eventbus.Publish(ctx, events.GraphQLFinish{OperationType: "query", Errors: []error{context.Canceled}})
	eventbus.Publish(ctx, events.RequestRejected{Code: "BadRequestError", Status: 400})

	require.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.OperationsTotal.WithLabelValues("query", "error")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.RejectionsTotal.WithLabelValues("BadRequestError")))

	unsubscribe()
	eventbus.Publish(ctx, events.RequestRejected{Code: "BadRequestError", Status: 400})
	require.Equal(t, float64(1), testutil.ToFloat64(m.RejectionsTotal.WithLabelValues("BadRequestError")))
}

func TestRegistryAndHandler(t *testing.T) {
	m := New("gqlgate")
	reg, err := NewRegistry(m)
	require.NoError(t, err)

	m.RequestsTotal.WithLabelValues("GET", "200").Inc()

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "gqlgate_http_requests_total")
}

func TestDoubleRegisterFails(t *testing.T) {
	m := New("gqlgate")
	reg, err := NewRegistry(m)
	require.NoError(t, err)
	require.Error(t, m.Register(reg))
}
