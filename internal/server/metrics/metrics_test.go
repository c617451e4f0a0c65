package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestObservePushAndPull(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePush(3, 2, 1)
	m.ObservePush(1, 1, 0)
	m.ObservePull("incremental", 4)
	m.ObservePull("full", 10)
	m.ObservePull("incremental", 0)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.pushedRecords))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.appliedRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staleRecords))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pulls.WithLabelValues("incremental")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pulls.WithLabelValues("full")))
	assert.Equal(t, 14.0, testutil.ToFloat64(m.pulledRecords))
}

func TestSubscribersGauge(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SubscriberAdded()
	m.SubscriberAdded()
	m.SubscriberRemoved()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscribers))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObservePush(1, 1, 0)
		m.ObservePull("full", 1)
		m.SubscriberAdded()
		m.SubscriberRemoved()
		_, _ = m.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x"},
			func(context.Context, any) (any, error) { return nil, nil })
	})
}

func TestUnaryServerInterceptor_ObservesCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	icpt := m.UnaryServerInterceptor()

	_, err := icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Pull"},
		func(context.Context, any) (any, error) { return nil, status.Error(codes.FailedPrecondition, "old") })
	require.Error(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.rpcDuration, "entrysync_rpc_duration_seconds"))
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObservePush(2, 2, 0)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "entrysync_pushed_records_total 2"))
}
