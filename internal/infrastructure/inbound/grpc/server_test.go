package delivery_grpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"blog-post-service/internal/custom_errors"
	delivery_grpc "blog-post-service/internal/infrastructure/inbound/grpc"
	"blog-post-service/internal/infrastructure/logger"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	post_repository_mock "blog-post-service/mocks/post"
)

func startServer(t *testing.T, store delivery_grpc.Pinger) (*delivery_grpc.Server, healthpb.HealthClient) {
	lis := bufconn.Listen(1024 * 1024)
	srv := delivery_grpc.NewServer(store, "", 0, logger.New("test"), prometheus_metrics.NewPrometheusMetricsProvider())
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		_ = srv.Shutdown()
	})
	return srv, healthpb.NewHealthClient(conn)
}

func TestServer_HealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "store reachable", want: healthpb.HealthCheckResponse_SERVING},
		{name: "store unavailable", pingErr: custom_errors.ErrStoreUnavailable, want: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := post_repository_mock.NewRepository(t)
			store.On("Ping", mock.Anything).Return(tt.pingErr)
			srv, client := startServer(t, store)

			healthy := srv.Probe(context.Background())
			assert.Equal(t, tt.pingErr == nil, healthy)

			resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: delivery_grpc.ServiceName})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.GetStatus())
		})
	}
}
