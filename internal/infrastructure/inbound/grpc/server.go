package delivery_grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	ports "blog-post-service/internal/domain/ports/output"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "blog.post.v1.PostService"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	health  *health.Server
	store   Pinger
	server  *grpc.Server
	address string
	port    int
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewServer(store Pinger, address string, port int, log ports.Logger, metrics ports.MetricsProvider) *Server {
	s := &Server{
		health:  health.NewServer(),
		store:   store,
		address: address,
		port:    port,
		log:     log,
		metrics: metrics,
	}

	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			UnaryLoggerInterceptor(log, metrics),
			grpc_recovery.UnaryServerInterceptor(),
		)),
	)
	healthpb.RegisterHealthServer(s.server, s.health)

	return s
}

// Probe pings the store once and publishes the result.
func (s *Server) Probe(ctx context.Context) bool {
	status := healthpb.HealthCheckResponse_SERVING
	healthy := true
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("Store health probe failed", slog.String("error", err.Error()))
		status = healthpb.HealthCheckResponse_NOT_SERVING
		healthy = false
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	s.metrics.SetServiceHealth(healthy)
	return healthy
}

// WatchStore probes the store every interval until ctx is done.
func (s *Server) WatchStore(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		s.Probe(probeCtx)
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	s.log.Info("Starting gRPC server", slog.Int("port", s.port))
	return s.server.Serve(lis)
}

// Serve is Run on a caller-provided listener.
func (s *Server) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *Server) Shutdown() error {
	s.health.Shutdown()
	s.server.GracefulStop()
	return nil
}
