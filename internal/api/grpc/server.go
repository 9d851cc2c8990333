package api

import (
	"context"
	"log/slog"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name health checks may ask for besides the empty
// overall service.
const ServiceName = "departments_service"

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer reports SERVING while the database answers pings.
type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer

	store  Pinger
	logger *slog.Logger
}

func NewHealthServer(store Pinger, logger *slog.Logger) *HealthServer {
	return &HealthServer{
		store:  store,
		logger: logger,
	}
}

var _ grpc_health_v1.HealthServer = &HealthServer{}

func (s *HealthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if service := req.GetService(); service != "" && service != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", service)
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "Database is unreachable", slog.String("error", err.Error()))
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}

// NewServer create new gRPC server with the health service registered.
func NewServer(health *HealthServer) *grpc.Server {
	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, health)

	return srv
}

// NewHealthzHandler serves GET /healthz by calling Check over conn.
func NewHealthzHandler(conn grpc.ClientConnInterface) http.Handler {
	return gwruntime.NewServeMux(
		gwruntime.WithHealthzEndpoint(grpc_health_v1.NewHealthClient(conn)),
	)
}
