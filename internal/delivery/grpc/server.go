package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// Server is the operational gRPC endpoint: standard health checks and
// reflection, no business RPCs.
type Server struct {
	*grpclib.Server
	health *health.Server
	log    *logrus.Logger
}

func NewServer(logger *logrus.Logger) *Server {
	s := grpclib.NewServer(grpclib.ChainUnaryInterceptor(LoggingInterceptor(logger)))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return &Server{Server: s, health: hs, log: logger}
}

// SetServing flips the overall health status reported to checkers.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.log.Infof("gRPC health status set to %s", st)
}

// Shutdown reports NOT_SERVING, then drains in-flight calls.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}

func LoggingInterceptor(logger *logrus.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.Warnf("gRPC call failed: %v", err)
		} else {
			entry.Debug("gRPC call completed")
		}
		return resp, err
	}
}
