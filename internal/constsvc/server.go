package constsvc

import (
	"google.golang.org/grpc"

	"github.com/signalsfoundry/astroconst/internal/logging"
	"github.com/signalsfoundry/astroconst/internal/observability"
	"github.com/signalsfoundry/astroconst/registry"
)

// NewServer returns a grpc.Server with the constant service registered and
// the request id, tracing and metrics interceptors chained in that order.
// metrics may be nil.
func NewServer(reg *registry.Registry, log logging.Logger, metrics *observability.Collector, opts ...grpc.ServerOption) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{
		RequestIDUnaryServerInterceptor(log),
		TracingUnaryServerInterceptor(),
	}
	if metrics != nil {
		interceptors = append(interceptors, metrics.UnaryServerInterceptor())
	}

	opts = append(opts, grpc.ChainUnaryInterceptor(interceptors...))
	server := grpc.NewServer(opts...)
	RegisterConstantServiceServer(server, NewService(reg, log, metrics))
	return server
}
