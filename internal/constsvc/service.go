// Package constsvc serves a constant registry over gRPC and provides a typed
// client for it.
package constsvc

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/signalsfoundry/astroconst/internal/logging"
	"github.com/signalsfoundry/astroconst/internal/observability"
	"github.com/signalsfoundry/astroconst/registry"
)

// Service implements ConstantServiceServer over an immutable registry. It
// holds no mutable state, so a single instance serves all connections.
type Service struct {
	reg     *registry.Registry
	log     logging.Logger
	metrics *observability.Collector
}

var _ ConstantServiceServer = (*Service)(nil)

// NewService returns a service answering from reg. log and metrics may be nil.
func NewService(reg *registry.Registry, log logging.Logger, metrics *observability.Collector) *Service {
	if log == nil {
		log = logging.Noop()
	}
	return &Service{reg: reg, log: log, metrics: metrics}
}

// GetConstant returns the full record of namespace.name.
func (s *Service) GetConstant(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ns, err := stringField(req, fieldNamespace)
	if err != nil {
		return nil, ToStatusError(err)
	}
	name, err := stringField(req, fieldName)
	if err != nil {
		return nil, ToStatusError(err)
	}

	ctx, span := StartChildSpan(ctx, "registry.Lookup", "constant", ns+"."+name)
	defer span.End()

	c, err := s.reg.Lookup(ns, name)
	s.metrics.RecordLookup(observability.LookupConstant, ns, err)
	if err != nil {
		span.RecordError(err)
		s.logger(ctx).Debug(ctx, "constant lookup failed",
			logging.String("namespace", ns),
			logging.String("name", name),
			logging.Err(err),
		)
		return nil, ToStatusError(err)
	}
	span.SetAttributes(attribute.Bool("constant.derived", c.Derived))
	return constantToStruct(c), nil
}

// GetLabel returns one entry of a label table.
func (s *Service) GetLabel(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	table, err := stringField(req, fieldTable)
	if err != nil {
		return nil, ToStatusError(err)
	}
	index, err := indexField(req, fieldIndex)
	if err != nil {
		return nil, ToStatusError(err)
	}

	label, err := s.reg.Label(table, index)
	s.metrics.RecordLookup(observability.LookupLabel, table, err)
	if err != nil {
		s.logger(ctx).Debug(ctx, "label lookup failed",
			logging.String("table", table),
			logging.Int("index", index),
			logging.Err(err),
		)
		return nil, ToStatusError(err)
	}
	return wrapperspb.String(label), nil
}

// ListNames lists a namespace in definition order.
func (s *Service) ListNames(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	ns := req.GetValue()
	names, err := s.reg.Names(ns)
	s.metrics.RecordLookup(observability.LookupNames, ns, err)
	if err != nil {
		return nil, ToStatusError(err)
	}
	return stringsToList(names), nil
}

// ListTables lists every label table in declaration order.
func (s *Service) ListTables(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return stringsToList(s.reg.Tables()), nil
}

// GetVersion reports the content version of the served registry.
func (s *Service) GetVersion(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.reg.Version()), nil
}

func (s *Service) logger(ctx context.Context) logging.Logger {
	return logging.FromContext(ctx, s.log)
}
