package constsvc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/signalsfoundry/astroconst/internal/logging"
	"github.com/signalsfoundry/astroconst/internal/observability"
	"github.com/signalsfoundry/astroconst/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	b := registry.NewBuilder("test/1")
	for _, ns := range []registry.Namespace{
		{Name: "base", Provenance: registry.ProvenanceLocal},
		{Name: "derived", Provenance: registry.ProvenanceDerived},
	} {
		if err := b.AddNamespace(ns); err != nil {
			t.Fatalf("AddNamespace(%s): %v", ns.Name, err)
		}
	}
	if err := b.Define(registry.Constant{Namespace: "base", Name: "pi", Value: 3.141592653589793, Unit: "1"}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := b.Derive(registry.Derivation{
		Target:  registry.Ref{Namespace: "derived", Name: "d2r"},
		Unit:    "rad/deg",
		Inputs:  registry.MustRefs("base.pi"),
		Formula: func(v []float64) float64 { return v[0] / 180 },
	}); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if err := b.AddFamily(registry.LabelFamily{
		Name: "weekday", First: 0, Last: 6,
		Tables: []registry.LabelTable{{
			Name:    "weekday_en",
			Entries: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		}},
	}); err != nil {
		t.Fatalf("AddFamily: %v", err)
	}
	reg, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return reg
}

type harness struct {
	client  *Client
	conn    *grpc.ClientConn
	metrics *observability.Collector
}

func startServer(t *testing.T) *harness {
	t.Helper()

	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	server := NewServer(testRegistry(t), logging.Noop(), metrics)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(RequestIDUnaryClientInterceptor()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{client: NewClient(conn), conn: conn, metrics: metrics}
}

func TestClientLookup(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	c, err := h.client.Lookup(ctx, "derived", "d2r")
	if err != nil {
		t.Fatalf("Lookup(derived.d2r) error: %v", err)
	}
	if c.Value != 3.141592653589793/180 {
		t.Errorf("derived.d2r = %v, want pi/180", c.Value)
	}
	if !c.Derived || len(c.Inputs) != 1 || c.Inputs[0].String() != "base.pi" {
		t.Errorf("derived.d2r record = %+v, want derived from base.pi", c)
	}
	if c.Unit != "rad/deg" {
		t.Errorf("derived.d2r unit = %q, want rad/deg", c.Unit)
	}

	v, err := h.client.Constant(ctx, "base", "pi")
	if err != nil || v != 3.141592653589793 {
		t.Errorf("Constant(base.pi) = %v, %v", v, err)
	}

	if got := testutil.ToFloat64(h.metrics.Lookups.WithLabelValues(observability.LookupConstant, "derived", "ok")); got != 1 {
		t.Errorf("astroconst_lookups_total{constant,derived,ok} = %v, want 1", got)
	}
}

func TestClientMapsStatusToSentinels(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
		code codes.Code
	}{
		{"unknown constant", func() error { _, err := h.client.Constant(ctx, "base", "nope"); return err }, registry.ErrNotFound, codes.NotFound},
		{"unknown namespace", func() error { _, err := h.client.Names(ctx, "nope"); return err }, registry.ErrNotFound, codes.NotFound},
		{"unknown table", func() error { _, err := h.client.Label(ctx, "weekday_xx", 0); return err }, registry.ErrNotFound, codes.NotFound},
		{"index past end", func() error { _, err := h.client.Label(ctx, "weekday_en", 7); return err }, registry.ErrIndexOutOfRange, codes.OutOfRange},
		{"negative index", func() error { _, err := h.client.Label(ctx, "weekday_en", -1); return err }, registry.ErrIndexOutOfRange, codes.OutOfRange},
		{"empty name", func() error { _, err := h.client.Constant(ctx, "base", ""); return err }, ErrInvalidRequest, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if status.Code(err) != tt.code {
				t.Fatalf("status code = %v, want %v", status.Code(err), tt.code)
			}
		})
	}
}

func TestClientLabelsAndListings(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	if got, err := h.client.Label(ctx, "weekday_en", 0); err != nil || got != "Sunday" {
		t.Errorf("Label(weekday_en, 0) = %q, %v; want Sunday", got, err)
	}
	if got, err := h.client.Label(ctx, "weekday_en", 6); err != nil || got != "Saturday" {
		t.Errorf("Label(weekday_en, 6) = %q, %v; want Saturday", got, err)
	}

	names, err := h.client.Names(ctx, "base")
	if err != nil || len(names) != 1 || names[0] != "pi" {
		t.Errorf("Names(base) = %v, %v; want [pi]", names, err)
	}
	tables, err := h.client.Tables(ctx)
	if err != nil || len(tables) != 1 || tables[0] != "weekday_en" {
		t.Errorf("Tables() = %v, %v; want [weekday_en]", tables, err)
	}
	version, err := h.client.Version(ctx)
	if err != nil || version != "test/1" {
		t.Errorf("Version() = %q, %v; want test/1", version, err)
	}
}

func TestGetLabelRejectsFractionalIndex(t *testing.T) {
	h := startServer(t)

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldTable: structpb.NewStringValue("weekday_en"),
		fieldIndex: structpb.NewNumberValue(1.5),
	}}
	err := h.conn.Invoke(context.Background(), GetLabelMethod, req, new(wrapperspb.StringValue))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("GetLabel(1.5) code = %v, want InvalidArgument (err=%v)", status.Code(err), err)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	h := startServer(t)

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	var header metadata.MD
	err := h.conn.Invoke(ctx, GetVersionMethod, &emptypb.Empty{}, new(wrapperspb.StringValue), grpc.Header(&header))
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if got := firstHeader(header, RequestIDMetadataKey); got != "req-42" {
		t.Fatalf("response %s = %q, want req-42", RequestIDMetadataKey, got)
	}

	header = nil
	if err := h.conn.Invoke(context.Background(), GetVersionMethod, &emptypb.Empty{}, new(wrapperspb.StringValue), grpc.Header(&header)); err != nil {
		t.Fatalf("GetVersion without id: %v", err)
	}
	if got := firstHeader(header, RequestIDMetadataKey); got == "" || got == "req-42" {
		t.Fatalf("generated %s = %q, want a fresh id", RequestIDMetadataKey, got)
	}
}
