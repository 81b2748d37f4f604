package main

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/signalsfoundry/astroconst/catalog"
	"github.com/signalsfoundry/astroconst/internal/constsvc"
	"github.com/signalsfoundry/astroconst/internal/logging"
	"github.com/signalsfoundry/astroconst/registry"
)

// source is where constants are read from: the in-process catalog or a
// remote astroconst-server. *constsvc.Client satisfies it directly.
type source interface {
	Lookup(ctx context.Context, namespace, name string) (registry.Constant, error)
	Label(ctx context.Context, table string, index int) (string, error)
	Names(ctx context.Context, namespace string) ([]string, error)
	Tables(ctx context.Context) ([]string, error)
	Version(ctx context.Context) (string, error)
}

var _ source = (*constsvc.Client)(nil)

type localSource struct {
	reg *registry.Registry
}

func newLocalSource(ctx context.Context, log logging.Logger) (*localSource, error) {
	reg, err := catalog.Build(ctx, registry.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &localSource{reg: reg}, nil
}

func (s *localSource) Lookup(_ context.Context, namespace, name string) (registry.Constant, error) {
	return s.reg.Lookup(namespace, name)
}

func (s *localSource) Label(_ context.Context, table string, index int) (string, error) {
	return s.reg.Label(table, index)
}

func (s *localSource) Names(_ context.Context, namespace string) ([]string, error) {
	return s.reg.Names(namespace)
}

func (s *localSource) Tables(context.Context) ([]string, error) {
	return s.reg.Tables(), nil
}

func (s *localSource) Version(context.Context) (string, error) {
	return s.reg.Version(), nil
}

// dialRemote connects to an astroconst-server. The connection is lazy; the
// first RPC surfaces dial errors.
func dialRemote(addr string) (*constsvc.Client, func() error, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(constsvc.RequestIDUnaryClientInterceptor()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return constsvc.NewClient(conn), conn.Close, nil
}
