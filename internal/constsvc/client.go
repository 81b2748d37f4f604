package constsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/signalsfoundry/astroconst/registry"
)

// Client reads constants from a remote ConstantService. Errors match the
// registry sentinels with errors.Is, as they would for a local lookup.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Lookup returns the full record of namespace.name.
func (c *Client) Lookup(ctx context.Context, namespace, name string) (registry.Constant, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetConstantMethod, ConstantRequest(namespace, name), out); err != nil {
		return registry.Constant{}, FromStatusError(err)
	}
	return constantFromStruct(out)
}

// Constant returns the value of namespace.name.
func (c *Client) Constant(ctx context.Context, namespace, name string) (float64, error) {
	rec, err := c.Lookup(ctx, namespace, name)
	if err != nil {
		return 0, err
	}
	return rec.Value, nil
}

// Label returns entry index of table.
func (c *Client) Label(ctx context.Context, table string, index int) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetLabelMethod, LabelRequest(table, index), out); err != nil {
		return "", FromStatusError(err)
	}
	return out.GetValue(), nil
}

// Names lists a namespace in definition order.
func (c *Client) Names(ctx context.Context, namespace string) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListNamesMethod, wrapperspb.String(namespace), out); err != nil {
		return nil, FromStatusError(err)
	}
	return listToStrings(out), nil
}

// Tables lists the label tables.
func (c *Client) Tables(ctx context.Context) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListTablesMethod, &emptypb.Empty{}, out); err != nil {
		return nil, FromStatusError(err)
	}
	return listToStrings(out), nil
}

// Version returns the content version of the remote registry.
func (c *Client) Version(ctx context.Context) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetVersionMethod, &emptypb.Empty{}, out); err != nil {
		return "", FromStatusError(err)
	}
	return out.GetValue(), nil
}
