package constsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "astroconst.v1.ConstantService"

// Full method names.
const (
	GetConstantMethod = "/" + ServiceName + "/GetConstant"
	GetLabelMethod    = "/" + ServiceName + "/GetLabel"
	ListNamesMethod   = "/" + ServiceName + "/ListNames"
	ListTablesMethod  = "/" + ServiceName + "/ListTables"
	GetVersionMethod  = "/" + ServiceName + "/GetVersion"
)

// ConstantServiceServer is the server API for the constant service. Messages
// are protobuf well-known types so no generated code is needed on either end:
//
//	GetConstant  Struct{namespace, name}   -> Struct (constant record)
//	GetLabel     Struct{table, index}      -> StringValue
//	ListNames    StringValue (namespace)   -> ListValue of names
//	ListTables   Empty                     -> ListValue of table names
//	GetVersion   Empty                     -> StringValue
type ConstantServiceServer interface {
	GetConstant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLabel(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	ListNames(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	ListTables(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetVersion(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// RegisterConstantServiceServer registers srv on s.
func RegisterConstantServiceServer(s grpc.ServiceRegistrar, srv ConstantServiceServer) {
	s.RegisterService(&ConstantServiceDesc, srv)
}

// ConstantServiceDesc describes the constant service to grpc.
var ConstantServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConstantServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetConstant", Handler: getConstantHandler},
		{MethodName: "GetLabel", Handler: getLabelHandler},
		{MethodName: "ListNames", Handler: listNamesHandler},
		{MethodName: "ListTables", Handler: listTablesHandler},
		{MethodName: "GetVersion", Handler: getVersionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "astroconst/v1/constant_service.proto",
}

// unary decodes a request of type Req and dispatches it through the
// interceptor chain.
func unary[Req any, Resp any](
	fullMethod string,
	call func(ConstantServiceServer, context.Context, *Req) (Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ConstantServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ConstantServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	getConstantHandler = unary(GetConstantMethod, ConstantServiceServer.GetConstant)
	getLabelHandler    = unary(GetLabelMethod, ConstantServiceServer.GetLabel)
	listNamesHandler   = unary(ListNamesMethod, ConstantServiceServer.ListNames)
	listTablesHandler  = unary(ListTablesMethod, ConstantServiceServer.ListTables)
	getVersionHandler  = unary(GetVersionMethod, ConstantServiceServer.GetVersion)
)
