package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// PortfolioServiceName is the fully qualified gRPC service name
const PortfolioServiceName = "propertyflow.v1.PortfolioService"

// Method names of PortfolioService
const (
	MethodCreateSession = "CreateSession"
	MethodAddProperty   = "AddProperty"
	MethodImportTable   = "ImportTable"
	MethodGetTable      = "GetTable"
	MethodEndSession    = "EndSession"
)

// PortfolioServiceServer is the server API for PortfolioService.
// Requests and responses are google.protobuf.Struct messages whose fields
// are described on each Server method.
type PortfolioServiceServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportTable(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTable(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PortfolioServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// PortfolioServiceDesc describes PortfolioService for grpc.ServiceRegistrar
var PortfolioServiceDesc = grpc.ServiceDesc{
	ServiceName: PortfolioServiceName,
	HandlerType: (*PortfolioServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodCreateSession, PortfolioServiceServer.CreateSession),
		methodDesc(MethodAddProperty, PortfolioServiceServer.AddProperty),
		methodDesc(MethodImportTable, PortfolioServiceServer.ImportTable),
		methodDesc(MethodGetTable, PortfolioServiceServer.GetTable),
		methodDesc(MethodEndSession, PortfolioServiceServer.EndSession),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "propertyflow/v1/portfolio.proto",
}

// RegisterPortfolioServiceServer registers srv with a gRPC server
func RegisterPortfolioServiceServer(s grpc.ServiceRegistrar, srv PortfolioServiceServer) {
	s.RegisterService(&PortfolioServiceDesc, srv)
}

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + PortfolioServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PortfolioServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PortfolioServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// PortfolioServiceClient is the client API for PortfolioService
type PortfolioServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPortfolioServiceClient creates a client on top of an existing connection
func NewPortfolioServiceClient(cc grpc.ClientConnInterface) *PortfolioServiceClient {
	return &PortfolioServiceClient{cc: cc}
}

func (c *PortfolioServiceClient) CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateSession, in, opts...)
}

func (c *PortfolioServiceClient) AddProperty(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAddProperty, in, opts...)
}

func (c *PortfolioServiceClient) ImportTable(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodImportTable, in, opts...)
}

func (c *PortfolioServiceClient) GetTable(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetTable, in, opts...)
}

func (c *PortfolioServiceClient) EndSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodEndSession, in, opts...)
}

func (c *PortfolioServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+PortfolioServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
