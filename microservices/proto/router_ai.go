// Package proto holds the RouterAI service. Its messages are the well-known
// wrapper types, so the service descriptor is written out by hand instead of
// being generated from a .proto file.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	RouterAIServiceName                = "signalsiege.ai.RouterAI"
	RouterAI_ChooseMove_FullMethodName = "/signalsiege.ai.RouterAI/ChooseMove"
)

// RouterAIClient asks for the AI move of a game. The request carries the game
// snapshot as JSON, the reply is a node id or "pass".
type RouterAIClient interface {
	ChooseMove(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type routerAIClient struct {
	cc grpc.ClientConnInterface
}

func NewRouterAIClient(cc grpc.ClientConnInterface) RouterAIClient {
	return &routerAIClient{cc}
}

func (c *routerAIClient) ChooseMove(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, RouterAI_ChooseMove_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type RouterAIServer interface {
	ChooseMove(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
}

// UnimplementedRouterAIServer can be embedded to have forward compatible implementations.
type UnimplementedRouterAIServer struct{}

func (UnimplementedRouterAIServer) ChooseMove(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ChooseMove not implemented")
}

func RegisterRouterAIServer(s grpc.ServiceRegistrar, srv RouterAIServer) {
	s.RegisterService(&RouterAI_ServiceDesc, srv)
}

func _RouterAI_ChooseMove_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RouterAIServer).ChooseMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RouterAI_ChooseMove_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RouterAIServer).ChooseMove(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

var RouterAI_ServiceDesc = grpc.ServiceDesc{
	ServiceName: RouterAIServiceName,
	HandlerType: (*RouterAIServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ChooseMove",
			Handler:    _RouterAI_ChooseMove_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "router_ai.proto",
}
