// Package enginerpc describes the go_engine.GameService gRPC service.
// Requests and responses are google.protobuf.Struct messages whose fields
// mirror the JSON bodies of the HTTP API.
package enginerpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "go_engine.GameService"

const (
	MethodNewGame  = "NewGame"
	MethodPlay     = "Play"
	MethodPass     = "Pass"
	MethodResign   = "Resign"
	MethodUndo     = "Undo"
	MethodRedo     = "Redo"
	MethodGetState = "GetState"
	MethodGetGroup = "GetGroup"
	MethodExport   = "Export"
	MethodImport   = "Import"
)

// ErrorDomain tags the ErrorInfo detail attached to failed calls; its
// Reason is the engine reason tag.
const ErrorDomain = "go_engine"

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type GameServiceServer interface {
	NewGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Play(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Pass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Resign(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Undo(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Redo(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGroup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Export(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Import(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedGameServiceServer answers every call with codes.Unimplemented.
type UnimplementedGameServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedGameServiceServer) NewGame(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodNewGame)
}
func (UnimplementedGameServiceServer) Play(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodPlay)
}
func (UnimplementedGameServiceServer) Pass(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodPass)
}
func (UnimplementedGameServiceServer) Resign(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodResign)
}
func (UnimplementedGameServiceServer) Undo(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodUndo)
}
func (UnimplementedGameServiceServer) Redo(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodRedo)
}
func (UnimplementedGameServiceServer) GetState(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetState)
}
func (UnimplementedGameServiceServer) GetGroup(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetGroup)
}
func (UnimplementedGameServiceServer) Export(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodExport)
}
func (UnimplementedGameServiceServer) Import(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodImport)
}

type unaryCall func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		impl := srv.(GameServiceServer)
		if interceptor == nil {
			return call(impl, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(impl, ctx, req.(*structpb.Struct))
		})
	}
}

var GameService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodNewGame, Handler: unaryHandler(MethodNewGame, GameServiceServer.NewGame)},
		{MethodName: MethodPlay, Handler: unaryHandler(MethodPlay, GameServiceServer.Play)},
		{MethodName: MethodPass, Handler: unaryHandler(MethodPass, GameServiceServer.Pass)},
		{MethodName: MethodResign, Handler: unaryHandler(MethodResign, GameServiceServer.Resign)},
		{MethodName: MethodUndo, Handler: unaryHandler(MethodUndo, GameServiceServer.Undo)},
		{MethodName: MethodRedo, Handler: unaryHandler(MethodRedo, GameServiceServer.Redo)},
		{MethodName: MethodGetState, Handler: unaryHandler(MethodGetState, GameServiceServer.GetState)},
		{MethodName: MethodGetGroup, Handler: unaryHandler(MethodGetGroup, GameServiceServer.GetGroup)},
		{MethodName: MethodExport, Handler: unaryHandler(MethodExport, GameServiceServer.Export)},
		{MethodName: MethodImport, Handler: unaryHandler(MethodImport, GameServiceServer.Import)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "engine.proto",
}

func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameService_ServiceDesc, srv)
}

type GameServiceClient interface {
	NewGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Play(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Pass(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Resign(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Undo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Redo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetGroup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Export(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Import(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type gameServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGameServiceClient(cc grpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc: cc}
}

func (c *gameServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) NewGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodNewGame, in, opts)
}

func (c *gameServiceClient) Play(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPlay, in, opts)
}

func (c *gameServiceClient) Pass(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPass, in, opts)
}

func (c *gameServiceClient) Resign(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodResign, in, opts)
}

func (c *gameServiceClient) Undo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUndo, in, opts)
}

func (c *gameServiceClient) Redo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRedo, in, opts)
}

func (c *gameServiceClient) GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetState, in, opts)
}

func (c *gameServiceClient) GetGroup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetGroup, in, opts)
}

func (c *gameServiceClient) Export(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodExport, in, opts)
}

func (c *gameServiceClient) Import(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodImport, in, opts)
}
