package server

import (
	"github.com/golang/protobuf/ptypes/wrappers"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type EngineClient struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *EngineClient {
	return &EngineClient{cc: cc}
}

func (c *EngineClient) BestMove(ctx context.Context, in *wrappers.StringValue, opts ...grpc.CallOption) (*wrappers.Int32Value, error) {
	out := new(wrappers.Int32Value)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/BestMove", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EngineClient) Analyze(ctx context.Context, in *wrappers.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Analyze", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EngineClient) Winner(ctx context.Context, in *wrappers.StringValue, opts ...grpc.CallOption) (*wrappers.StringValue, error) {
	out := new(wrappers.StringValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Winner", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EngineClient) Canonicalize(ctx context.Context, in *wrappers.StringValue, opts ...grpc.CallOption) (*wrappers.StringValue, error) {
	out := new(wrappers.StringValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Canonicalize", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Player plays moves chosen by a remote engine.
func (c *EngineClient) Player() *RemotePlayer {
	return &RemotePlayer{c: c}
}

type RemotePlayer struct {
	c *EngineClient
}

func (r *RemotePlayer) GetMove(ctx context.Context, p *ttt.Position) (int, error) {
	resp, err := r.c.BestMove(ctx, &wrappers.StringValue{Value: notation.FormatPosition(p)})
	if err != nil {
		return 0, err
	}
	return int(resp.GetValue()), nil
}
