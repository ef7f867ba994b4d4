package server

import (
	"log"

	"github.com/golang/protobuf/ptypes/wrappers"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nelhage/tictactician/notation"
)

const ServiceName = "tictactician.Engine"

// EngineServer is the gRPC surface. Requests and responses are
// well-known wrapper types, so no generated code is needed.
type EngineServer interface {
	BestMove(context.Context, *wrappers.StringValue) (*wrappers.Int32Value, error)
	Analyze(context.Context, *wrappers.StringValue) (*structpb.Struct, error)
	Winner(context.Context, *wrappers.StringValue) (*wrappers.StringValue, error)
	Canonicalize(context.Context, *wrappers.StringValue) (*wrappers.StringValue, error)
}

type server struct {
	engine *Engine
	debug  int
}

func NewServer(e *Engine, debug int) EngineServer {
	return &server{engine: e, debug: debug}
}

func Register(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&serviceDesc, srv)
}

func statusError(method string, err error) error {
	code := codes.Internal
	switch KindOf(err) {
	case BadRequest:
		code = codes.InvalidArgument
	case Conflict:
		code = codes.FailedPrecondition
	}
	return status.Errorf(code, "%s: %v", method, err)
}

func (s *server) BestMove(ctx context.Context, req *wrappers.StringValue) (*wrappers.Int32Value, error) {
	p, err := s.engine.Position(req.GetValue())
	if err != nil {
		return nil, statusError("BestMove", err)
	}
	a, err := s.engine.Analyze(p)
	if err != nil {
		return nil, statusError("BestMove", err)
	}
	if s.debug > 0 {
		log.Printf("[server] BestMove position=%q move=%s value=%d",
			req.GetValue(), notation.FormatMove(a.Move), a.Value)
	}
	return &wrappers.Int32Value{Value: int32(a.Move)}, nil
}

func (s *server) Analyze(ctx context.Context, req *wrappers.StringValue) (*structpb.Struct, error) {
	p, err := s.engine.Position(req.GetValue())
	if err != nil {
		return nil, statusError("Analyze", err)
	}
	a, err := s.engine.Analyze(p)
	if err != nil {
		return nil, statusError("Analyze", err)
	}
	cands := make([]interface{}, 0, len(a.Candidates))
	for _, c := range a.Candidates {
		cands = append(cands, map[string]interface{}{
			"move":  c.Move,
			"cell":  notation.FormatMove(c.Move),
			"score": c.Score,
			"value": c.Value,
		})
	}
	resp, err := structpb.NewStruct(map[string]interface{}{
		"move":       a.Move,
		"cell":       notation.FormatMove(a.Move),
		"value":      a.Value,
		"candidates": cands,
		"nodes":      int64(a.Stats.Visited),
		"tthits":     int64(a.Stats.TTHits),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Analyze: %v", err)
	}
	return resp, nil
}

func (s *server) Winner(ctx context.Context, req *wrappers.StringValue) (*wrappers.StringValue, error) {
	w, _, err := s.engine.Winner(req.GetValue())
	if err != nil {
		return nil, statusError("Winner", err)
	}
	return &wrappers.StringValue{Value: MarkName(w)}, nil
}

func (s *server) Canonicalize(ctx context.Context, req *wrappers.StringValue) (*wrappers.StringValue, error) {
	ms, err := s.engine.Canonicalize(req.GetValue())
	if err != nil {
		return nil, statusError("Canonicalize", err)
	}
	return &wrappers.StringValue{Value: ms}, nil
}

func unaryHandler(method string, call func(EngineServer, context.Context, *wrappers.StringValue) (interface{}, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(wrappers.StringValue)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EngineServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: full,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(EngineServer), ctx, req.(*wrappers.StringValue))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("BestMove", func(s EngineServer, ctx context.Context, in *wrappers.StringValue) (interface{}, error) {
			return s.BestMove(ctx, in)
		}),
		unaryHandler("Analyze", func(s EngineServer, ctx context.Context, in *wrappers.StringValue) (interface{}, error) {
			return s.Analyze(ctx, in)
		}),
		unaryHandler("Winner", func(s EngineServer, ctx context.Context, in *wrappers.StringValue) (interface{}, error) {
			return s.Winner(ctx, in)
		}),
		unaryHandler("Canonicalize", func(s EngineServer, ctx context.Context, in *wrappers.StringValue) (interface{}, error) {
			return s.Canonicalize(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tictactician/engine.proto",
}
