package server

import (
	"context"
	"net"
	"testing"

	"github.com/golang/protobuf/ptypes/wrappers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/ttt"
)

func dial(t *testing.T) *EngineClient {
	t.Helper()
	lis := bufconn.Listen(1 << 16)
	s := grpc.NewServer()
	Register(s, NewServer(NewEngine(ai.MinimaxConfig{}), 0))
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	cc, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { cc.Close() })
	return NewClient(cc)
}

func str(s string) *wrappers.StringValue {
	return &wrappers.StringValue{Value: s}
}

func TestBestMove(t *testing.T) {
	c := dial(t)
	ctx := context.Background()
	cases := []struct {
		pos  string
		want int32
	}{
		{".../.../... x", 4},
		{"oo./x../... o", 2},
		{"xx./.../... o", 2},
	}
	for _, tc := range cases {
		resp, err := c.BestMove(ctx, str(tc.pos))
		require.NoError(t, err, tc.pos)
		assert.Equal(t, tc.want, resp.GetValue(), tc.pos)
	}
}

func TestBestMoveErrors(t *testing.T) {
	c := dial(t)
	ctx := context.Background()
	cases := []struct {
		pos  string
		code codes.Code
	}{
		{"garbage", codes.InvalidArgument},
		{"xx./.../...", codes.InvalidArgument},
		{"xx./.../... q", codes.InvalidArgument},
		{"xox/xoo/oxx o", codes.FailedPrecondition},
		{"xxx/oo./... o", codes.FailedPrecondition},
		{"xxx/ooo/... o", codes.FailedPrecondition},
	}
	for _, tc := range cases {
		_, err := c.BestMove(ctx, str(tc.pos))
		require.Error(t, err, tc.pos)
		assert.Equal(t, tc.code, status.Code(err), "%s: %v", tc.pos, err)
	}
}

func TestAnalyze(t *testing.T) {
	c := dial(t)
	resp, err := c.Analyze(context.Background(), str("xx./.../... o"))
	require.NoError(t, err)
	f := resp.GetFields()
	assert.Equal(t, 2.0, f["move"].GetNumberValue())
	assert.Equal(t, "c1", f["cell"].GetStringValue())
	assert.Equal(t, float64(-ai.WinValue+3), f["value"].GetNumberValue())
	assert.NotZero(t, f["nodes"].GetNumberValue())
	cands := f["candidates"].GetListValue().GetValues()
	require.Len(t, cands, 7)
	first := cands[0].GetStructValue().GetFields()
	assert.Equal(t, 2.0, first["move"].GetNumberValue())
	assert.Equal(t, float64(ai.BlockScore), first["score"].GetNumberValue())
}

func TestWinner(t *testing.T) {
	c := dial(t)
	ctx := context.Background()
	for board, want := range map[string]string{
		"xxx/oo./...": "x",
		"x../oooxx./": "",
		"o../xo./x.o": "o",
		".../.../...": "",
	} {
		resp, err := c.Winner(ctx, str(board))
		if board == "x../oooxx./" {
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			continue
		}
		require.NoError(t, err, board)
		assert.Equal(t, want, resp.GetValue(), board)
	}

	_, err := c.Winner(ctx, str("xxx/ooo/..."))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestCanonicalize(t *testing.T) {
	c := dial(t)
	resp, err := c.Canonicalize(context.Background(), str("b2 a2 c3"))
	require.NoError(t, err)
	assert.Equal(t, "b2 b1 a3", resp.GetValue())

	_, err = c.Canonicalize(context.Background(), str("b2 b2"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.Canonicalize(context.Background(), str("z9"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRemotePlayer(t *testing.T) {
	c := dial(t)
	pl := c.Player()
	local := ai.NewMinimax(ai.MinimaxConfig{})
	ctx := context.Background()
	p := ttt.New(ttt.X)
	for {
		if over, _ := p.GameOver(); over {
			break
		}
		got, err := pl.GetMove(ctx, p)
		require.NoError(t, err)
		want, err := local.GetMove(ctx, p)
		require.NoError(t, err)
		require.Equal(t, want, got)
		p, err = p.Move(got)
		require.NoError(t, err)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Conflict, KindOf(ttt.ErrNoLegalMove))
	assert.Equal(t, BadRequest, KindOf(ttt.ErrInvalidBoard))
	assert.Equal(t, Internal, KindOf(context.Canceled))
}
