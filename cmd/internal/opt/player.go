package opt

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/selfplay"
	"github.com/nelhage/tictactician/server"
	"github.com/nelhage/tictactician/tei"
)

// ParsePlayer resolves an engine spec:
//
//	rand[:SEED]     uniformly random legal moves
//	minimax         perfect play
//	tei:CMDLINE     an external engine speaking TEI on stdin/stdout
//	grpc:ADDR       a remote engine served by `serve -grpc`
//
// "human" is not an engine; callers handle it themselves.
func ParsePlayer(spec string, mm *Minimax) (selfplay.AIFactory, error) {
	name, arg, _ := strings.Cut(spec, ":")
	switch name {
	case "rand":
		var seed int64
		if arg != "" {
			i, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("rand seed: %w", err)
			}
			seed = i
		}
		return &randFactory{seed: seed}, nil
	case "minimax":
		return &minimaxFactory{cfg: mm.BuildConfig()}, nil
	case "tei":
		if arg == "" {
			return nil, fmt.Errorf("tei: missing command line")
		}
		return &teiFactory{cmdline: strings.Fields(arg)}, nil
	case "grpc":
		if arg == "" {
			return nil, fmt.Errorf("grpc: missing address")
		}
		return &grpcFactory{addr: arg}, nil
	}
	return nil, fmt.Errorf("unparseable player: %q", spec)
}

type minimaxFactory struct {
	cfg ai.MinimaxConfig
}

func (m *minimaxFactory) GetPlayer() (ai.Player, error) {
	return ai.NewMinimax(m.cfg), nil
}

func (m *minimaxFactory) String() string {
	return "minimax"
}

type randFactory struct {
	seed int64
	n    int64
}

// GetPlayer seeds each player differently so concurrent games do not
// repeat each other.
func (r *randFactory) GetPlayer() (ai.Player, error) {
	n := atomic.AddInt64(&r.n, 1) - 1
	return ai.NewRandom(r.seed + n), nil
}

func (r *randFactory) String() string {
	return fmt.Sprintf("rand:%d", r.seed)
}

type teiFactory struct {
	cmdline []string
}

type teiPlayer struct {
	ai.Player
	client *tei.Client
}

func (t *teiPlayer) Close() error {
	t.client.Close()
	return nil
}

func (t *teiFactory) GetPlayer() (ai.Player, error) {
	cl, err := tei.NewClient(t.cmdline)
	if err != nil {
		return nil, err
	}
	p, err := cl.NewGame()
	if err != nil {
		cl.Close()
		return nil, err
	}
	return &teiPlayer{Player: p, client: cl}, nil
}

func (t *teiFactory) String() string {
	return "tei:" + strings.Join(t.cmdline, " ")
}

type grpcFactory struct {
	addr string
}

type grpcPlayer struct {
	*server.RemotePlayer
	cc *grpc.ClientConn
}

func (g *grpcPlayer) Close() error {
	return g.cc.Close()
}

func (g *grpcFactory) GetPlayer() (ai.Player, error) {
	cc, err := grpc.Dial(g.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &grpcPlayer{
		RemotePlayer: server.NewClient(cc).Player(),
		cc:           cc,
	}, nil
}

func (g *grpcFactory) String() string {
	return "grpc:" + g.addr
}
