package serve

import (
	"context"
	"flag"
	"log"
	"net"

	"github.com/google/subcommands"
	"github.com/zeromicro/go-zero/core/conf"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/httpapi"
	"github.com/nelhage/tictactician/server"
)

// Config is the shape of the optional -config file. Flags given on
// the command line override it.
type Config struct {
	GRPC    string `json:",optional"`
	HTTP    string `json:",optional"`
	Debug   int    `json:",optional"`
	Pprof   bool   `json:",optional"`
	NoTable bool   `json:",optional"`
}

type Command struct {
	config string
	cfg    Config
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve Tictactician RPCs via GRPC and HTTP" }
func (*Command) Usage() string {
	return `serve [-grpc ADDR] [-http ADDR] [-config FILE]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.config, "config", "", "yaml/json config file")
	flags.StringVar(&c.cfg.GRPC, "grpc", ":55430", "gRPC bind address (empty to disable)")
	flags.StringVar(&c.cfg.HTTP, "http", "", "HTTP bind address (empty to disable)")
	flags.IntVar(&c.cfg.Debug, "debug", 0, "debug level")
	flags.BoolVar(&c.cfg.Pprof, "pprof", false, "serve /debug/pprof on the HTTP listener")
	flags.BoolVar(&c.cfg.NoTable, "no-table", false, "disable the transposition table")
}

// Load reads path into defaults, then reapplies every flag that was
// set explicitly.
func Load(path string, flags *flag.FlagSet, defaults Config) (Config, error) {
	cfg := defaults
	if path == "" {
		return cfg, nil
	}
	var file Config
	if err := conf.Load(path, &file); err != nil {
		return cfg, err
	}
	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["grpc"] && file.GRPC != "" {
		cfg.GRPC = file.GRPC
	}
	if !set["http"] && file.HTTP != "" {
		cfg.HTTP = file.HTTP
	}
	if !set["debug"] && file.Debug != 0 {
		cfg.Debug = file.Debug
	}
	if !set["pprof"] && file.Pprof {
		cfg.Pprof = true
	}
	if !set["no-table"] && file.NoTable {
		cfg.NoTable = true
	}
	return cfg, nil
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := Load(c.config, flag, c.cfg)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GRPC == "" && cfg.HTTP == "" {
		log.Fatal("nothing to serve: both -grpc and -http are empty")
	}
	engine := server.NewEngine(ai.MinimaxConfig{
		Debug:   cfg.Debug,
		NoTable: cfg.NoTable,
	})

	g, ctx := errgroup.WithContext(ctx)
	if cfg.GRPC != "" {
		lis, err := net.Listen("tcp", cfg.GRPC)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}
		grpcServer := grpc.NewServer()
		server.Register(grpcServer, server.NewServer(engine, cfg.Debug))
		reflection.Register(grpcServer)
		log.Printf("gRPC listening on %s", lis.Addr())
		g.Go(func() error { return grpcServer.Serve(lis) })
		g.Go(func() error {
			<-ctx.Done()
			grpcServer.GracefulStop()
			return nil
		})
	}
	if cfg.HTTP != "" {
		router := httpapi.NewRouter(engine, httpapi.Config{Debug: cfg.Debug, Profile: cfg.Pprof})
		log.Printf("HTTP listening on %s", cfg.HTTP)
		g.Go(func() error { return router.Run(cfg.HTTP) })
	}
	if err := g.Wait(); err != nil {
		log.Printf("serve: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
