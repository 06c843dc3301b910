package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitedata/internal/build"
	"git.home.luguber.info/inful/sitedata/internal/config"
	"git.home.luguber.info/inful/sitedata/internal/events"
	"git.home.luguber.info/inful/sitedata/internal/gitmeta"
	"git.home.luguber.info/inful/sitedata/internal/logfields"
	"git.home.luguber.info/inful/sitedata/internal/metrics"
	"git.home.luguber.info/inful/sitedata/internal/state"
	"git.home.luguber.info/inful/sitedata/internal/version"
	"git.home.luguber.info/inful/sitedata/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitedata.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Force bool `short:"f" help:"Rebuild even when content is unchanged"`
	} `cmd:"" help:"Generate all metadata artifacts once"`

	Watch struct {
		Force bool `short:"f" help:"Force the initial build"`
	} `cmd:"" help:"Build, then rebuild on content changes"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	kctx := kong.Parse(&CLI)

	switch kctx.Command() {
	case "version":
		fmt.Printf("sitedata %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", CLI.Config)
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder, cleanup, err := assemble(cfg)
	if err != nil {
		slog.Error("startup failed", logfields.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	switch kctx.Command() {
	case "build":
		res, err := builder.Run(ctx, CLI.Build.Force)
		if err != nil {
			slog.Error("build failed", logfields.Error(err))
			os.Exit(1)
		}
		if res.Outcome == "failed" {
			os.Exit(1)
		}
	case "watch":
		if _, err := builder.Run(ctx, CLI.Watch.Force); err != nil {
			slog.Error("initial build failed", logfields.Error(err))
			os.Exit(1)
		}
		w, err := watch.New(cfg.Content.Dir,
			time.Duration(cfg.Watch.DebounceMillis)*time.Millisecond,
			cfg.Watch.Schedule,
			func(ctx context.Context, force bool) error {
				_, err := builder.Run(ctx, force)
				return err
			})
		if err != nil {
			slog.Error("watcher setup failed", logfields.Error(err))
			os.Exit(1)
		}
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("watcher failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

// assemble wires the builder's optional collaborators from configuration.
func assemble(cfg *config.Config) (*build.Builder, func(), error) {
	var opts []build.Option
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.State.Path != "" {
		store, err := state.Open(cfg.State.Path)
		if err != nil {
			return nil, cleanup, err
		}
		cleanups = append(cleanups, func() { _ = store.Close() })
		opts = append(opts, build.WithStore(store))
	}

	if resolver, err := gitmeta.Open(cfg.Content.Dir); err != nil {
		slog.Warn("git metadata unavailable", logfields.Error(err))
	} else if resolver != nil {
		opts = append(opts, build.WithGitResolver(resolver))
	}

	if cfg.Events.URL != "" {
		announcer, err := events.NewAnnouncer(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			return nil, cleanup, err
		}
		cleanups = append(cleanups, announcer.Close)
		opts = append(opts, build.WithAnnouncer(announcer))
	}

	if cfg.Metrics.Listen != "" {
		reg := prom.NewRegistry()
		opts = append(opts, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
		go serveMetrics(cfg.Metrics.Listen, reg)
	}

	return build.New(cfg, opts...), cleanup, nil
}

func serveMetrics(listen string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	slog.Info("metrics endpoint listening", slog.String("addr", listen))
	if err := http.ListenAndServe(listen, mux); err != nil {
		slog.Error("metrics endpoint failed", logfields.Error(err))
	}
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
