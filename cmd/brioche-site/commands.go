package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brioche-dev/brioche-website/internal/build"
	"github.com/brioche-dev/brioche-website/internal/preview"
	"github.com/brioche-dev/brioche-website/internal/redirects"
)

// BuildCmd renders the site once.
type BuildCmd struct{}

func (c *BuildCmd) Run(g *Global) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b, err := build.New(g.Config, g.Logger)
	if err != nil {
		return err
	}
	_, err = b.Run(ctx)
	return err
}

// ServeCmd builds the site and serves the output directory.
type ServeCmd struct {
	Port  string `short:"p" help:"Port to listen on; overrides PORT."`
	Watch bool   `short:"w" help:"Rebuild when content or public files change; overrides WATCH."`
}

func (c *ServeCmd) Run(g *Global) error {
	cfg, log := g.Config, g.Logger
	if c.Port != "" {
		cfg.Port = c.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b, err := build.New(cfg, log)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	metrics := preview.NewMetrics(reg)

	rebuild := func(ctx context.Context) error {
		_, err := b.Run(ctx)
		metrics.ObserveBuild(err)
		return err
	}
	// A broken initial build still serves whatever output exists.
	if err := rebuild(ctx); err != nil {
		log.Warn("initial build failed", "error", err)
	}

	var watcher *preview.Watcher
	if c.Watch || cfg.Watch {
		watcher = preview.NewWatcher([]string{cfg.ContentDir, cfg.PublicDir}, rebuild, log)
		if err := watcher.Start(ctx); err != nil {
			return err
		}
	}

	srv := preview.NewServer(b.Status(), metrics, reg, log, cfg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		if watcher != nil {
			watcher.Stop()
		}
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting preview", "port", cfg.Port, "output", cfg.OutputDir, "watch", watcher != nil)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RedirectsCmd prints the _redirects table.
type RedirectsCmd struct{}

func (c *RedirectsCmd) Run(g *Global) error {
	_, err := fmt.Fprint(os.Stdout, redirects.Compile(g.Config.Site.Redirects))
	return err
}

// FeedCmd prints the RSS document for the current blog content.
type FeedCmd struct{}

func (c *FeedCmd) Run(g *Global) error {
	b, err := build.New(g.Config, g.Logger)
	if err != nil {
		return err
	}
	rss, err := b.Feed(context.Background())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(rss)
	return err
}
