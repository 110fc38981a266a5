package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/brioche-dev/brioche-website/internal/config"
	"github.com/brioche-dev/brioche-website/internal/indoc"
)

var description = indoc.Dedent(`
	Builds and previews the Brioche website.

	Settings come from the environment, seeded from .env when present.
	The site definition is read from the YAML file named by SITE_CONFIG
	(default site.yaml); built-in defaults apply when it is absent.
`)

// Global carries state shared by every subcommand.
type Global struct {
	Config config.Config
	Logger *slog.Logger
}

// CLI is the brioche-site command line. Flags override the environment.
type CLI struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error); overrides LOG_LEVEL."`
	LogFormat string `name:"log-format" help:"Log format (json, text); overrides LOG_FORMAT."`
	Content   string `name:"content" type:"path" help:"Content directory; overrides CONTENT_DIR."`
	Public    string `name:"public" type:"path" help:"Static assets directory; overrides PUBLIC_DIR."`
	Output    string `short:"o" name:"output" type:"path" help:"Output directory; overrides OUTPUT_DIR."`

	Build     BuildCmd     `cmd:"" help:"Build the site into the output directory."`
	Serve     ServeCmd     `cmd:"" help:"Build and preview the site locally."`
	Redirects RedirectsCmd `cmd:"" help:"Print the compiled redirect table."`
	Feed      FeedCmd      `cmd:"" help:"Print the blog RSS feed."`
}

// apply layers command-line overrides onto the environment configuration.
func (c *CLI) apply(cfg *config.Config) {
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.LogFormat = c.LogFormat
	}
	if c.Content != "" {
		cfg.ContentDir = c.Content
	}
	if c.Public != "" {
		cfg.PublicDir = c.Public
	}
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("brioche-site"),
		kong.Description(description),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	cli.apply(&cfg)
	log := cfg.Logger()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	if err := kctx.Run(&Global{Config: cfg, Logger: log}); err != nil {
		log.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
