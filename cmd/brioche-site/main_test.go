package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brioche-dev/brioche-website/internal/config"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("brioche-site"))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestParse_Commands(t *testing.T) {
	for _, cmd := range []string{"build", "serve", "redirects", "feed"} {
		_, kctx := parse(t, cmd)
		assert.Equal(t, cmd, kctx.Command())
	}
}

func TestParse_ServeFlags(t *testing.T) {
	cli, _ := parse(t, "serve", "--watch", "-p", "8080")
	assert.True(t, cli.Serve.Watch)
	assert.Equal(t, "8080", cli.Serve.Port)
}

func TestApply_OverridesEnvironment(t *testing.T) {
	cli, _ := parse(t, "--log-format", "text", "-o", "/tmp/site-out", "build")
	cfg := config.Config{LogFormat: "json", LogLevel: "info", OutputDir: "dist", ContentDir: "content"}
	cli.apply(&cfg)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/tmp/site-out", cfg.OutputDir)
	assert.Equal(t, "content", cfg.ContentDir)
}
