// Package config loads the site builder's configuration: process settings
// from the environment (optionally seeded from a .env file) and the
// declarative site definition from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Logging
	LogLevel  string
	LogFormat string

	// Site definition
	SiteFile string
	Site     Site

	// Directories
	ContentDir string
	PublicDir  string
	OutputDir  string

	// Preview
	Watch bool
}

// Load reads the environment and the site file. A missing .env file or a
// missing site file at the default location is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port: envOr("PORT", "4321"),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "json"),

		SiteFile: envOr("SITE_CONFIG", "site.yaml"),
		Site:     DefaultSite(),

		ContentDir: envOr("CONTENT_DIR", "content"),
		PublicDir:  envOr("PUBLIC_DIR", "public"),
		OutputDir:  envOr("OUTPUT_DIR", "dist"),

		Watch: envBool("WATCH", false),
	}

	if err := cfg.loadSiteFile(os.Getenv("SITE_CONFIG") != ""); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.Site.URL = v
	}

	return cfg, nil
}

func (c *Config) loadSiteFile(required bool) error {
	data, err := os.ReadFile(c.SiteFile)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read site config: %w", err)
	}
	site, err := ParseSite(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.SiteFile, err)
	}
	c.Site = site
	return nil
}

// ParseSite decodes a YAML site definition over DefaultSite. Keys left out
// of the file keep their defaults; lists given in the file replace the
// default lists.
func ParseSite(data []byte) (Site, error) {
	site := DefaultSite()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty file decodes to the defaults.
	if err := dec.Decode(&site); err != nil && !errors.Is(err, io.EOF) {
		return Site{}, fmt.Errorf("parse site config: %w", err)
	}
	return site, nil
}

func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.LogFormat, validation.In("json", "text")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	// The output directory is removed before every build.
	out := filepath.Clean(c.OutputDir)
	switch {
	case out == "." || out == string(filepath.Separator):
		return fmt.Errorf("OUTPUT_DIR %q would remove the working tree", c.OutputDir)
	case out == filepath.Clean(c.ContentDir):
		return fmt.Errorf("OUTPUT_DIR must differ from CONTENT_DIR")
	case c.PublicDir != "" && out == filepath.Clean(c.PublicDir):
		return fmt.Errorf("OUTPUT_DIR must differ from PUBLIC_DIR")
	}
	return nil
}

func (s Site) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&s.Redirects),
		validation.Field(&s.Theme),
	)
}

func absoluteURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return validation.NewError("validation_absolute_url", "must be an absolute URL")
	}
	return nil
}

// Logger builds the process logger from the logging settings.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
