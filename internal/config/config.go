// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration shared by the commands.
package config

import (
	"os"

	"dario.cat/mergo"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mdwiki.dev/markdown"
	"mdwiki.dev/markdown/internal/highlight"
)

// Config is the file form of the render options plus the
// settings of the commands.
type Config struct {
	GFM         bool   `yaml:"gfm"`
	Tables      bool   `yaml:"tables"`
	LineBreaks  string `yaml:"lineBreaks"` // "original" or "gfm"
	Pedantic    bool   `yaml:"pedantic"`
	Sanitize    bool   `yaml:"sanitize"`
	SmartLists  bool   `yaml:"smartLists"`
	Smartypants bool   `yaml:"smartypants"`
	Silent      bool   `yaml:"silent"`
	LangPrefix  string `yaml:"langPrefix"`

	Highlight Highlight `yaml:"highlight"`
	Serve     Serve     `yaml:"serve"`
	Watch     Watch     `yaml:"watch"`
}

type Highlight struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"`
	Async   bool   `yaml:"async"`
	Limit   int    `yaml:"limit"`
}

type Serve struct {
	Addr string `yaml:"addr"`
	Root string `yaml:"root"`
}

type Watch struct {
	DebounceMillis int `yaml:"debounceMillis"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		GFM:        true,
		Tables:     true,
		LineBreaks: "original",
		LangPrefix: "lang-",
		Highlight: Highlight{
			Style: "github",
			Limit: 8,
		},
		Serve: Serve{Addr: "localhost:8080", Root: "."},
		Watch: Watch{DebounceMillis: 300},
	}
}

// LoadEnv loads .env and then .env.local from the working directory,
// if present. Variables already set are not overwritten.
// A file that exists but cannot be parsed is an error.
func LoadEnv() error {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return errors.Wrapf(err, "load env file %s", name)
		}
	}
	return nil
}

// Load reads the YAML file at path over the defaults.
// Environment references such as ${HOME} are expanded first.
// Fields absent from the file keep their default values.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Merge copies the non-zero fields of over into c.
// It is used to apply command-line flags, which can only
// turn settings on.
func (c *Config) Merge(over *Config) error {
	if err := mergo.Merge(c, over, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "merge config")
	}
	return c.Validate()
}

// Validate reports settings that have no meaning.
func (c *Config) Validate() error {
	switch c.LineBreaks {
	case "", "original", "gfm":
	default:
		return errors.WithHint(
			errors.Newf("unknown lineBreaks %q", c.LineBreaks),
			`use "original" or "gfm"`)
	}
	if c.Highlight.Limit < 0 {
		return errors.Newf("negative highlight limit %d", c.Highlight.Limit)
	}
	if c.Watch.DebounceMillis < 0 {
		return errors.Newf("negative debounce %d", c.Watch.DebounceMillis)
	}
	return nil
}

// Options returns the render options described by c.
// Highlighting, if enabled, uses a chroma highlighter configured
// with hopts.
func (c *Config) Options(hopts ...highlight.Option) []markdown.Option {
	opts := []markdown.Option{
		markdown.WithGFM(c.GFM),
		markdown.WithTables(c.Tables),
		markdown.WithBreaks(c.LineBreaks == "gfm"),
		markdown.WithPedantic(c.Pedantic),
		markdown.WithSanitize(c.Sanitize),
		markdown.WithSmartLists(c.SmartLists),
		markdown.WithSmartypants(c.Smartypants),
		markdown.WithSilent(c.Silent),
		markdown.WithLangPrefix(c.LangPrefix),
	}
	if c.Highlight.Enabled {
		h := highlight.New(c.Highlight.Style, hopts...)
		if c.Highlight.Async {
			opts = append(opts,
				markdown.WithHighlightAsync(h.HighlightContext),
				markdown.WithHighlightLimit(c.Highlight.Limit))
		} else {
			opts = append(opts, markdown.WithHighlight(h.Highlight))
		}
	}
	return opts
}
