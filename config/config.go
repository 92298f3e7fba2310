// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the TOML or YAML configuration of a scene:
// the log level, the progress rate of build tasks and the
// representations to build with their props.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/repr"
	"cogentcore.org/mol/task"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a scene.
type Config struct {

	// LogLevel is the name of the log level, e.g. "debug".
	// It is empty to keep the default.
	LogLevel string

	// ProgressRate is the minimum interval between progress
	// updates of a build task.
	ProgressRate time.Duration

	// Includes are other config files loaded before this one,
	// relative to it. Values in the including file override them.
	Includes []string

	// Representations are built in order, which is also the
	// picking priority.
	Representations []Representation
}

// Representation is one representation of the scene.
type Representation struct {

	// Kind is a representation kind, e.g. "cartoon".
	Kind string

	// Label is the unique name of the representation in the scene.
	// It defaults to the kind.
	Label string

	// Props are decoded onto the default props of the kind.
	Props map[string]any
}

// Name returns the label, or the kind if there is no label.
func (r *Representation) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Kind
}

// Default returns the default config.
func Default() *Config {
	return &Config{ProgressRate: 150 * time.Millisecond}
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return logx.UserLevel.Level(), nil
	}
	l, ok := logx.ParseLevel(c.LogLevel)
	if !ok {
		return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return l, nil
}

// TaskOptions returns the options for the [task.Context] of build tasks.
func (c *Config) TaskOptions() []task.Option {
	return []task.Option{task.WithUpdateRate(c.ProgressRate)}
}

// Validate checks that every representation has a known kind and a
// unique name.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.ProgressRate < 0 {
		return fmt.Errorf("config: negative progress rate %v", c.ProgressRate)
	}
	seen := map[string]bool{}
	for i := range c.Representations {
		r := &c.Representations[i]
		if _, err := repr.ParseKind(r.Kind); err != nil {
			return fmt.Errorf("config: representation %d: %w", i, err)
		}
		if seen[r.Name()] {
			return fmt.Errorf("config: duplicate representation %q", r.Name())
		}
		seen[r.Name()] = true
	}
	return nil
}

// Open loads and validates the config file at path together with its
// includes.
func Open(path string) (*Config, error) {
	c, _, err := open(path)
	return c, err
}

// open also returns every file that was read, for watching.
func open(path string) (*Config, []string, error) {
	var files []string
	values, err := load(path, nil, &files)
	if err != nil {
		return nil, files, err
	}
	c := Default()
	if err := repr.DecodePropsStrict(values, c); err != nil {
		return nil, files, fmt.Errorf("config.Open %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, files, fmt.Errorf("config.Open %s: %w", path, err)
	}
	return c, files, nil
}

// load reads the file and merges it over its includes. stack holds
// the files being loaded, to detect include cycles.
func load(path string, stack []string, files *[]string) (map[string]any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if slices.Contains(stack, abs) {
		return nil, fmt.Errorf("config: include cycle: %s", strings.Join(append(stack, abs), " -> "))
	}
	stack = append(stack, abs)
	*files = append(*files, abs)
	values, err := readFile(abs)
	if err != nil {
		return nil, err
	}
	includes, err := includesOf(values)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	merged := map[string]any{}
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(abs), inc)
		}
		iv, err := load(inc, stack, files)
		if err != nil {
			return nil, err
		}
		merged = merge(merged, iv)
	}
	return merge(merged, values), nil
}

// readFile decodes a file by its extension.
func readFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, &values)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &values)
	default:
		return nil, fmt.Errorf("config: unsupported file type %q for %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func includesOf(values map[string]any) ([]string, error) {
	v, has := lookup(values, "includes")
	if !has {
		return nil, nil
	}
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("include %d is %T, not a string", i, e)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("includes is %T, not a list", v)
}

// lookup finds a key with the name matching of props decoding.
func lookup(values map[string]any, name string) (any, bool) {
	for k, v := range values {
		if normalize(k) == name {
			return v, true
		}
	}
	return nil, false
}

// merge returns base with the values of over. Tables are merged
// recursively and representations by name. Other values of over
// replace those of base.
func merge(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		bk := k
		for ok := range out {
			if normalize(ok) == normalize(k) {
				bk = ok
				break
			}
		}
		prev, has := out[bk]
		delete(out, bk)
		if !has {
			out[k] = v
			continue
		}
		switch {
		case normalize(k) == "representations":
			out[k] = mergeRepresentations(prev, v)
		case isTable(prev) && isTable(v):
			out[k] = merge(table(prev), table(v))
		default:
			out[k] = v
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
}

func isTable(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func table(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// reprName is the name of a representation table.
func reprName(m map[string]any) string {
	if l, ok := lookup(m, "label"); ok {
		if s, ok := l.(string); ok && s != "" {
			return s
		}
	}
	if k, ok := lookup(m, "kind"); ok {
		if s, ok := k.(string); ok {
			return s
		}
	}
	return ""
}

// mergeRepresentations merges the representations of over into those
// of base with the same name and appends the others.
func mergeRepresentations(base, over any) any {
	bl, ok1 := base.([]any)
	ol, ok2 := over.([]any)
	if !ok1 || !ok2 {
		return over
	}
	out := slices.Clone(bl)
	for _, o := range ol {
		om, ok := o.(map[string]any)
		if !ok {
			out = append(out, o)
			continue
		}
		ix := slices.IndexFunc(out, func(b any) bool {
			bm, ok := b.(map[string]any)
			return ok && reprName(bm) == reprName(om)
		})
		if ix < 0 {
			out = append(out, om)
			continue
		}
		out[ix] = merge(table(out[ix]), om)
	}
	return out
}
