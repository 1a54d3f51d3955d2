// Package builder is the build-time collaborator of the composition engine:
// it discovers template source files from glob patterns, amalgamates them
// into a single registry artifact, and persists it for the resolver to load.
package builder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// DefaultArtifactName is the registry artifact filename written into the
// output directory.
const DefaultArtifactName = "composer_registry.yaml"

// MergeMode controls how a build interacts with an existing artifact.
type MergeMode int

const (
	// Overwrite replaces the artifact with exactly the discovered templates.
	Overwrite MergeMode = iota
	// Append seeds the build from the existing artifact; discovered templates
	// replace same-named entries, and duplicates are only rejected between
	// discovered source files.
	Append
)

// Option customises the builder configuration.
type Option func(*Builder)

// WithPatterns adds file-glob patterns to the discovery set, in order.
func WithPatterns(patterns ...string) Option {
	return func(b *Builder) {
		b.patterns = append(b.patterns, patterns...)
	}
}

// WithOutputDir sets the directory the artifact is written to. Defaults to
// the current directory.
func WithOutputDir(dir string) Option {
	return func(b *Builder) {
		if dir != "" {
			b.outputDir = dir
		}
	}
}

// WithArtifactName overrides the artifact filename.
func WithArtifactName(name string) Option {
	return func(b *Builder) {
		if name != "" {
			b.artifact = name
		}
	}
}

// WithDefaultEngine stamps an engine name onto every discovered template that
// does not declare one.
func WithDefaultEngine(name string) Option {
	return func(b *Builder) {
		b.defaultEngine = name
	}
}

// WithMergeMode sets the merge behavior against an existing artifact.
func WithMergeMode(mode MergeMode) Option {
	return func(b *Builder) {
		b.mode = mode
	}
}

// WithLogger injects a logger; the default discards build progress.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder amalgamates template source files into a registry artifact.
type Builder struct {
	patterns      []string
	outputDir     string
	artifact      string
	defaultEngine string
	mode          MergeMode
	logger        *slog.Logger
}

// New constructs a Builder applying any provided options.
func New(options ...Option) *Builder {
	b := &Builder{
		outputDir: ".",
		artifact:  DefaultArtifactName,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Build runs discovery and amalgamation, writes the artifact atomically, and
// returns its path. An empty discovery set still writes an (empty) artifact
// so downstream loads see an empty registry rather than a stale one.
func (b *Builder) Build(ctx context.Context) (string, error) {
	files, err := Discover(b.patterns)
	if err != nil {
		return "", err
	}
	b.logger.Debug("discovered template sources", "patterns", b.patterns, "files", len(files))

	path := filepath.Join(b.outputDir, b.artifact)

	merged := make(map[string]map[string]any)
	if b.mode == Append {
		if err := b.loadExisting(path, merged); err != nil {
			return "", err
		}
	}

	owners := make(map[string]string, len(merged))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := b.amalgamate(file, merged, owners); err != nil {
			return "", err
		}
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("builder: serialize artifact: %w", err)
	}
	if len(merged) == 0 {
		data = nil
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("builder: write artifact %s: %w", path, err)
	}

	b.logger.Info("registry artifact written", "path", path, "templates", len(merged))
	return path, nil
}

// amalgamate merges one source file into the running template set, applying
// the default engine and rejecting duplicate names across source files.
func (b *Builder) amalgamate(path string, merged map[string]map[string]any, owners map[string]string) error {
	records, err := readSource(path)
	if err != nil {
		return err
	}

	for name, record := range records {
		if owner, dup := owners[name]; dup {
			b.logger.Error("duplicate template name", "name", name, "first", owner, "second", path)
			return &DuplicateTemplateError{Name: name, Path: path}
		}
		owners[name] = path

		if record == nil {
			record = make(map[string]any)
		}
		pattern, ok := record["pattern"].(string)
		if !ok || pattern == "" {
			return &SourceError{Path: path, Err: fmt.Errorf("template %q: pattern is required", name)}
		}
		if b.defaultEngine != "" {
			if _, ok := record["engine"]; !ok {
				record["engine"] = b.defaultEngine
			}
		}

		merged[name] = record
		b.logger.Debug("template amalgamated", "name", name, "source", path)
	}

	return nil
}

func (b *Builder) loadExisting(path string, merged map[string]map[string]any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &SourceError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, &merged); err != nil {
		return &SourceError{Path: path, Err: err}
	}
	b.logger.Debug("seeded from existing artifact", "path", path, "templates", len(merged))
	return nil
}

func readSource(path string) (map[string]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}

	var records map[string]map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return records, nil
}
