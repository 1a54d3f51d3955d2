// Command composer drives the template composition engine from the shell:
// building the registry artifact out of template source files, resolving
// invocations and composition blocks, and eagerly rewriting host-syntax
// fragments.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	composer "github.com/goliatone/go-composer"
	"github.com/goliatone/go-composer/pkg/builder"
	"github.com/goliatone/go-composer/pkg/engine"
)

func main() {
	cmd := &cli.Command{
		Name:  "composer",
		Usage: "compile-time template composition engine",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			buildCommand,
			renderCommand,
			rewriteCommand,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("composer failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var buildCommand = &cli.Command{
	Name:  "build",
	Usage: "discover template sources and write the registry artifact",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "pattern",
			Aliases: []string{"p"},
			Value:   []string{"**/*.composer.yaml"},
			Usage:   "file-glob pattern for template sources (repeatable)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "output directory for the artifact",
		},
		&cli.StringFlag{
			Name:  "default-engine",
			Usage: "engine stamped onto templates that do not declare one",
		},
		&cli.BoolFlag{
			Name:  "append",
			Usage: "merge into an existing artifact instead of overwriting it",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		mode := builder.Overwrite
		if cmd.Bool("append") {
			mode = builder.Append
		}

		b := builder.New(
			builder.WithPatterns(cmd.StringSlice("pattern")...),
			builder.WithOutputDir(cmd.String("output")),
			builder.WithDefaultEngine(cmd.String("default-engine")),
			builder.WithMergeMode(mode),
			builder.WithLogger(newLogger(cmd)),
		)

		path, err := b.Build(ctx)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "resolve an invocation or composition block against the registry",
	ArgsUsage: "[source]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "registry",
			Aliases: []string{"r"},
			Value:   builder.DefaultArtifactName,
			Usage:   "registry artifact path",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "read the source from a file instead of the argument ('-' for stdin)",
		},
		&cli.StringFlag{
			Name:  "default-engine",
			Value: engine.DefaultName,
			Usage: "engine used when the template does not name one",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		src, err := readInput(cmd)
		if err != nil {
			return err
		}

		c := composer.New(
			composer.WithRegistryFile(cmd.String("registry")),
			composer.WithDefaultEngine(cmd.String("default-engine")),
		)

		exports, err := c.ResolveAny(src)
		if err != nil {
			return err
		}
		for _, export := range exports {
			if export.Name == "" {
				fmt.Println(export.Value)
				continue
			}
			fmt.Printf("%s = %s\n", export.Name, export.Value)
		}
		return nil
	},
}

var rewriteCommand = &cli.Command{
	Name:      "rewrite",
	Usage:     "eagerly rewrite template invocations inside a source fragment",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "registry",
			Aliases: []string{"r"},
			Value:   builder.DefaultArtifactName,
			Usage:   "registry artifact path",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (stdout if empty)",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.Args().First()
		if path == "" {
			return fmt.Errorf("composer: a fragment file is required")
		}

		var data []byte
		var err error
		if path == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return err
		}

		c := composer.New(composer.WithRegistryFile(cmd.String("registry")))
		out, err := c.RewriteSource(string(data))
		if err != nil {
			return err
		}

		if target := cmd.String("output"); target != "" {
			if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
				return fmt.Errorf("composer: write output: %w", err)
			}
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func readInput(cmd *cli.Command) (string, error) {
	if file := cmd.String("file"); file != "" {
		if file == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", err
			}
			return string(data), nil
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	src := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if src == "" {
		return "", fmt.Errorf("composer: a source argument or --file is required")
	}
	return src, nil
}
