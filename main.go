package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/CodMac/go-archview/config"
	"github.com/CodMac/go-archview/diagram"
	"github.com/CodMac/go-archview/job"
	"github.com/CodMac/go-archview/logger"
	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/narrative"
	"github.com/CodMac/go-archview/output"
	"github.com/CodMac/go-archview/processor"
	"github.com/CodMac/go-archview/quality"
	"github.com/CodMac/go-archview/source"

	// 导入所有方言的实现，以触发其 init() 函数注册 Frontend 和 NoiseFilter
	_ "github.com/CodMac/go-archview/x/annotated"
	_ "github.com/CodMac/go-archview/x/java"
)

func main() {
	app := &cli.App{
		Name:  "archview",
		Usage: "Extract an architecture graph from annotation-driven class-based source code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: " + config.DefaultFileName + " if present)",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to analyze",
				Value:   ".",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (e.g., --include 'src/**/*.java')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (appended to the configured list)",
			},
			&cli.StringFlag{
				Name:  "frontend",
				Usage: "Source dialect frontend: annotated or java",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of files processed concurrently",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Human-readable development logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Build the analysis graph",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or yaml", Value: "json"},
					&cli.StringFlag{Name: "classes-out", Usage: "Also export classes as JSONL to this file"},
					&cli.StringFlag{Name: "relations-out", Usage: "Also export relationships as JSONL to this file"},
					&cli.BoolFlag{Name: "narrative", Usage: "Print a prose summary instead of the graph"},
				},
				Action: analyzeCommand,
			},
			{
				Name:  "diagram",
				Usage: "Render a diagram specification",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "flow, uml or component", Value: string(diagram.KindFlow)},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json, yaml, mermaid or html", Value: "json"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to file instead of stdout"},
				},
				Action: diagramCommand,
			},
			{
				Name:  "quality",
				Usage: "Report metrics, issues and ratings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or yaml", Value: "json"},
				},
				Action: qualityCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfigWithOverrides 加载配置并应用命令行覆盖
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	if configPath == "" {
		if candidate := filepath.Join(c.String("root"), config.DefaultFileName); fileExists(candidate) {
			configPath = candidate
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if c.IsSet("frontend") {
		cfg.Frontend = c.String("frontend")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("dev") {
		cfg.Development = c.Bool("dev")
	}
	return cfg, cfg.Validate()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// session 是一次命令执行所需的配置与日志器
type session struct {
	cfg *config.Config
	log *zap.Logger
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log}, nil
}

// analyze 加载源码并通过 job.Runner 执行分析，等待任务结束
func (s *session) analyze(ctx context.Context, root string) (*model.AnalysisGraph, error) {
	batch, err := source.Load(root, s.cfg.Include, s.cfg.Exclude)
	if err != nil {
		return nil, err
	}
	s.log.Info("sources loaded",
		zap.String("root", root),
		zap.Int("files", len(batch.Units)),
		zap.String("fingerprint", batch.FingerprintHex()),
	)

	proc := processor.NewFileProcessor(s.cfg.Language(), s.cfg.Workers, processor.WithLogger(s.log))
	runner := job.NewRunner(job.NewMemoryStore(), proc, s.cfg.Timeout(), s.log)
	defer runner.Close()

	id, err := runner.Submit(ctx, root, batch.Units)
	if err != nil {
		return nil, err
	}
	j, err := runner.Wait(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusCompleted {
		return nil, fmt.Errorf("analysis %s %s: %s", j.ID, j.Status, j.Error)
	}
	return j.Graph, nil
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

func analyzeCommand(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	ctx, stop := signalContext(c)
	defer stop()

	graph, err := s.analyze(ctx, c.String("root"))
	if err != nil {
		return err
	}

	if path := c.String("classes-out"); path != "" {
		n, err := output.ExportClasses(path, graph)
		if err != nil {
			return fmt.Errorf("export classes: %w", err)
		}
		s.log.Info("classes exported", zap.String("path", path), zap.Int("count", n))
	}
	if path := c.String("relations-out"); path != "" {
		n, err := output.ExportRelationships(path, graph)
		if err != nil {
			return fmt.Errorf("export relationships: %w", err)
		}
		s.log.Info("relationships exported", zap.String("path", path), zap.Int("count", n))
	}

	if c.Bool("narrative") {
		text, err := narrative.WithFallback(nil, s.log).Narrate(ctx, narrative.Summarize(graph))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, text)
		return err
	}
	return output.WriteGraph(c.App.Writer, graph, output.Format(c.String("format")))
}

func diagramCommand(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	ctx, stop := signalContext(c)
	defer stop()

	graph, err := s.analyze(ctx, c.String("root"))
	if err != nil {
		return err
	}
	kind := diagram.Kind(c.String("kind"))
	spec, err := diagram.Build(kind, graph)
	if err != nil {
		return err
	}

	var w io.Writer = c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format := c.String("format"); format {
	case "mermaid":
		_, err = io.WriteString(w, output.Mermaid(spec))
	case "html":
		err = output.ExportMermaidHTML(w, fmt.Sprintf("%s diagram", kind), spec)
	default:
		err = output.Write(w, spec, output.Format(format))
	}
	return err
}

func qualityCommand(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	ctx, stop := signalContext(c)
	defer stop()

	graph, err := s.analyze(ctx, c.String("root"))
	if err != nil {
		return err
	}
	report := quality.Analyze(graph, s.cfg.QualityOptions())
	return output.Write(c.App.Writer, report, output.Format(c.String("format")))
}
