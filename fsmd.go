package fsmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/fsmd/internal/logging"
	"github.com/aretw0/fsmd/internal/metrics"
	"github.com/aretw0/fsmd/internal/render"
	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/graph"
)

// Engine is the high-level entry point of the FSMD library.
// It builds graph descriptions and hands them to the configured renderer.
type Engine struct {
	renderer render.Renderer
	logger   *slog.Logger
	metrics  *metrics.Metrics
	fontName string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRenderer replaces the default Graphviz renderer.
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records build and render metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithFontName sets the font applied to the graph, nodes and edges.
func WithFontName(name string) Option {
	return func(e *Engine) {
		e.fontName = name
	}
}

// New initializes an Engine. Without WithRenderer it renders through the
// Graphviz dot command found on PATH.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized before it is handed to the renderer
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.renderer == nil {
		eng.renderer = render.NewGraphviz(render.WithLogger(eng.logger))
	}
	return eng
}

// Request describes one render.
type Request struct {
	Description domain.FSMDescription
	Format      string
	OutputDir   string
	Epsilon     bool
	Strict      bool
}

// OutputPath returns {OutputDir}/{Filename}.{Format}.
func (r Request) OutputPath() string {
	return filepath.Join(r.OutputDir, r.Description.Filename+"."+r.Format)
}

// Probe checks that the renderer can be invoked.
// Renderers that cannot be probed are assumed available.
func (e *Engine) Probe(ctx context.Context) error {
	if p, ok := e.renderer.(render.Prober); ok {
		return p.Probe(ctx)
	}
	return nil
}

// Build translates desc into a graph description.
func (e *Engine) Build(desc domain.FSMDescription, opts graph.Options) (*graph.Graph, error) {
	if opts.FontName == "" {
		opts.FontName = e.fontName
	}
	g, err := graph.Build(desc, opts)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveBuild(len(g.Nodes), len(g.Edges))
	e.logger.Debug("Graph built", "graph", g.Name, "nodes", len(g.Nodes), "edges", len(g.Edges))
	return g, nil
}

// Encode produces the diagram bytes for desc in format without touching the disk.
// Image formats probe the renderer before any build work is done.
func (e *Engine) Encode(ctx context.Context, desc domain.FSMDescription, format string, opts graph.Options) ([]byte, error) {
	if !domain.IsSupportedFormat(format) {
		return nil, fmt.Errorf("%w %q: supported formats are %v", domain.ErrUnsupportedFormat, format, domain.Formats)
	}
	if domain.IsImageFormat(format) {
		if err := e.Probe(ctx); err != nil {
			return nil, err
		}
	}

	g, err := e.Build(desc, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var out []byte
	switch format {
	case domain.FormatDOT:
		out = []byte(graph.EncodeDOT(g))
	case domain.FormatMermaid:
		out = []byte(graph.EncodeMermaid(g))
	default:
		out, err = e.renderer.Render(ctx, graph.EncodeDOT(g), format)
	}
	e.metrics.ObserveRender(format, time.Since(start), err)
	if err != nil {
		e.logger.Error("Render failed", "graph", g.Name, "format", format, "error", err)
		return nil, err
	}
	return out, nil
}

// Create renders req and writes the result to req.OutputPath().
// The file is written only when rendering succeeded.
func (e *Engine) Create(ctx context.Context, req Request) (string, error) {
	data, err := e.Encode(ctx, req.Description, req.Format, graph.Options{Epsilon: req.Epsilon, Strict: req.Strict})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := req.OutputPath()
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	e.logger.Info("Diagram written", "path", path, "bytes", len(data))
	return path, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
