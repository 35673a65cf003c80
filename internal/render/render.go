// Package render turns DOT text into images with the Graphviz "dot" command.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/aretw0/fsmd/internal/logging"
	"github.com/aretw0/fsmd/pkg/domain"
)

// DefaultBinary is the Graphviz layout command.
const DefaultBinary = "dot"

// Renderer produces image bytes from DOT text.
type Renderer interface {
	Render(ctx context.Context, dotText string, format string) ([]byte, error)
}

// Prober reports whether a renderer can be invoked at all.
type Prober interface {
	Probe(ctx context.Context) error
}

// Func adapts a function to the Renderer interface.
type Func func(ctx context.Context, dotText string, format string) ([]byte, error)

// Render calls f.
func (f Func) Render(ctx context.Context, dotText string, format string) ([]byte, error) {
	return f(ctx, dotText, format)
}

// Graphviz renders through the dot command.
type Graphviz struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures Graphviz.
type Option func(*Graphviz)

// WithBinary overrides the dot command name or path.
func WithBinary(path string) Option {
	return func(g *Graphviz) {
		g.binary = path
	}
}

// WithTimeout bounds every dot invocation. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(g *Graphviz) {
		g.timeout = d
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graphviz) {
		g.logger = logger
	}
}

// NewGraphviz creates a Graphviz renderer.
func NewGraphviz(opts ...Option) *Graphviz {
	g := &Graphviz{
		binary: DefaultBinary,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Binary returns the configured dot command.
func (g *Graphviz) Binary() string {
	return g.binary
}

// Probe checks that the dot command resolves and answers "dot -V".
func (g *Graphviz) Probe(ctx context.Context) error {
	path, err := exec.LookPath(g.binary)
	if err != nil {
		return &domain.RendererUnavailableError{Binary: g.binary, Err: err}
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-V")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return &domain.RendererUnavailableError{Binary: g.binary, Err: fmt.Errorf("%w: %s", err, strings.TrimSpace(out.String()))}
	}

	g.logger.Debug("Graphviz found", "path", path, "version", strings.TrimSpace(out.String()))
	return nil
}

// Render pipes dotText into "dot -T<format>" and returns stdout.
func (g *Graphviz) Render(ctx context.Context, dotText string, format string) ([]byte, error) {
	if dotText == "" {
		return nil, fmt.Errorf("cannot render empty DOT text")
	}
	if !domain.IsImageFormat(format) {
		return nil, fmt.Errorf("%w %q: graphviz renders png and svg", domain.ErrUnsupportedFormat, format)
	}

	path, err := exec.LookPath(g.binary)
	if err != nil {
		return nil, &domain.RendererUnavailableError{Binary: g.binary, Err: err}
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "-T"+format)
	cmd.Stdin = strings.NewReader(dotText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", err, ctx.Err())
		}
		return nil, &domain.RenderFailureError{Format: format, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	if stdout.Len() == 0 {
		return nil, &domain.RenderFailureError{Format: format, Stderr: strings.TrimSpace(stderr.String()), Err: fmt.Errorf("no output produced")}
	}

	g.logger.Debug("Graphviz render finished", "format", format, "bytes", stdout.Len(), "duration", time.Since(start))
	return stdout.Bytes(), nil
}

func (g *Graphviz) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return context.WithCancel(ctx)
}

// ContentType returns the MIME type of a rendered format.
func ContentType(format string) string {
	switch format {
	case domain.FormatPNG:
		return "image/png"
	case domain.FormatSVG:
		return "image/svg+xml"
	case domain.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
