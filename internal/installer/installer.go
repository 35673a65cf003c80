// Package installer installs the Graphviz layout engine on platforms where it can be
// automated. Each platform is a strategy behind the Installer interface.
package installer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aretw0/fsmd/internal/logging"
)

var (
	// ErrUnsupportedPlatform is returned when no strategy exists for the platform.
	ErrUnsupportedPlatform = errors.New("automatic installation is not supported for this platform")
	// ErrAlreadyInstalled is returned when a working Graphviz was found before installing.
	ErrAlreadyInstalled = errors.New("graphviz is already installed")
)

// Installer installs Graphviz.
type Installer interface {
	Name() string
	Install(ctx context.Context) error
}

// CommandRunner runs an external command and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Options are shared by all strategies.
type Options struct {
	Runner     CommandRunner
	Logger     *slog.Logger
	HTTPClient *http.Client

	// BaseDir is where downloaded archives are extracted.
	BaseDir string
	// DownloadURL overrides the Graphviz archive location.
	DownloadURL string
	// Confirm asks the user a yes/no question. Nil answers no.
	Confirm func(question string) bool
}

func (o *Options) setDefaults() {
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}
	if o.Confirm == nil {
		o.Confirm = func(string) bool { return false }
	}
}

// ForPlatform returns the strategy for goos.
func ForPlatform(goos string, opts Options) (Installer, error) {
	opts.setDefaults()
	switch goos {
	case "darwin":
		return &Homebrew{opts: opts}, nil
	case "windows":
		if opts.BaseDir == "" {
			opts.BaseDir = DefaultBaseDir(goos)
		}
		if opts.DownloadURL == "" {
			opts.DownloadURL = DefaultDownloadURL
		}
		return &Archive{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// DefaultBaseDir returns the per-user install directory for goos.
func DefaultBaseDir(goos string) string {
	switch goos {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "FSMD")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "FSMD")
	default:
		return ""
	}
}

// BundledBinDir returns the bin directory of a Graphviz extracted by the archive
// strategy, or "" if there is none.
func BundledBinDir(goos string) string {
	if goos != "windows" {
		return ""
	}
	dir := filepath.Join(DefaultBaseDir(goos), "Graphviz", "bin")
	if _, err := os.Stat(dir); err != nil {
		return ""
	}
	return dir
}

// probe runs "<dot> -V" and reports whether Graphviz answered.
func probe(ctx context.Context, opts Options, dot string) bool {
	out, err := opts.Runner.Run(ctx, dot, "-V")
	if err != nil {
		opts.Logger.Debug("Graphviz probe failed", "binary", dot, "output", strings.TrimSpace(string(out)), "error", err)
		return false
	}
	opts.Logger.Info("Graphviz probe succeeded", "binary", dot, "version", strings.TrimSpace(string(out)))
	return true
}

// run executes a command and logs its output.
func run(ctx context.Context, opts Options, name string, args ...string) error {
	out, err := opts.Runner.Run(ctx, name, args...)
	opts.Logger.Info("Command finished", "cmd", name+" "+strings.Join(args, " "), "output", strings.TrimSpace(string(out)), "error", err)
	if err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
