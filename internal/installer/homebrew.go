package installer

import (
	"context"
	"fmt"
)

// Homebrew installs Graphviz with brew on macOS.
type Homebrew struct {
	opts Options
}

// Name implements Installer.
func (h *Homebrew) Name() string { return "homebrew" }

// Install runs "brew install graphviz", offering "brew link" when dot is still missing.
func (h *Homebrew) Install(ctx context.Context) error {
	if probe(ctx, h.opts, "dot") {
		return ErrAlreadyInstalled
	}

	if err := run(ctx, h.opts, "brew", "--version"); err != nil {
		return fmt.Errorf("homebrew (https://brew.sh) must be installed to install Graphviz automatically: %w", err)
	}

	if err := run(ctx, h.opts, "brew", "install", "graphviz"); err != nil {
		return fmt.Errorf("failed to install Graphviz: %w", err)
	}

	if probe(ctx, h.opts, "dot") {
		return nil
	}

	if !h.opts.Confirm("Graphviz was installed but dot is not on the PATH. Try to link it with Homebrew?") {
		return fmt.Errorf("graphviz may have been installed but is not on the PATH: link it with Homebrew or add it to the PATH, then rerun")
	}

	if err := run(ctx, h.opts, "brew", "link", "--overwrite", "graphviz"); err != nil {
		return fmt.Errorf("failed to link Graphviz: %w", err)
	}
	if !probe(ctx, h.opts, "dot") {
		return fmt.Errorf("graphviz was linked but dot still does not run")
	}
	return nil
}
