package main

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/aretw0/fsmd/internal/installer"
	"github.com/aretw0/fsmd/internal/logging"
	"github.com/aretw0/fsmd/internal/render"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fsmd",
		Short: "FSMD draws finite-state machine diagrams",
		Long: `FSMD reads a finite-state machine described in YAML and renders it as a
diagram through Graphviz (svg, png) or as text (dot, mermaid).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")

	root.AddCommand(
		newCreateCmd(),
		newDescribeCmd(),
		newValidateCmd(),
		newInstallCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.ForDebug(debug)
}

// graphvizFor builds the Graphviz renderer, falling back to a bundled install
// when dot is not on the PATH.
func graphvizFor(logger *slog.Logger, binary string, timeout time.Duration) *render.Graphviz {
	opts := []render.Option{render.WithLogger(logger), render.WithTimeout(timeout)}
	if binary != "" {
		opts = append(opts, render.WithBinary(binary))
	} else if _, err := exec.LookPath(render.DefaultBinary); err != nil {
		if dir := installer.BundledBinDir(runtime.GOOS); dir != "" {
			logger.Debug("Using bundled Graphviz", "dir", dir)
			opts = append(opts, render.WithBinary(filepath.Join(dir, "dot.exe")))
		}
	}
	return render.NewGraphviz(opts...)
}
