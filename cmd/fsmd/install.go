package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/aretw0/fsmd/internal/installer"
	"github.com/aretw0/fsmd/internal/logging"
	"github.com/aretw0/fsmd/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install Graphviz",
		Long: `Installs Graphviz, which is required for svg and png output.
Homebrew is used on macOS; on Windows a Graphviz release is downloaded into the
local application data directory. Other platforms must install Graphviz with
their package manager.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tui.NewPrinter(cmd.OutOrStdout())

			logFile, err := installer.OpenLog(os.TempDir())
			if err != nil {
				return err
			}
			defer logFile.Close()

			inst, err := installer.ForPlatform(runtime.GOOS, installer.Options{
				Logger:  logging.NewWriter(logFile, slog.LevelDebug),
				Confirm: confirm(cmd.InOrStdin(), cmd.OutOrStdout()),
			})
			if err != nil {
				return fmt.Errorf("%w: install Graphviz from https://graphviz.org/download/", err)
			}

			p.Info(fmt.Sprintf("Installing Graphviz (%s), log at %s", inst.Name(), logFile.Name()))
			err = inst.Install(cmd.Context())
			switch {
			case errors.Is(err, installer.ErrAlreadyInstalled):
				p.Success("Graphviz is already installed")
				return nil
			case err != nil:
				return fmt.Errorf("%w (see %s)", err, logFile.Name())
			}

			p.Success("Graphviz installed")
			if a, ok := inst.(*installer.Archive); ok {
				p.Warn("Add " + a.BinDir() + " to your PATH to use dot outside fsmd")
			}
			return nil
		},
	}
}

func confirm(in io.Reader, out io.Writer) func(string) bool {
	reader := bufio.NewReader(in)
	return func(question string) bool {
		fmt.Fprintf(out, "%s [y/N] ", question)
		answer, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
