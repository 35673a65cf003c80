package main

import (
	"fmt"
	"time"

	"github.com/aretw0/fsmd"
	"github.com/aretw0/fsmd/internal/presentation/tui"
	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/loader"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a diagram from an FSM description",
		Long: `Creates a diagram of the FSM described in <input> and writes it to
<outputdir>/<filename>.<format>, where filename comes from the description.`,
	}
	for _, format := range domain.Formats {
		cmd.AddCommand(newCreateFormatCmd(format))
	}
	return cmd
}

func newCreateFormatCmd(format string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   format + " <input> <outputdir>",
		Short: fmt.Sprintf("Create a %s diagram", format),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			epsilon, _ := cmd.Flags().GetBool("epsilon")
			strict, _ := cmd.Flags().GetBool("strict")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			binary, _ := cmd.Flags().GetString("dot")

			logger := loggerFor(cmd)
			engine := fsmd.New(
				fsmd.WithLogger(logger),
				fsmd.WithRenderer(graphvizFor(logger, binary, timeout)),
			)

			// Graphviz is checked before the input is read.
			if domain.IsImageFormat(format) {
				if err := engine.Probe(cmd.Context()); err != nil {
					return err
				}
			}

			desc, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			path, err := engine.Create(cmd.Context(), fsmd.Request{
				Description: desc,
				Format:      format,
				OutputDir:   args[1],
				Epsilon:     epsilon,
				Strict:      strict,
			})
			if err != nil {
				return err
			}

			tui.NewPrinter(cmd.OutOrStdout()).Output(path)
			return nil
		},
	}

	cmd.Flags().BoolP("epsilon", "E", false, "Replace E with ε in transition labels")
	cmd.Flags().Bool("strict", false, "Reject transitions between undeclared states")
	cmd.Flags().Duration("timeout", 30*time.Second, "Maximum time allowed for Graphviz")
	cmd.Flags().String("dot", "", "Path to the Graphviz dot executable")
	return cmd
}
