package main

import (
	"fmt"

	"github.com/aretw0/fsmd/internal/presentation/tui"
	"github.com/aretw0/fsmd/pkg/loader"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <input>",
		Short: "Summarize an FSM description",
		Long:  `Prints the states, final states and transitions of an FSM description as formatted Markdown.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			epsilon, _ := cmd.Flags().GetBool("epsilon")

			desc, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			markdown := tui.Describe(desc, epsilon)
			rendered, err := tui.NewRenderer(!tui.IsTerminal(out))(markdown)
			if err != nil {
				rendered = markdown
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	cmd.Flags().BoolP("epsilon", "E", false, "Show E as ε in transition labels")
	return cmd
}
