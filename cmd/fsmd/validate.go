package main

import (
	"fmt"

	"github.com/aretw0/fsmd/internal/presentation/tui"
	"github.com/aretw0/fsmd/internal/validator"
	"github.com/aretw0/fsmd/pkg/loader"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Check an FSM description for consistency",
		Long: `Crawls the transitions from the start state and reports unreachable states,
states used by transitions but never declared, and duplicate declarations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			p := tui.NewPrinter(cmd.OutOrStdout())
			issues := validator.Check(desc)
			if len(issues) == 0 {
				p.Success("FSM is valid")
				return nil
			}
			for _, issue := range issues {
				p.Warn(issue.String())
			}
			return fmt.Errorf("validation failed: %d problems", len(issues))
		},
	}
}
