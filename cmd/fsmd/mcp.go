package main

import (
	"log"
	"os"

	"github.com/aretw0/fsmd"
	"github.com/aretw0/fsmd/internal/adapters/mcp"
	"github.com/aretw0/fsmd/internal/render"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts FSMD as an MCP server on standard input/output, exposing the
render_fsm tool so AI agents can draw state machines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
			logger := loggerFor(cmd)

			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)

			renderer := render.Cached(graphvizFor(logger, "", 0), render.NewMemoryCache(cacheTTL))
			engine := fsmd.New(fsmd.WithLogger(logger), fsmd.WithRenderer(renderer))

			logger.Info("Starting FSMD MCP Server (Stdio)")
			return mcp.NewServer(engine, logger).ServeStdio()
		},
	}
	cmd.Flags().Duration("cache-ttl", 0, "Lifetime of cached renders (0 keeps them forever)")
	return cmd
}
