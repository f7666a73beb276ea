package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"regscan/internal/logging"
	mcpserver "regscan/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve regression analysis as MCP tools over stdio",
		Long: `Starts an MCP server over stdin/stdout offering the list_configurations
and analyze_regression tools. The server stops when its parent process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			srv := mcpserver.NewServer(env.settings, env.cwd, version)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			mcpserver.WatchParent(ctx, 2*time.Second, cancel)

			logging.New("mcp").Info("starting regscan MCP server over stdio", "cwd", env.cwd)
			return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
		},
	}
}
