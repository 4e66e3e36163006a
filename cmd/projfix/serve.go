package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/ganot/projfix/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over stdio exposing the validation tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		server := mcpserver.NewServer(mcpserver.Config{
			Logger:           logger,
			ExemptUIDs:       cfg.Policy.ExemptUIDs,
			DefaultTaskHours: cfg.Policy.DefaultTaskHours,
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-stop
			logger.Info("shutting down")
			cancel()
		}()

		logger.Info("starting stdio transport")
		// Run blocks until stdin closes or the context is canceled.
		return server.Run(ctx, &sdkmcp.StdioTransport{})
	},
}
