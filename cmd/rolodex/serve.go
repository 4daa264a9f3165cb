package main

import (
	"fmt"

	"github.com/jonathan/rolodex/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the Rolodex REST API. Stops gracefully on SIGINT or SIGTERM.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT, default 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if cmd.Flags().Changed("port") {
		e.cfg.Port = servePort
		if err := e.cfg.Validate(); err != nil {
			return err
		}
	}

	if serveMigrate {
		if err := e.db.Migrate(ctx); err != nil {
			return err
		}
		e.logger.Info("schema applied")
	}

	if !e.cfg.DevGate.Enabled() {
		e.logger.Warn("dev gate disabled: the API is open to anyone who can reach it")
	}

	srv := server.New(e.cfg, e.db, e.logger)
	if err := srv.Start(ctx); err != nil {
		e.logger.Error("server failed", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
