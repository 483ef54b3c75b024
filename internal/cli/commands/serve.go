package commands

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/leapstack-labs/gridlint/internal/engine"
	"github.com/leapstack-labs/gridlint/internal/server"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port        int
	MaxUploadMB int64
}

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API",
		Long: `Start an HTTP server that validates uploaded tables with the
configured rules.

Endpoints:
  POST /api/v1/validate   CSV body or multipart field "file"
  GET  /api/v1/rules      Rule catalogue
  GET  /healthz           Liveness`,
		Example: `  # Listen on the configured port (default 8080)
  gridlint serve

  # Validate a file
  curl --data-binary @data.csv 'localhost:8080/api/v1/validate?name=data.csv'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd, "")
			cfg := cmdCtx.Cfg

			port := cfg.Serve.Port
			if cmd.Flags().Changed("port") {
				port = opts.Port
			}
			maxUpload := cfg.Serve.MaxUploadMB
			if cmd.Flags().Changed("max-upload-mb") {
				maxUpload = opts.MaxUploadMB
			}

			analyzer, err := newAnalyzer(cfg.Settings(), cfg.ConfigDir, cmdCtx.Logger)
			if err != nil {
				return err
			}
			eng, err := engine.New(engine.Config{
				Analyzer: analyzer,
				Workers:  cfg.Workers,
				Logger:   cmdCtx.Logger,
			})
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Engine:      eng,
				Registry:    rules.NewRegistry(),
				Port:        port,
				MaxUploadMB: maxUpload,
				Version:     version,
				Logger:      cmdCtx.Logger,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmdCtx.Renderer.Success("Serving validation API on :" + strconv.Itoa(port))
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Port to listen on (default 8080)")
	cmd.Flags().Int64Var(&opts.MaxUploadMB, "max-upload-mb", 0, "Maximum upload size in MB (default 32)")

	return cmd
}
