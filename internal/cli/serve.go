package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/debatelab/argclinic/internal/pipeline"
	"github.com/debatelab/argclinic/internal/server"
)

var addr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ArgClinic HTTP API",
	Long: `Serve exposes the parse pipeline over HTTP for the web client:

  POST /api/parse   {"text", "format", "resolution", "dateRange"}
  GET  /healthz

Example:
  argclinic serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	addProviderFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	parser, err := pipeline.NewParser(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(parser).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return srv.ListenAndServe()
}
