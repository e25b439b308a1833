package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rosmaster-go/rosmaster/internal/config"
	"github.com/rosmaster-go/rosmaster/internal/diagnostics"
	"github.com/rosmaster-go/rosmaster/internal/logging"
	"github.com/rosmaster-go/rosmaster/internal/master"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start rosmasterd",
	Long:  `Start the ROS master and parameter server and block until interrupted.`,
	RunE:  serveRunE,
}

func serveRun(cmd *cobra.Command, args []string) {
	if err := serveRunE(cmd, args); err != nil {
		cmd.PrintErrln(err)
	}
}

func serveRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgViper)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logSvc, err := logging.NewService(cfg.Logging)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	m, err := master.New(cfg.MasterURI,
		master.WithDiagnosticsHub(diagnostics.NewHub()),
		master.WithLoggingService(logSvc),
	)
	if err != nil {
		return fmt.Errorf("build master: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return m.ListenAndServe(ctx, cfg.ListenAddr)
}
