// Package cmd wires rosmasterd's command-line surface: a cobra root
// command with a serve subcommand and a version subcommand, flags bound
// through viper the way the teacher's otto CLI wires config.
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cmdOutput io.Writer
	cfgViper  = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "rosmasterd",
	Short: "rosmasterd is a ROS 1 compatible master and parameter server",
	Long: `rosmasterd tracks node, topic, service, and parameter registrations
for a ROS 1 graph and answers the master's XML-RPC API.`,
	Run: func(cmd *cobra.Command, args []string) {
		serveRun(cmd, args)
	},
}

func init() {
	cmdOutput = os.Stdout
	rootCmd.SetOut(cmdOutput)

	rootCmd.PersistentFlags().String("master-uri", "", "ROS_MASTER_URI to bind and advertise (overrides ROS_MASTER_URI env)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	_ = cfgViper.BindPFlag("master_uri", rootCmd.PersistentFlags().Lookup("master-uri"))
	_ = cfgViper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = cfgViper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// GetRootCmd returns the root cobra command, exported for tests that
// exercise the full flag-parsing path.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute runs the root command, logging (rather than panicking on) any
// error it returns.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
