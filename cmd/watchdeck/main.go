// Package main provides the watchdeck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/watchdeck/watchdeck/internal/app"
	"github.com/watchdeck/watchdeck/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command. Running without a subcommand starts
// the server, so `watchdeck` alone does the right thing.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "watchdeck",
		Short:   "LAN watch deck for YouTube playback",
		Long:    "Watchdeck tracks playback positions, watch history, favorites and channel feeds, and serves them over a small LAN API.",
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New().Run()
		},
	}

	rootCmd.SetVersionTemplate("watchdeck version {{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newServeCmd creates the serve subcommand, an explicit alias of the root.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the watchdeck server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New().Run()
		},
	}
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "watchdeck %s (commit=%s, built=%s, go=%s)\n",
				version.Version, version.Commit, version.BuildDate, version.GoVersion)
		},
	}
}
