package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	serve := func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), configFile)
	}

	root := &cobra.Command{
		Use:          "task-api",
		Short:        "Task and comment REST API",
		SilenceUsage: true,
		RunE:         serve,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default ./config.yaml if present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(configFile)
			},
		},
	)

	return root
}
