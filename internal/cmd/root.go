// Package cmd holds the tracker command line: the HTTP server and the
// maintenance commands that share its configuration.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Study session and task tracker",
	Long: `tracker serves the study tracker HTTP API: users, study sessions and
their members, tasks, roles and notifications.

Configuration is read from the environment (PORT, JWT_SECRET, STORE_DRIVER,
MONGO_URI, REDIS_ENABLED, ...).`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with ctx as the command context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
