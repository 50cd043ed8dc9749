package cmd

import (
	"github.com/spf13/cobra"

	mongostore "github.com/studytrack/tracker/internal/infrastructure/db/mongo"
	"github.com/studytrack/tracker/internal/pkg/config"
	"github.com/studytrack/tracker/pkg/logger"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes the store relies on",
	Long: `Create the unique and lookup indexes in MONGO_DB. Uniqueness of
usernames, emails, role names and session memberships is enforced by these
indexes, so run this before the first serve against a new database.

The command is idempotent.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd)
}
