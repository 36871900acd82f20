package main

import (
	"github.com/spf13/cobra"

	"github.com/zerotrace/smart-facility/internal/infrastructure/db/sqldb"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long:  `Runs GORM AutoMigrate for every table. Existing columns and data are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			if err := sqldb.Migrate(b.db); err != nil {
				return err
			}
			b.log.Info().Str("driver", b.cfg.Database.Driver).Msg("schema migrated")
			return nil
		},
	}
}
