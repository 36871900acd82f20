package main

import (
	"github.com/spf13/cobra"

	"github.com/zerotrace/smart-facility/internal/core/service"
	"github.com/zerotrace/smart-facility/internal/infrastructure/db/sqldb"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default users and spaces",
		Long:  `Creates the admin, manager and member accounts and three sample spaces when the respective tables are empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			if err := sqldb.Migrate(b.db); err != nil {
				return err
			}

			repos := newRepositories(b.db)
			// Registration never touches the session store.
			auth := service.NewAuthService(repos.users, nil, repos.tx, b.cfg.JWTSecret, b.cfg.TokenTTL, b.log)
			return runSeed(cmd.Context(), b, repos, auth)
		},
	}
}
