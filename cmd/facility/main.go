// Command facility runs the smart facility API and its maintenance tasks.
//
// @title                       Smart Facility API
// @version                     1.0
// @description                 Bookings, maintenance tickets and spaces for a shared facility.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	serve := newServeCommand()

	rootCmd := &cobra.Command{
		Use:          "facility",
		Short:        "Smart facility booking and maintenance service",
		Long:         `Serves the facility API (spaces, bookings, maintenance tickets) and provides schema migration and seeding commands.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	rootCmd.Flags().AddFlagSet(serve.Flags())

	rootCmd.AddCommand(
		serve,
		newMigrateCommand(),
		newSeedCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
