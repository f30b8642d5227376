package cli

import (
	"github.com/spf13/cobra"

	"github.com/iliyamo/shift-scheduler/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the employees and shifts tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load()
		if err != nil {
			return err
		}
		logger := newLogger(conf.Logger)
		_, db, err := openStore(cmd.Context(), conf.DB, true, logger)
		if err != nil {
			return err
		}
		return db.Close()
	},
}
