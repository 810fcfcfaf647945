package cli

import (
	"gyangroup/db"

	"github.com/spf13/cobra"
)

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		Long:  "Runs GORM AutoMigrate for categories, products, blogs and inquiries, then exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			conn, err := db.Open(cfg.Database.URL, logger)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if err := db.Migrate(conn); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
