package cli

import (
	"github.com/spf13/cobra"

	"github.com/kamilw/dietplan/internal/config"
	"github.com/kamilw/dietplan/internal/db"
	"github.com/kamilw/dietplan/internal/store"
)

// openStore loads configuration, opens the database (applying migrations),
// and returns the store. The caller must close the returned database.
func openStore(cmd *cobra.Command) (*db.DB, *store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	if f := cmd.Flag("db"); f != nil && f.Value.String() != "" {
		cfg.DBPath = f.Value.String()
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, nil, nil, err
	}

	return database, store.New(database), cfg, nil
}
