package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	controllers "github.com/phillip/charity-admin-go/controllers"
	"github.com/phillip/charity-admin-go/store"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the list-sort indexes on every collection and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StoreDriver != "mongo" {
			return errors.New("indexes needs STORE_DRIVER=mongo")
		}
		ctx := cmd.Context()
		if err := cfg.Connect(ctx); err != nil {
			return err
		}
		defer cfg.Disconnect(ctx)

		backend := cfg.Backend()
		specs := controllers.IndexSpecs(controllers.Resources(backend, controllers.Deps{Log: logger}))
		if err := store.EnsureIndexes(ctx, backend.DB, specs, logger); err != nil {
			return err
		}
		logger.Info("indexes ensured", zap.Int("collections", len(specs)))
		return nil
	},
}
