package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	controllers "github.com/phillip/charity-admin-go/controllers"
	models "github.com/phillip/charity-admin-go/models"
	routes "github.com/phillip/charity-admin-go/routes"
	"github.com/phillip/charity-admin-go/store"
	"github.com/phillip/charity-admin-go/uploads"
	utils "github.com/phillip/charity-admin-go/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	if err := cfg.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := cfg.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect", zap.Error(err))
		}
	}()

	provider, err := cfg.NewUploadProvider(ctx)
	if err != nil {
		return err
	}

	backend := cfg.Backend()
	resources := controllers.Resources(backend, controllers.Deps{
		Media:            uploads.NewNormalizer(provider, models.Placeholder, logger),
		Mailer:           utils.NewMailer(cfg.Mail, logger),
		Log:              logger,
		StrictCategories: cfg.StrictCategories,
	})

	if backend.DB != nil {
		if err := store.EnsureIndexes(ctx, backend.DB, controllers.IndexSpecs(resources), logger); err != nil {
			return err
		}
	} else {
		logger.Warn("using in-memory store; data is lost on exit")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	routes.SetupRoutes(r, cfg, resources, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver), zap.String("uploads", cfg.UploadProvider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
