package migrate

import (
	"context"
	"fmt"

	"github.com/hrgrifes/atelier-backend/pkg/config"
	"github.com/hrgrifes/atelier-backend/pkg/db"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

// MaybeRun applies migrations automatically when the feature flag is enabled.
// The sqlite deployment has no separate deploy step, so this defaults on.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": cfg.DB.GooseDialect()})
	logg.Info(ctx, "running goose migrations")

	if err := Up(ctx, sqlDB, cfg.DB.GooseDialect()); err != nil {
		return err
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
