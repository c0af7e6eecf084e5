// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// Questboard opens the Discord gateway socket here so the state cache
// starts filling before the first dashboard request arrives.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Discord.Open(); err != nil {
		return fmt.Errorf("discord gateway open: %w", err)
	}
	logger.Info("discord gateway connected")
	return nil
}
