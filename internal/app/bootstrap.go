package app

import (
	"context"
	"time"

	"github.com/danilloubr/workplace-tasks-challenge/internal/config"
)

// MustBootstrapAdmin ensures the initial admin account exists before
// the server starts accepting requests. A no-op when no bootstrap
// email is configured.
func MustBootstrapAdmin() {
	cfg := config.Global().Bootstrap
	if cfg.AdminEmail == "" {
		globalLogger.Debug().Msg("no bootstrap admin configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := newUserService().BootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to bootstrap admin account")
		panic(err)
	}
}
