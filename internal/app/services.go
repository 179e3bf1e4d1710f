package app

import (
	"github.com/danilloubr/workplace-tasks-challenge/internal/config"
	"github.com/danilloubr/workplace-tasks-challenge/internal/repository/postgres"
	"github.com/danilloubr/workplace-tasks-challenge/internal/services"
)

func newAuthService() services.AuthService {
	jwtCfg := config.Global().JWT
	return services.NewAuthService(
		globalLogger,
		postgres.NewUserRepository(globalLogger, globalPostgresPool),
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.AccessTokenTTL,
	)
}

func newUserService() services.UserService {
	return services.NewUserService(
		globalLogger,
		postgres.NewUserRepository(globalLogger, globalPostgresPool),
	)
}

func newTaskService() services.TaskService {
	return services.NewTaskService(
		globalLogger,
		postgres.NewTaskRepository(globalLogger, globalPostgresPool),
	)
}
