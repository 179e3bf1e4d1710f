package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danilloubr/workplace-tasks-challenge/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetMyProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
	HandleChangePassword(c *gin.Context)
	HandleListUsers(c *gin.Context)
	HandleCreateUser(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	users  services.UserService
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	userService services.UserService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		users:  userService,
		tasks:  taskService,
	}
}
