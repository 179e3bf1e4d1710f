package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
	"github.com/danilloubr/workplace-tasks-challenge/internal/services"
)

// userResponse never carries the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}

func (h *handlerImpl) HandleGetMyProfile(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(c, identity.UserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	CurrentPassword string `json:"current_password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.users.UpdateProfile(c, services.UpdateProfileParams{
		ActorID:         identity.UserID,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required,max=255"`
	NewPassword     string `json:"new_password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleChangePassword(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.users.ChangePassword(c, services.ChangePasswordParams{
		ActorID:         identity.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleListUsers(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	users, err := h.users.ListUsers(c, identity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]userResponse, len(users))
	for i, user := range users {
		response[i] = newUserResponse(user)
	}
	c.JSON(http.StatusOK, response)
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
	Role     string `json:"role" binding:"required"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.CreateUser(c, services.CreateUserParams{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, identity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	if userID == "" {
		abort(c, newBadRequestError("no user id provided"))
		return
	}

	user, err := h.users.GetUser(c, userID, identity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type adminUpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"omitempty,max=255"`
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	if userID == "" {
		abort(c, newBadRequestError("no user id provided"))
		return
	}

	var req adminUpdateUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.users.UpdateUser(c, userID, services.AdminUpdateUserParams{
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	}, identity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	if userID == "" {
		abort(c, newBadRequestError("no user id provided"))
		return
	}

	err := h.users.DeleteUser(c, userID, identity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
