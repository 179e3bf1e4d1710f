package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/danilloubr/workplace-tasks-challenge/internal/services"
)

const identityCtxKey = "identity"

// HandleAuthMiddleware extracts and verifies the bearer token, then
// stores the resulting identity in the request context. Every
// protected handler runs after it.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	identity, err := h.auth.ParseAccessToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse access token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(identityCtxKey, *identity)
	c.Next()
}

func identityFromContext(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(identityCtxKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := value.(services.Identity)
	return identity, ok
}

// mustIdentity aborts with 401 when no identity was stored by the
// auth middleware, which only happens if a route is miswired.
func (h *handlerImpl) mustIdentity(c *gin.Context) (services.Identity, bool) {
	identity, ok := identityFromContext(c)
	if !ok {
		h.logger.Error().Msg("no identity found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	return identity, ok
}
