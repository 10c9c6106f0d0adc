package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
	"synergyai.app/pkg/validation"
)

const userIDKey = "user_id"

// authenticate resolves the bearer token to a user id and records the
// project/user pair as active for the scheduler.
func (s *HTTPServerAdapter) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := validation.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			s.handleError(c, errors.NewUnauthorizedError("missing bearer token"))
			c.Abort()
			return
		}

		userID, err := s.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			slog.Debug("Authentication failed", "error", err)
			s.handleError(c, err)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		s.activity.Touch(ports.WarmTarget{UserID: userID, ProjectID: activeProject(c)})
		c.Next()
	}
}

// activeProject is the path project id when it could name a cache key
// segment, empty otherwise. Rejected ids must never become warm targets.
func activeProject(c *gin.Context) string {
	projectID, ok := validation.TrimAndValidate(c.Param("project_id"))
	if !ok || !validation.IsKeySafe(projectID) {
		return ""
	}
	return projectID
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
