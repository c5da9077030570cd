package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nhle/loan-checklist/internal/identity"
	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

const userKey = "user"

// requireUser resolves the X-User-ID header against the directory and
// attaches the user to the request context.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(UserHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UserHeader + " header required"})
			return
		}

		u, err := s.directory.GetUserByID(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		if err != nil {
			s.logger.Error("resolving user", "user_id", id, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "resolving user"})
			return
		}

		c.Set(userKey, *u)
		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), *u))
		c.Next()
	}
}

func currentUser(c *gin.Context) model.User {
	return c.MustGet(userKey).(model.User)
}
