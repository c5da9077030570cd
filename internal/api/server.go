// Package api exposes the checklist engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/model"
)

// UserHeader carries the id of the acting user on every request.
const UserHeader = "X-User-ID"

// Directory resolves the users and loans referenced by requests.
type Directory interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Inbox lists and acknowledges a user's notifications.
type Inbox interface {
	Unread(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// Server holds the HTTP handlers.
type Server struct {
	engine    *checklist.Engine
	directory Directory
	inbox     Inbox
	logger    *slog.Logger
}

// New creates a Server.
func New(engine *checklist.Engine, directory Directory, inbox Inbox, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, directory: directory, inbox: inbox, logger: logger}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authed := r.Group("/", s.requireUser())

	loans := authed.Group("/loans/:loanID")
	loans.POST("/checklist/materialize", s.materialize)
	loans.GET("/checklist", s.getChecklist)
	loans.GET("/documents", s.getDocuments)
	loans.GET("/mentions/suggestions", s.mentionSuggestions)

	items := authed.Group("/checklist/:itemID")
	items.GET("", s.getItem)
	items.PUT("/status", s.changeStatus)
	items.PUT("/review/first", s.setReview(false))
	items.PUT("/review/second", s.setReview(true))
	items.POST("/comments", s.addComment)
	items.DELETE("/comments/:commentID", s.deleteComment)
	items.POST("/files", s.addFiles)
	items.DELETE("/files/:index", s.removeFile)
	items.POST("/loe", s.requestLOE)
	items.PUT("/assignees", s.assign)
	items.PUT("/due-date", s.setDueDate)

	authed.GET("/notifications", s.listNotifications)
	authed.PUT("/notifications/:id/read", s.markNotificationRead)

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
