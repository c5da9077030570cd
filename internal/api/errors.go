package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/store"
)

// statusFor maps engine and store errors to HTTP status codes.
func statusFor(err error) int {
	var (
		invalid     *checklist.InvalidStatusError
		noBorrowers *checklist.NoBorrowersError
	)
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, checklist.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, checklist.ErrEmptyComment),
		errors.Is(err, checklist.ErrFileIndexOutOfRange),
		errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, checklist.ErrNotDocumentItem),
		errors.Is(err, checklist.ErrFirstReviewRequired),
		errors.Is(err, checklist.ErrSecondReviewRecorded):
		return http.StatusConflict
	case errors.As(err, &noBorrowers):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checklist.ErrNoFileStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError responds with err and its mapped status. Server errors are
// logged.
func (s *Server) writeError(c *gin.Context, action string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(action+" failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(code, gin.H{"error": err.Error(), "action": action})
}
