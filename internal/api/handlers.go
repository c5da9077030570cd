package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/mention"
	"github.com/nhle/loan-checklist/internal/model"
)

type checklistResponse struct {
	LoanID  string            `json:"loan_id"`
	Groups  []checklist.Group `json:"groups"`
	Summary checklist.Summary `json:"summary"`
}

// itemResponse is a checklist item with its comments rendered for display.
type itemResponse struct {
	*model.ChecklistItem
	RenderedComments map[string][]mention.Segment `json:"rendered_comments"`
}

func (s *Server) materialize(c *gin.Context) {
	loanID := c.Param("loanID")
	created, err := s.engine.Materialize(c.Request.Context(), loanID)

	var matErr *checklist.MaterializeError
	if errors.As(err, &matErr) {
		failed := make([]string, len(matErr.Failures))
		for i, f := range matErr.Failures {
			failed[i] = f.Key
		}
		c.JSON(http.StatusMultiStatus, gin.H{"created": created, "failed": failed, "error": err.Error()})
		return
	}
	if err != nil {
		s.writeError(c, "materialize checklist", err)
		return
	}
	if created == nil {
		created = []model.ChecklistItem{}
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (s *Server) getChecklist(c *gin.Context) {
	loanID := c.Param("loanID")
	items, err := s.engine.Items(c.Request.Context(), loanID)
	if err != nil {
		s.writeError(c, "load checklist", err)
		return
	}
	groups := checklist.GroupByCategory(items, s.engine.Catalog())
	if groups == nil {
		groups = []checklist.Group{}
	}
	c.JSON(http.StatusOK, checklistResponse{
		LoanID:  loanID,
		Groups:  groups,
		Summary: checklist.Summarize(items),
	})
}

func (s *Server) getDocuments(c *gin.Context) {
	docs, err := s.engine.Documents(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		s.writeError(c, "load documents", err)
		return
	}
	if docs == nil {
		docs = []model.LoanDocument{}
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) mentionSuggestions(c *gin.Context) {
	users, err := s.engine.MentionSuggestions(c.Request.Context(), c.Param("loanID"), c.Query("q"))
	if err != nil {
		s.writeError(c, "suggest mentions", err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) getItem(c *gin.Context) {
	item, err := s.engine.Item(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		s.writeError(c, "load checklist item", err)
		return
	}
	rendered, err := s.engine.RenderComments(c.Request.Context(), item)
	if err != nil {
		s.writeError(c, "render comments", err)
		return
	}
	c.JSON(http.StatusOK, itemResponse{ChecklistItem: item, RenderedComments: rendered})
}

func (s *Server) changeStatus(c *gin.Context) {
	var req struct {
		Status model.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	item, err := s.engine.ChangeStatus(c.Request.Context(), c.Param("itemID"), req.Status)
	if err != nil {
		s.writeError(c, "change status", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) setReview(second bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Completed *bool `json:"completed" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		var (
			item *model.ChecklistItem
			err  error
		)
		if second {
			item, err = s.engine.SetSecondReview(c.Request.Context(), c.Param("itemID"), *req.Completed)
		} else {
			item, err = s.engine.SetFirstReview(c.Request.Context(), c.Param("itemID"), *req.Completed)
		}
		if err != nil {
			s.writeError(c, "update review", err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (s *Server) addComment(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	comment, err := s.engine.AddComment(c.Request.Context(), c.Param("itemID"), req.Text)
	if err != nil {
		s.writeError(c, "add comment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) deleteComment(c *gin.Context) {
	item, err := s.engine.DeleteComment(c.Request.Context(), c.Param("itemID"), c.Param("commentID"))
	if err != nil {
		s.writeError(c, "delete comment", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) addFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form", "details": err.Error()})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	files := make([]model.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("reading %s", fh.Filename), "details": err.Error()})
			return
		}
		defer f.Close()
		files = append(files, model.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	category := model.DocumentCategory(c.PostForm("category"))
	item, err := s.engine.AddFiles(c.Request.Context(), c.Param("itemID"), category, files)

	var upErr *checklist.UploadError
	if errors.As(err, &upErr) {
		c.JSON(http.StatusMultiStatus, gin.H{"item": item, "failed": upErr.Failures, "error": err.Error()})
		return
	}
	if err != nil {
		s.writeError(c, "upload files", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (s *Server) removeFile(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file index must be a number"})
		return
	}

	item, err := s.engine.RemoveFile(c.Request.Context(), c.Param("itemID"), index)
	if err != nil {
		s.writeError(c, "remove file", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) requestLOE(c *gin.Context) {
	item, err := s.engine.RequestLOE(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		s.writeError(c, "request letter of explanation", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) assign(c *gin.Context) {
	var req struct {
		UserIDs []string `json:"user_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	item, err := s.engine.Assign(c.Request.Context(), c.Param("itemID"), req.UserIDs)
	if err != nil {
		s.writeError(c, "assign", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) setDueDate(c *gin.Context) {
	var req struct {
		DueDate *string `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var due *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date", "details": err.Error()})
			return
		}
		due = &d
	}

	item, err := s.engine.SetDueDate(c.Request.Context(), c.Param("itemID"), due)
	if err != nil {
		s.writeError(c, "set due date", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (s *Server) listNotifications(c *gin.Context) {
	u := currentUser(c)
	notifications, err := s.inbox.Unread(c.Request.Context(), u.ID)
	if err != nil {
		s.writeError(c, "list notifications", err)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	if err := s.inbox.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, "mark notification read", err)
		return
	}
	c.Status(http.StatusNoContent)
}
