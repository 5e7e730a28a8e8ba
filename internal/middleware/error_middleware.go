package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursecatalog/internal/app/views"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// HandleError renders the error page for errors that were not recovered by
// a handler. Catalog read, write and decode failures end up here as 500s.
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found"
	case apperrors.Is(err, apperrors.ErrCatalogIO, apperrors.ErrCatalogDecode):
		message = "The course catalog could not be read or written"
	}

	event := logger.Error()
	if status < http.StatusInternalServerError {
		event = logger.Warn()
	}
	event.Err(err).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetString(RequestIDKey)).
		Int("status", status).
		Msg("Request failed")

	c.HTML(status, views.ErrorTemplate, gin.H{
		"title":   "Error",
		"status":  status,
		"message": message,
	})
	c.Abort()
}
