package app_error

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// New attaches an HTTP status to an error. Handle picks it up again at the
// controller boundary.
func New(status int, err error) error {
	return statusError{error: err, status: status}
}

// Handle writes an error response with the status carried by the error.
// Record-not-found errors map to 404, everything unannotated to 500.
func Handle(c *gin.Context, err error) {
	var statusErr statusError
	if errors.As(err, &statusErr) {
		c.JSON(statusErr.HTTPStatus(), gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	c.JSON(500, gin.H{"error": err.Error()})
}
