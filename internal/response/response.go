// Package response maps service results and errors onto HTTP responses.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
)

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// SuccessWithWarning writes a 200 with the payload plus a warning for
// partial outcomes, such as a saved update whose notification failed.
func SuccessWithWarning(c *gin.Context, data interface{}, warning string) {
	c.JSON(http.StatusOK, gin.H{"data": data, "warning": warning})
}

// CreatedWithWarning writes a 201 with the payload plus a warning.
func CreatedWithWarning(c *gin.Context, data interface{}, warning string) {
	c.JSON(http.StatusCreated, gin.H{"data": data, "warning": warning})
}

// Paginated writes a 200 with items and pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps an application error to the appropriate status code.
// Validation errors include the field list; anything outside the taxonomy
// becomes a generic 500 so internal details never leak.
func Error(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch appErr.Code {
	case apperror.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  appErr.Message,
			"fields": appErr.Fields,
		})
	case apperror.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
	case apperror.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": appErr.Message})
	case apperror.CodeUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
	case apperror.CodeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": appErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
