// Package response holds the JSON response helpers and the domain error to
// HTTP status mapping shared by all handlers.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peershare/service-sharing/internal/domain"
)

// Success writes data with 200 OK.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes 204 No Content.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes an error message with 400 Bad Request.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Error maps a domain error to its HTTP status and writes it. Unknown
// errors become 500 without leaking their message.
func Error(c *gin.Context, err error) {
	var (
		notFound      *domain.NotFoundError
		incorrectTime *domain.IncorrectTimeError
		unavailable   *domain.UnavailableError
		stateErr      *domain.StateError
		validation    *domain.ValidationError
		conflict      *domain.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &incorrectTime),
		errors.As(err, &unavailable),
		errors.As(err, &stateErr),
		errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
