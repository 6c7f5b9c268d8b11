package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes returned in the "error" field so clients
// can branch without string-matching messages.
const (
	errValidation   = "validation_error"
	errUnauthorized = "unauthorized"
	errForbidden    = "forbidden"
	errNotFound     = "not_found"
	errConflict     = "conflict"
	errServer       = "server_error"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":   code,
		"message": message,
	})
}

// paramUint parses a numeric path parameter, returning 0 when invalid.
func paramUint(c *gin.Context, name string) uint {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}
