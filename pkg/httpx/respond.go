// Package httpx holds the gin response helpers shared by delivery handlers.
package httpx

import (
	"github.com/fhlgrn/ReadyReply/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// RespondError writes {"message","code"} with the status carried by err.
// The error is attached to the context so the access log can record it.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(apperr.StatusOf(err), gin.H{
		"message": apperr.MessageOf(err),
		"code":    apperr.CodeOf(err),
	})
}

// BadRequest answers 400 with a validation code.
func BadRequest(c *gin.Context, message string) {
	RespondError(c, apperr.Validation(message))
}
