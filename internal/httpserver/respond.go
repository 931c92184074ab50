package httpserver

import (
	"errors"
	"net/http"

	"alumnimart/internal/domain"
	"alumnimart/internal/paystack"

	"github.com/gin-gonic/gin"
)

// Every response carries a success flag; data and message are optional.
// Validation problems keep HTTP 200 with success=false so browser clients can
// render the message without special-casing status codes.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondError maps service errors onto the envelope. Unrecognized errors are
// logged with full detail and surfaced as a generic retry message.
func (h *handlers) respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		respondFail(c, http.StatusOK, ve.Msg)
		return
	}
	var ge *paystack.GatewayError
	if errors.As(err, &ge) {
		respondFail(c, http.StatusBadGateway, "payment initialization failed, try again")
		return
	}
	switch {
	case errors.Is(err, domain.ErrForbidden):
		respondFail(c, http.StatusForbidden, "you do not have permission to do this")
	case errors.Is(err, domain.ErrNotFound):
		respondFail(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		respondFail(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		respondFail(c, http.StatusOK, "your cart is empty")
	default:
		h.logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		respondFail(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
