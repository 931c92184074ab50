package httpserver

import (
	"errors"
	"net/http"

	"alumnimart/internal/domain"
	"alumnimart/internal/paystack"
	ordersvc "alumnimart/internal/service/order"

	"github.com/gin-gonic/gin"
)

// Callback result codes. Clients branch on the code, not the message, so an
// ambiguous verification can be retried while a definitive failure is not.
const (
	codePaid             = "paid"
	codePaymentFailed    = "payment_failed"
	codeUnresolved       = "unresolved"
	codeGatewayError     = "gateway_error"
	codeUnknownReference = "unknown_reference"
	codeInvalidReference = "invalid_reference"
	codeVerifyError      = "verify_error"
)

// paymentCallback handles the browser redirect from Paystack. The reference
// alone decides the outcome; the order mutates only after the remote verify
// confirms it, never from the mere arrival of the callback.
func (h *handlers) paymentCallback(c *gin.Context) {
	reference := c.Query("reference")

	result, err := h.deps.OrderSvc.VerifyPayment(c.Request.Context(), reference)
	if err != nil {
		status, code, msg := classifyVerifyError(err)
		if code == codeVerifyError {
			h.logger.Printf("payment callback ref=%q: %v", reference, err)
		}
		c.JSON(status, gin.H{"success": false, "code": code, "message": msg})
		return
	}

	if !result.Paid {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"code":    codePaymentFailed,
			"message": "payment was not successful",
			"data":    gin.H{"order": result.Order},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"code":    codePaid,
		"message": "payment confirmed",
		"data":    gin.H{"order": result.Order},
	})
}

func classifyVerifyError(err error) (int, string, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusOK, codeInvalidReference, ve.Msg
	}
	var ge *paystack.GatewayError
	if errors.As(err, &ge) {
		return http.StatusBadGateway, codeGatewayError, "payment provider rejected the verification, try again"
	}
	switch {
	case errors.Is(err, ordersvc.ErrPaymentUnresolved):
		return http.StatusOK, codeUnresolved, "payment is not resolved yet, try again shortly"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, codeUnknownReference, "no order matches this payment reference"
	default:
		return http.StatusBadGateway, codeVerifyError, "could not verify the payment, try again"
	}
}
