package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *handlers) cartAdd(c *gin.Context) {
	var in cartAddRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	count, err := h.deps.CartSvc.Add(c.Request.Context(), currentUser(c).ID, in.ProductID, in.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"cartCount": count})
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) cartUpdate(c *gin.Context) {
	var in cartUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	if err := h.deps.CartSvc.UpdateQuantity(c.Request.Context(), currentUser(c).ID, c.Param("productId"), in.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "cart updated")
}

func (h *handlers) cartRemove(c *gin.Context) {
	if err := h.deps.CartSvc.Remove(c.Request.Context(), currentUser(c).ID, c.Param("productId")); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "item removed")
}

func (h *handlers) cartClear(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context(), currentUser(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "cart cleared")
}

func (h *handlers) cartSummary(c *gin.Context) {
	summary, err := h.deps.CartSvc.Summary(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

func (h *handlers) cartCount(c *gin.Context) {
	count, err := h.deps.CartSvc.Count(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"cartCount": count})
}
