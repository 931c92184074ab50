package httpserver

import (
	"net/http"

	"alumnimart/internal/domain"
	ordersvc "alumnimart/internal/service/order"

	"github.com/gin-gonic/gin"
)

func (h *handlers) checkout(c *gin.Context) {
	var in ordersvc.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	result, err := h.deps.OrderSvc.Checkout(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.History(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondData(c, http.StatusOK, orders)
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.OrderSvc.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var in orderStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	order, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}
