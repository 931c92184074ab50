package httpserver

import (
	"errors"
	"net/http"

	accountsvc "alumnimart/internal/service/account"

	"github.com/gin-gonic/gin"
)

func (h *handlers) signup(c *gin.Context) {
	var in accountsvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	u, err := h.deps.AccountSvc.Signup(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	token, u, err := h.deps.AccountSvc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, accountsvc.ErrInvalidCredentials) {
			respondFail(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.AccountSvc.Logout(c.Request.Context(), currentToken(c)); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "logged out")
}

func (h *handlers) me(c *gin.Context) {
	u := currentUser(c)
	respondData(c, http.StatusOK, u)
}
