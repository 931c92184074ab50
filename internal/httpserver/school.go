package httpserver

import (
	"net/http"
	"strings"

	"alumnimart/internal/domain"

	"github.com/gin-gonic/gin"
)

type schoolRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *handlers) createSchool(c *gin.Context) {
	var in schoolRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		respondFail(c, http.StatusOK, "school name is required")
		return
	}
	s, err := h.deps.SchoolSvc.Create(c.Request.Context(), strings.TrimSpace(in.Name), strings.TrimSpace(in.Location))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, s)
}

func (h *handlers) getSchool(c *gin.Context) {
	s, err := h.deps.SchoolSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, s)
}

func (h *handlers) listSchools(c *gin.Context) {
	schools, err := h.deps.SchoolSvc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if schools == nil {
		schools = []domain.School{}
	}
	respondData(c, http.StatusOK, schools)
}
