package httpserver

import (
	"net/http"

	"alumnimart/internal/domain"
	feedsvc "alumnimart/internal/service/feed"

	"github.com/gin-gonic/gin"
)

func (h *handlers) createFeedPost(c *gin.Context) {
	var in feedsvc.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	post, err := h.deps.FeedSvc.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, post)
}

func (h *handlers) listFeed(c *gin.Context) {
	posts, err := h.deps.FeedSvc.List(c.Request.Context(), c.Param("id"), c.Query("kind"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if posts == nil {
		posts = []domain.FeedPost{}
	}
	respondData(c, http.StatusOK, posts)
}

func (h *handlers) deleteFeedPost(c *gin.Context) {
	if err := h.deps.FeedSvc.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "post deleted")
}
