package httpapi

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/models"
)

const defaultReviewLimit = 50

func (h *Handler) listReviews(c *gin.Context) {
	limit := defaultReviewLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fail(c, h.Log, apperr.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}
	list, err := h.Reviews.List(c.Request.Context(), limit)
	if err != nil {
		fail(c, h.Log, apperr.Remote("list reviews", err))
		return
	}
	if list == nil {
		list = []models.Review{}
	}
	ok(c, gin.H{"reviews": list})
}

type reviewRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=2000"`
	Image   string `json:"image" binding:"omitempty,url"`
}

func (h *Handler) createReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	name, comment := strings.TrimSpace(req.Name), strings.TrimSpace(req.Comment)
	if name == "" || comment == "" {
		fail(c, h.Log, apperr.Validation("name and comment must not be blank"))
		return
	}
	rv, err := h.Reviews.Create(c.Request.Context(), &models.Review{Name: name, Rating: req.Rating, Comment: comment, Image: req.Image})
	if err != nil {
		fail(c, h.Log, apperr.Remote("create review", err))
		return
	}
	created(c, rv)
}
