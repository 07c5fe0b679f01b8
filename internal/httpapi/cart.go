package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tailoringStorefront/internal/cart"
	"tailoringStorefront/models"
)

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func cartView(ct *cart.Cart) cartResponse {
	items := ct.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return cartResponse{Items: items, Count: ct.Count(), Total: ct.Total()}
}

func (h *Handler) getCart(c *gin.Context) {
	ok(c, cartView(&currentSession(c).Cart))
}

type addCartItemRequest struct {
	DesignID string `json:"designId" binding:"required"`
}

// addCartItem adds a catalog design; title, image and price come from the catalog.
func (h *Handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.Catalog.Design(c.Request.Context(), req.DesignID)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	s := currentSession(c)
	changed, err := s.Cart.Add(models.CartItem{ID: d.ID, Title: d.Title, Category: d.Category, Image: d.Image, Price: d.BasePrice})
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	if changed && !h.saveSession(c, s) {
		return
	}
	ok(c, cartView(&s.Cart))
}

func (h *Handler) removeCartItem(c *gin.Context) {
	s := currentSession(c)
	if s.Cart.Remove(c.Param("id")) && !h.saveSession(c, s) {
		return
	}
	ok(c, cartView(&s.Cart))
}

func (h *Handler) clearCart(c *gin.Context) {
	s := currentSession(c)
	s.Cart.Clear()
	if !h.saveSession(c, s) {
		return
	}
	ok(c, cartView(&s.Cart))
}
