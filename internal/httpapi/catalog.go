package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/catalog"
)

func (h *Handler) listDesigns(c *gin.Context) {
	ds, err := h.Catalog.Designs(c.Request.Context())
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	ok(c, gin.H{"designs": ds})
}

func (h *Handler) getDesign(c *gin.Context) {
	d, err := h.Catalog.Design(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	ok(c, d)
}

func (h *Handler) listCategories(c *gin.Context) {
	ok(c, gin.H{"categories": catalog.Categories()})
}

func (h *Handler) getCustomizations(c *gin.Context) {
	cz, found := catalog.Customizations(c.Param("category"))
	if !found {
		fail(c, h.Log, apperr.NotFound("no customizations for %q", c.Param("category")))
		return
	}
	ok(c, cz)
}

type quoteRequest struct {
	Selections map[string]string `json:"selections"`
}

type quoteResponse struct {
	Extra        decimal.Decimal `json:"extra"`
	Descriptions []string        `json:"descriptions,omitempty"`
}

func (h *Handler) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category := c.Param("category")
	extra, err := catalog.Quote(category, req.Selections)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	ok(c, quoteResponse{Extra: extra, Descriptions: catalog.Describe(category, req.Selections)})
}
