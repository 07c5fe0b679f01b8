package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/checkout"
)

// startCheckout opens a hosted checkout for a direct order submission and clears the cart.
func (h *Handler) startCheckout(c *gin.Context) {
	var sub checkout.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		badRequest(c, err)
		return
	}
	s := currentSession(c)
	if sub.UserID == "" {
		sub.UserID = s.ID
	}
	res, err := h.Checkout.StartOnline(c.Request.Context(), sub, h.origin(c), &s.Cart)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	if !h.saveSession(c, s) {
		return
	}
	ok(c, res)
}

// placeCOD records a cash-on-delivery order and clears the cart.
func (h *Handler) placeCOD(c *gin.Context) {
	var sub checkout.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		badRequest(c, err)
		return
	}
	s := currentSession(c)
	if sub.UserID == "" {
		sub.UserID = s.ID
	}
	res, err := h.Checkout.PlaceCOD(c.Request.Context(), sub, h.origin(c), &s.Cart)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	if !h.saveSession(c, s) {
		return
	}
	created(c, res)
}

type verifyPaymentRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// verifyPayment is called by the tracking page after the hosted checkout redirects back.
func (h *Handler) verifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := h.Verifier.Verify(c.Request.Context(), strings.TrimSpace(req.SessionID))
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	ok(c, gin.H{"success": true, "orderId": o.ID})
}

func (h *Handler) trackOrder(c *gin.Context) {
	o, err := h.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Log, apperr.Remote("get order", err))
		return
	}
	if o == nil {
		fail(c, h.Log, apperr.ErrOrderNotFound)
		return
	}
	ok(c, o)
}
