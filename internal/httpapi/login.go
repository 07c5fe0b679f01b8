package httpapi

import (
	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.Auth.LoginAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	ok(c, gin.H{"token": token})
}

type deliveryLoginRequest struct {
	PersonnelNumber string `json:"personnelNumber" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

func (h *Handler) deliveryLogin(c *gin.Context) {
	var req deliveryLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, d, err := h.Auth.LoginDriver(c.Request.Context(), req.PersonnelNumber, req.Password)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	ok(c, gin.H{"token": token, "driver": d})
}
