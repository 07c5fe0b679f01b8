package httpapi

import (
	"github.com/gin-gonic/gin"

	"tailoringStorefront/internal/checkout"
	"tailoringStorefront/internal/wizard"
	"tailoringStorefront/models"
)

type wizardResponse struct {
	Step         wizard.Step          `json:"step"`
	Design       *wizard.DesignChoice `json:"design,omitempty"`
	Measurements models.Measurements  `json:"measurements,omitempty"`
	Keys         []string             `json:"measurementKeys"`
}

func wizardView(w *wizard.State) wizardResponse {
	return wizardResponse{Step: w.Current(), Design: w.Design, Measurements: w.Measurements, Keys: wizard.MeasurementKeys}
}

func (h *Handler) getWizard(c *gin.Context) {
	ok(c, wizardView(&currentSession(c).Wizard))
}

type chooseDesignRequest struct {
	DesignID            string            `json:"designId" binding:"required"`
	Customizations      map[string]string `json:"customizations"`
	IncludeMeasurements bool              `json:"includeMeasurements"`
}

// chooseDesign prices the design from the catalog, including customization surcharges.
func (h *Handler) chooseDesign(c *gin.Context) {
	var req chooseDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, price, err := h.Catalog.PriceDesign(c.Request.Context(), req.DesignID, req.Customizations)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	s := currentSession(c)
	if err := s.Wizard.ChooseDesign(wizard.DesignChoice{
		DesignID:            d.ID,
		DesignTitle:         d.Title,
		Category:            d.Category,
		Customizations:      req.Customizations,
		BasePrice:           price,
		IncludeMeasurements: req.IncludeMeasurements,
	}); err != nil {
		fail(c, h.Log, err)
		return
	}
	if !h.saveSession(c, s) {
		return
	}
	ok(c, wizardView(&s.Wizard))
}

type measurementsRequest struct {
	Measurements map[string]string `json:"measurements" binding:"required"`
}

func (h *Handler) setMeasurements(c *gin.Context) {
	var req measurementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s := currentSession(c)
	if err := s.Wizard.SetMeasurements(req.Measurements); err != nil {
		fail(c, h.Log, err)
		return
	}
	if !h.saveSession(c, s) {
		return
	}
	ok(c, wizardView(&s.Wizard))
}

func (h *Handler) wizardBack(c *gin.Context) {
	s := currentSession(c)
	s.Wizard.Back()
	if !h.saveSession(c, s) {
		return
	}
	ok(c, wizardView(&s.Wizard))
}

type contactRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=online cod"`
}

// submitWizard places the reviewed order. Online payment answers with the hosted checkout URL,
// cash on delivery with the tracking URL. The form and cart are reset on success.
func (h *Handler) submitWizard(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s := currentSession(c)
	sub, err := s.Wizard.Submit(checkout.Contact{
		UserID:       s.ID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	}, models.PaymentMethod(req.PaymentMethod))
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	res, err := h.Checkout.Submit(c.Request.Context(), sub, h.origin(c), &s.Cart)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	s.Wizard.Reset()
	if !h.saveSession(c, s) {
		return
	}
	ok(c, res)
}
