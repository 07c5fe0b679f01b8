// Package httpapi is the storefront's JSON API: catalog, cart, order form, checkout,
// payment verification, order tracking, reviews and back-office sign-in.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/auth"
	"tailoringStorefront/internal/catalog"
	"tailoringStorefront/internal/checkout"
	"tailoringStorefront/internal/session"
	"tailoringStorefront/models"
	"tailoringStorefront/repository"
)

// PaymentVerifier confirms a hosted checkout session.
type PaymentVerifier interface {
	Verify(ctx context.Context, sessionID string) (*models.Order, error)
}

// OrderReader loads orders for tracking.
type OrderReader interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

// Handler holds the collaborators of the storefront routes.
type Handler struct {
	Catalog    *catalog.Service
	Checkout   *checkout.Service
	Verifier   PaymentVerifier
	Orders     OrderReader
	Reviews    repository.ReviewRepositoryI
	Auth       *auth.Authenticator
	Sessions   session.Store
	SessionTTL time.Duration
	PublicURL  string // fallback origin when the request carries no Origin header
	Log        *zap.Logger
}

// NewRouter builds the gin engine with all storefront routes.
func NewRouter(h *Handler) *gin.Engine {
	if h.SessionTTL <= 0 {
		h.SessionTTL = session.DefaultTTL
	}
	r := gin.New()
	r.Use(Recovery(h.Log), AccessLog(h.Log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/designs", h.listDesigns)
		api.GET("/designs/:id", h.getDesign)
		api.GET("/customizations", h.listCategories)
		api.GET("/customizations/:category", h.getCustomizations)
		api.POST("/customizations/:category/quote", h.quote)

		api.POST("/verify-payment", h.verifyPayment)
		api.GET("/orders/:id", h.trackOrder)

		api.GET("/reviews", h.listReviews)
		api.POST("/reviews", h.createReview)

		api.POST("/auth/admin/login", h.adminLogin)
		api.POST("/auth/delivery/login", h.deliveryLogin)
	}

	visitor := api.Group("", Sessions(h.Sessions, h.SessionTTL, h.Log))
	{
		visitor.GET("/cart", h.getCart)
		visitor.POST("/cart/items", h.addCartItem)
		visitor.DELETE("/cart/items/:id", h.removeCartItem)
		visitor.DELETE("/cart", h.clearCart)

		visitor.GET("/wizard", h.getWizard)
		visitor.PUT("/wizard/design", h.chooseDesign)
		visitor.PUT("/wizard/measurements", h.setMeasurements)
		visitor.POST("/wizard/back", h.wizardBack)
		visitor.POST("/wizard/submit", h.submitWizard)

		visitor.POST("/checkout", h.startCheckout)
		visitor.POST("/orders", h.placeCOD)
	}
	return r
}

// origin is where redirect and tracking URLs point back to.
func (h *Handler) origin(c *gin.Context) string {
	if o := strings.TrimSpace(c.GetHeader("Origin")); o != "" && o != "null" {
		return strings.TrimRight(o, "/")
	}
	return strings.TrimRight(h.PublicURL, "/")
}

// saveSession persists the visitor's session; on failure the response is already written.
func (h *Handler) saveSession(c *gin.Context, s *session.Session) bool {
	s.UpdatedAt = time.Now().UTC()
	if err := h.Sessions.Save(c.Request.Context(), s); err != nil {
		fail(c, h.Log, apperr.Remote("save session", err))
		return false
	}
	return true
}

// Start serves the router on addr and returns a graceful shutdown function.
func Start(addr string, h *Handler) (func(context.Context) error, error) {
	if addr == "" {
		addr = ":8080"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.Log.Error("http serve", zap.Error(err))
		}
	}()
	h.Log.Info("http listening", zap.String("addr", lis.Addr().String()))
	return srv.Shutdown, nil
}
