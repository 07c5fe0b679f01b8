// Package session keeps per-visitor storefront state (cart and order form) between requests.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tailoringStorefront/internal/cart"
	"tailoringStorefront/internal/wizard"
)

// Session is the state owned by one storefront visitor.
type Session struct {
	ID        string       `json:"id"`
	Cart      cart.Cart    `json:"cart"`
	Wizard    wizard.State `json:"wizard"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// New returns an empty session with a fresh id.
func New() *Session {
	return &Session{ID: uuid.NewString(), Wizard: wizard.State{Step: wizard.StepDesign}, UpdatedAt: time.Now().UTC()}
}

// Store persists sessions. Get returns nil, nil for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 72 * time.Hour
