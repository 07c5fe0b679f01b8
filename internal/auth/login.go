package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/models"
)

// AdminStore is the user storage needed for admin sign-in and bootstrap.
type AdminStore interface {
	UserLookup
	Create(ctx context.Context, username, passwordHash, role string) (*models.User, error)
	UpdateRoleByUsername(ctx context.Context, username, role string) error
}

// Authenticator checks back-office credentials and issues tokens.
type Authenticator struct {
	Users    AdminStore
	Drivers  DriverLookup
	Secret   string
	TokenTTL time.Duration
}

// LoginAdmin verifies an admin username and password and returns a signed token.
func (a *Authenticator) LoginAdmin(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperr.Validation("username and password are required")
	}
	u, err := a.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", apperr.Remote("get user", err)
	}
	if !u.IsAdmin() || !CheckPassword(u.PasswordHash, password) {
		return "", apperr.ErrInvalidCredentials
	}
	return IssueToken(a.Secret, Principal{Name: u.Username, Kind: KindAdmin}, a.TokenTTL)
}

// LoginDriver verifies a personnel number and password. Inactive drivers cannot sign in.
func (a *Authenticator) LoginDriver(ctx context.Context, personnelNumber, password string) (string, *models.Driver, error) {
	personnelNumber = strings.ToUpper(strings.TrimSpace(personnelNumber))
	if personnelNumber == "" || password == "" {
		return "", nil, apperr.Validation("personnel number and password are required")
	}
	d, err := a.Drivers.GetByPersonnelNumber(ctx, personnelNumber)
	if err != nil {
		return "", nil, apperr.Remote("get driver", err)
	}
	if d == nil || !CheckPassword(d.PasswordHash, password) {
		return "", nil, apperr.ErrInvalidCredentials
	}
	if d.Status == models.DriverStatusInactive {
		return "", nil, apperr.Precondition("driver account is inactive")
	}
	tok, err := IssueToken(a.Secret, Principal{Name: d.PersonnelNumber, Kind: KindDriver}, a.TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, d, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
// An existing account keeps its password; its role is raised to admin.
func EnsureAdmin(ctx context.Context, users AdminStore, username, password string, log *zap.Logger) error {
	if username == "" || password == "" {
		return nil
	}
	u, err := users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u != nil {
		if !u.IsAdmin() {
			if err := users.UpdateRoleByUsername(ctx, username, models.RoleAdmin); err != nil {
				return err
			}
			log.Info("promoted bootstrap user to admin", zap.String("username", username))
		}
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := users.Create(ctx, username, hash, models.RoleAdmin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	log.Info("created bootstrap admin", zap.String("username", username))
	return nil
}
