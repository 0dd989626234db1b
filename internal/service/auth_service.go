package service

import (
	"strings"

	"go.uber.org/zap"

	"go-user-account-api/internal/domain"
)

type AuthService struct {
	repo   domain.UserRepository
	hasher PasswordHasher
	log    *zap.Logger
}

func NewAuthService(repo domain.UserRepository, hasher PasswordHasher, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, log: log}
}

// Login authenticates by email and password. Unknown email and wrong
// password both come back as the same InvalidCredentials message so the
// endpoint does not leak which addresses are registered.
func (s *AuthService) Login(email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.E(domain.KindInvalidInput, "Email is required")
	}
	if password == "" {
		return nil, domain.E(domain.KindInvalidInput, "Password is required")
	}

	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.E(domain.KindInvalidCredentials, "Invalid email or password")
	}
	if u.Deleted() {
		return nil, domain.E(domain.KindAccountDeleted, "User account has been deleted")
	}
	if !u.Active {
		return nil, domain.E(domain.KindAccountInactive, "User account is inactive")
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, domain.E(domain.KindInvalidCredentials, "Invalid email or password")
	}
	return u, nil
}

func (s *AuthService) CurrentUser(userID int64) (*domain.CurrentUser, error) {
	if userID == 0 {
		return nil, domain.E(domain.KindNotAuthenticated, "Not authenticated. Please login.")
	}
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.E(domain.KindNotFound, "User not found")
	}
	if u.Deleted() {
		return nil, domain.E(domain.KindAccountDeleted, "User account has been deleted")
	}
	return &domain.CurrentUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Active: u.Active,
	}, nil
}

// Logout never fails; the session itself is invalidated by the caller.
// The audit trail is a structured log line for now.
func (s *AuthService) Logout(userID int64) {
	if userID != 0 {
		s.log.Info("user logged out", zap.Int64("user_id", userID))
	}
}
