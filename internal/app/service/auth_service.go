package service

import (
	"context"
	"errors"
	"sync/atomic"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/internal/app/store"
	"storefront-gateway/pkg/logger"
	"storefront-gateway/pkg/saleor"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRefreshInFlight reports that a concurrent refresh already holds
	// the guard; its outcome is unknown to the caller.
	ErrRefreshInFlight = errors.New("refresh already in flight")
)

// RegisterInput is the sign-up form payload.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Logout()
	Restore(ctx context.Context) error
	Refresh(ctx context.Context) error
	UpdateProfile(ctx context.Context, firstName, lastName string) (*model.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

type authService struct {
	api     SaleorAPI
	session *store.SessionStore

	// refreshing serializes the periodic and the reactive refresh paths
	// so at most one tokenRefresh call is in flight.
	refreshing atomic.Bool
}

func NewAuthService(api SaleorAPI, session *store.SessionStore) AuthService {
	return &authService{
		api:     api,
		session: session,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	s.session.SetLoading(true)
	result, err := s.api.TokenCreate(ctx, email, password)
	if err != nil {
		s.session.SetLoading(false)
		if errors.Is(err, saleor.ErrInvalidCredentials) {
			logger.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": email,
			})
		} else {
			logger.Error("Login failed", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}

	s.session.SetAuth(result.User, result.Token, result.RefreshToken)

	logger.Info("User logged in successfully", map[string]interface{}{
		"email": email,
	})
	return result.User, nil
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": input.Email,
	})

	s.session.SetLoading(true)
	err := s.api.AccountRegister(ctx, saleor.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		s.session.SetLoading(false)
		logger.Warn("Registration failed", map[string]interface{}{
			"email": input.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	// Sign the fresh account in right away
	result, err := s.api.TokenCreate(ctx, input.Email, input.Password)
	if err != nil {
		s.session.SetLoading(false)
		logger.Error("Post-registration sign-in failed", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	s.session.SetAuth(result.User, result.Token, result.RefreshToken)

	logger.Info("User registered successfully", map[string]interface{}{
		"email": input.Email,
	})
	return result.User, nil
}

func (s *authService) Logout() {
	s.session.Logout()
}

// Restore probes the stored token against the backend. On probe failure
// with a refresh token present, exactly one refresh attempt is made; when
// that also fails the session is forced to anonymous. A deterministic
// chain, no retry loop.
func (s *authService) Restore(ctx context.Context) error {
	token := s.session.Token()
	if token == "" {
		logger.Debug("No stored session to restore")
		return nil
	}

	logger.Info("Restoring session")
	s.session.SetLoading(true)

	user, err := s.api.Me(ctx, token)
	if err == nil {
		s.session.SetAuth(user, token, "")
		logger.Info("Session restored", map[string]interface{}{
			"email": user.Email,
		})
		return nil
	}

	logger.Warn("Session probe failed", map[string]interface{}{
		"error": err.Error(),
	})

	if s.session.RefreshToken() != "" {
		refreshErr := s.Refresh(ctx)
		if refreshErr == nil {
			return nil
		}
		if errors.Is(refreshErr, ErrRefreshInFlight) {
			// A concurrent refresh owns the outcome; it will either
			// rotate the token or force the logout itself.
			return err
		}
		// Refresh already forced the logout
		return err
	}

	s.session.Logout()
	return err
}

// Refresh rotates the access token. A refresh failure is fatal for the
// session: the user must re-authenticate. Concurrent calls collapse into
// the one in flight.
func (s *authService) Refresh(ctx context.Context) error {
	if !s.refreshing.CompareAndSwap(false, true) {
		logger.Debug("Refresh already in flight, skipping")
		return ErrRefreshInFlight
	}
	defer s.refreshing.Store(false)

	refreshToken := s.session.RefreshToken()
	if refreshToken == "" {
		return ErrNotAuthenticated
	}

	logger.Info("Refreshing session token")
	s.session.SetLoading(true)

	result, err := s.api.TokenRefresh(ctx, refreshToken)
	if err != nil {
		logger.Warn("Token refresh failed, forcing logout", map[string]interface{}{
			"error": err.Error(),
		})
		s.session.Logout()
		return err
	}

	user := result.User
	if user == nil {
		// Not every refresh response carries the profile
		user = s.session.User()
	}
	s.session.SetAuth(user, result.Token, "")
	logger.Info("Session token refreshed")
	return nil
}

func (s *authService) UpdateProfile(ctx context.Context, firstName, lastName string) (*model.User, error) {
	token := s.session.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := s.api.AccountUpdate(ctx, token, firstName, lastName)
	if err != nil {
		logger.Warn("Profile update failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.session.SetUser(user)

	logger.Info("Profile updated", map[string]interface{}{
		"email": user.Email,
	})
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	token := s.session.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	if err := s.api.PasswordChange(ctx, token, oldPassword, newPassword); err != nil {
		logger.Warn("Password change failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Password changed")
	return nil
}
