package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/app/service"
	"storefront-gateway/internal/app/store"
	apperrors "storefront-gateway/internal/errors"
	"storefront-gateway/internal/middleware"
	"storefront-gateway/pkg/saleor"
	"storefront-gateway/pkg/util"
)

type AuthController struct {
	authService service.AuthService
	session     *store.SessionStore
}

func NewAuthController(authService service.AuthService, session *store.SessionStore) *AuthController {
	return &AuthController{
		authService: authService,
		session:     session,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Register creates an account and signs it in
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		var accErrs saleor.AccountErrors
		if errors.As(err, &accErrs) {
			log.Warn("Registration rejected", map[string]interface{}{
				"email":  req.Email,
				"fields": accErrs.Fields(),
			})
			apperrors.RespondWithValidationError(c, accErrs.Fields())
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created",
		"user":    user,
	})
}

// Login exchanges credentials for a session
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid login data")
		return
	}

	user, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, saleor.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized,
				apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"user":    user,
	})
}

// Logout drops the session
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.authService.Logout()
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// Refresh rotates the access token
// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.authService.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			apperrors.Unauthorized(c, "")
			return
		}
		if errors.Is(err, service.ErrRefreshInFlight) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Token refresh already in progress",
			})
			return
		}
		log.Warn("Token refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusUnauthorized,
			apperrors.AuthRefreshFailed, "Session expired. Please sign in again")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed",
	})
}

type sessionResponse struct {
	store.SessionState
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
}

// GetSession returns the session snapshot. When the access token carries
// an exp claim it is surfaced so clients can anticipate the rotation.
// GET /api/v1/auth/session
func (ctrl *AuthController) GetSession(c *gin.Context) {
	resp := sessionResponse{SessionState: ctrl.session.State()}
	if resp.Token != "" {
		if info, err := util.InspectToken(resp.Token); err == nil && !info.ExpiresAt.IsZero() {
			resp.TokenExpiresAt = &info.ExpiresAt
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetMe returns the signed-in user
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	user := ctrl.session.User()
	if user == nil {
		apperrors.Unauthorized(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateMe updates the signed-in user's profile
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	user, err := ctrl.authService.UpdateProfile(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			apperrors.Unauthorized(c, "")
			return
		}
		var accErrs saleor.AccountErrors
		if errors.As(err, &accErrs) {
			apperrors.RespondWithValidationError(c, accErrs.Fields())
			return
		}
		log.Error("Profile update failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    user,
	})
}

// ChangePassword changes the signed-in user's password
// POST /api/v1/auth/password
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid password data")
		return
	}

	err := ctrl.authService.ChangePassword(c.Request.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			apperrors.Unauthorized(c, "")
			return
		}
		var accErrs saleor.AccountErrors
		if errors.As(err, &accErrs) {
			apperrors.RespondWithValidationError(c, accErrs.Fields())
			return
		}
		log.Error("Password change failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusBadGateway, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed",
	})
}
