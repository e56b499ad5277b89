package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/internal/app/service"
	"storefront-gateway/internal/app/store"
	"storefront-gateway/internal/storage"
	"storefront-gateway/pkg/saleor"
)

// stubAuthService drives controller behavior without an upstream.
type stubAuthService struct {
	session *store.SessionStore

	loginErr    error
	registerErr error
	refreshErr  error
	updateErr   error
	passwordErr error
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*model.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	user := &model.User{ID: "VXNlcjox", Email: email}
	s.session.SetAuth(user, "T1", "R1")
	return user, nil
}

func (s *stubAuthService) Register(_ context.Context, input service.RegisterInput) (*model.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	user := &model.User{ID: "VXNlcjox", Email: input.Email}
	s.session.SetAuth(user, "T1", "R1")
	return user, nil
}

func (s *stubAuthService) Logout() {
	s.session.Logout()
}

func (s *stubAuthService) Restore(context.Context) error { return nil }

func (s *stubAuthService) Refresh(context.Context) error {
	return s.refreshErr
}

func (s *stubAuthService) UpdateProfile(_ context.Context, firstName, lastName string) (*model.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	user := &model.User{ID: "VXNlcjox", Email: "test@example.com", FirstName: firstName, LastName: lastName}
	s.session.SetUser(user)
	return user, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, oldPassword, newPassword string) error {
	return s.passwordErr
}

func setupAuthTest(t *testing.T) (*gin.Engine, *store.SessionStore, *stubAuthService) {
	gin.SetMode(gin.TestMode)

	st, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	session := store.NewSessionStore(st)
	stub := &stubAuthService{session: session}
	ctrl := NewAuthController(stub, session)

	router := gin.New()
	router.POST("/auth/register", ctrl.Register)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/logout", ctrl.Logout)
	router.POST("/auth/refresh", ctrl.Refresh)
	router.GET("/auth/session", ctrl.GetSession)
	router.GET("/auth/me", ctrl.GetMe)
	router.PUT("/auth/me", ctrl.UpdateMe)
	router.POST("/auth/password", ctrl.ChangePassword)
	return router, session, stub
}

func TestAuthController_Login_Success(t *testing.T) {
	router, session, _ := setupAuthTest(t)

	w := doJSON(t, router, "POST", "/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "secret-pw",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@example.com")
	assert.True(t, session.IsAuthenticated())
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	router, _, stub := setupAuthTest(t)
	stub.loginErr = saleor.ErrInvalidCredentials

	w := doJSON(t, router, "POST", "/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_INVALID_CREDENTIALS")
}

func TestAuthController_Login_MissingEmail(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	w := doJSON(t, router, "POST", "/auth/login", gin.H{"password": "secret-pw"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestAuthController_Register_Success(t *testing.T) {
	router, session, _ := setupAuthTest(t)

	w := doJSON(t, router, "POST", "/auth/register", gin.H{
		"email":     "new@example.com",
		"password":  "secret-pw",
		"firstName": "New",
		"lastName":  "User",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, session.IsAuthenticated())
}

func TestAuthController_Register_FieldErrors(t *testing.T) {
	router, _, stub := setupAuthTest(t)
	stub.registerErr = saleor.AccountErrors{{Field: "email", Message: "Account already exists", Code: "UNIQUE"}}

	w := doJSON(t, router, "POST", "/auth/register", gin.H{
		"email":    "taken@example.com",
		"password": "secret-pw",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Account already exists")
}

func TestAuthController_Logout(t *testing.T) {
	router, session, _ := setupAuthTest(t)
	session.SetAuth(&model.User{ID: "VXNlcjox", Email: "test@example.com"}, "T1", "R1")

	w := doJSON(t, router, "POST", "/auth/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, session.IsAuthenticated())
}

func TestAuthController_Refresh_Failure(t *testing.T) {
	router, _, stub := setupAuthTest(t)
	stub.refreshErr = saleor.ErrRefreshFailed

	w := doJSON(t, router, "POST", "/auth/refresh", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_REFRESH_FAILED")
}

func TestAuthController_GetSession(t *testing.T) {
	router, session, _ := setupAuthTest(t)
	session.SetAuth(&model.User{ID: "VXNlcjox", Email: "test@example.com"}, "T1", "R1")

	w := doJSON(t, router, "GET", "/auth/session", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var state store.SessionState
	require.NoError(t, decodeInto(w, &state))
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "test@example.com", state.User.Email)
}

func TestAuthController_GetMe_NoSession(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	w := doJSON(t, router, "GET", "/auth/me", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateMe(t *testing.T) {
	router, session, _ := setupAuthTest(t)
	session.SetAuth(&model.User{ID: "VXNlcjox", Email: "test@example.com"}, "T1", "R1")

	w := doJSON(t, router, "PUT", "/auth/me", gin.H{
		"firstName": "Renamed",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", session.User().FirstName)
}

func TestAuthController_ChangePassword_NotAuthenticated(t *testing.T) {
	router, _, stub := setupAuthTest(t)
	stub.passwordErr = service.ErrNotAuthenticated

	w := doJSON(t, router, "POST", "/auth/password", gin.H{
		"oldPassword": "old-secret",
		"newPassword": "new-secret",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
