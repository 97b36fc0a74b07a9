package handler_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dimos082/website-monitor/internal/handler"
	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/service"
)

// fakeTokenService implements service.TokenService.
type fakeTokenService struct {
	invalidated []string
}

func (f *fakeTokenService) Generate(userID uint) (string, error) { return "token-for-user", nil }

func (f *fakeTokenService) Validate(tokenString string) (*service.JWTClaims, error) {
	return nil, service.ErrTokenInvalid
}

func (f *fakeTokenService) Invalidate(tokenID string) error {
	f.invalidated = append(f.invalidated, tokenID)
	return nil
}

func (f *fakeTokenService) IsBlacklisted(tokenID string) (bool, error) { return false, nil }
func (f *fakeTokenService) CleanupExpired() error                      { return nil }

// fakeUserService implements service.UserService.
type fakeUserService struct {
	registered *model.UserDTO
	authOK     bool
}

func (f *fakeUserService) Register(input *model.CreateUserInput) (*model.UserDTO, error) {
	if f.registered != nil {
		return nil, errors.New("email already in use")
	}
	f.registered = &model.UserDTO{ID: 1, Username: input.Username, Email: input.Email}
	return f.registered, nil
}

func (f *fakeUserService) Authenticate(email, password string) (*model.UserDTO, error) {
	if !f.authOK {
		return nil, errors.New("invalid credentials")
	}
	return &model.UserDTO{ID: 1, Username: "alice", Email: email}, nil
}

func (f *fakeUserService) Get(id uint) (*model.UserDTO, error) { return nil, errors.New("not found") }
func (f *fakeUserService) Delete(id uint) error                { return nil }

func authRouter(tokens *fakeTokenService, users *fakeUserService, jti string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(tokens, users)
	h.RegisterRoutes(r.Group("/api/v1"))

	protected := r.Group("/api/v1")
	if jti != "" {
		protected.Use(func(c *gin.Context) { c.Set("jti", jti) })
	}
	h.RegisterProtectedRoutes(protected)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	r := authRouter(&fakeTokenService{}, &fakeUserService{}, "")

	body := `{"username":"alice","email":"alice@example.com","password":"secret1"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	r := authRouter(&fakeTokenService{}, &fakeUserService{}, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	r := authRouter(&fakeTokenService{}, &fakeUserService{authOK: true}, "")

	body := `{"email":"alice@example.com","password":"secret1"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"token-for-user"}`, w.Body.String())
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	r := authRouter(&fakeTokenService{}, &fakeUserService{authOK: false}, "")

	body := `{"email":"alice@example.com","password":"wrong"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	tokens := &fakeTokenService{}
	r := authRouter(tokens, &fakeUserService{}, "jti-123")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"jti-123"}, tokens.invalidated)
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	r := authRouter(&fakeTokenService{}, &fakeUserService{}, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
