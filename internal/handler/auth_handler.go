package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/service"
)

// AuthHandler provides endpoints for registration and authentication.
type AuthHandler struct {
	tokenService service.TokenService
	userService  service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokenService service.TokenService, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		userService:  userService,
	}
}

// LoginRequest represents the expected body for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Register a new user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body model.CreateUserInput true "new user"
// @Success 201 {object} model.UserDTO
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var in model.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	dto, err := h.userService.Register(&in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// @Summary Login and receive a JWT
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body LoginRequest true "credentials"
// @Success 200 {object} map[string]string "{token}"
// @Failure 401 {object} map[string]string "error"
// @Router  /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login request"})
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	token, err := h.tokenService.Generate(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary Logout and revoke the current JWT
// @Tags    auth
// @Produce json
// @Success 200 {object} map[string]string "logged out"
// @Failure 401 {object} map[string]string "error"
// @Security JWTAuth
// @Router  /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jtiAny, ok := c.Get("jti")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active token"})
		return
	}
	jti, _ := jtiAny.(string)
	if err := h.tokenService.Invalidate(jti); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RegisterRoutes mounts public auth routes.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts routes that require a valid token.
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
}
