package handlers

import (
	"net/http"

	"parampara-storefront/internal/middleware"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OTPService
}

func NewAuthHandler(authService *services.AuthService, otpService *services.OTPService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
	}
}

// @Summary Register a new user
// @Description Create a customer account. Replies with plain text.
// @Tags auth
// @Accept json
// @Produce plain
// @Param request body models.RegisterRequest true "Registration request"
// @Success 200 {string} string
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if code := services.RegistrationCode(err); code != "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: code, Message: err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, message)
}

// @Summary Login user
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req models.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.authService.GoogleAuth(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Send phone verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PhoneSendCodeRequest true "Phone number"
// @Success 200 {object} models.PhoneVerificationResponse
// @Router /api/auth/phone/send-code [post]
func (h *AuthHandler) SendPhoneCode(c *gin.Context) {
	var req models.PhoneSendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.otpService.SendCode(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Verify phone code and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Verification session id"
// @Param request body models.PhoneVerifyRequest true "Phone number and code"
// @Success 200 {object} models.PhoneAuthResponse
// @Router /api/auth/phone/verify [post]
func (h *AuthHandler) VerifyPhoneCode(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-Id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-Id header required"})
		return
	}

	var req models.PhoneVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.otpService.Verify(c.Request.Context(), req.PhoneNumber, req.VerificationCode, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":       user.ID,
		"email":        user.Email,
		"fullName":     user.FullName,
		"address":      user.Address,
		"phoneNumber":  user.PhoneNumber,
		"role":         user.Role,
		"authProvider": user.AuthProvider,
	})
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/google", h.GoogleAuth)
		auth.POST("/phone/send-code", h.SendPhoneCode)
		auth.POST("/phone/verify", h.VerifyPhoneCode)

		auth.GET("/profile", authMiddleware.AuthRequired(), h.GetProfile)
	}
}
