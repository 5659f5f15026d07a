package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-app-server/internal/auth"
	"todo-app-server/internal/config"
	"todo-app-server/internal/middleware"
	"todo-app-server/internal/models"
	"todo-app-server/internal/utils"
)

// RefreshTokenCookie is the cookie carrying the raw refresh secret.
const RefreshTokenCookie = "refreshToken"

// Generic credential-failure message. Never distinguishes unknown email from
// wrong password.
const invalidCredentialsMsg = "Invalid email or password"

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB   *gorm.DB
	Auth *auth.Service
	Cfg  *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, authService *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Auth: authService, Cfg: cfg}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup handles user registration and issues the first token pair.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !utils.BindAndValidate(c, &req) {
		return // Error response handled by BindAndValidate
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	// Check if user already exists
	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.Conflict(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("signup: user lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	user := models.User{Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		log.Printf("signup: password hashing failed: %v", err)
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		// A concurrent signup can slip past the lookup above; the unique
		// index on email is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "User with this email already exists")
			return
		}
		log.Printf("signup: user create failed: %v", err)
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	pair, err := h.Auth.Signup(user.ID)
	if err != nil {
		log.Printf("signup: token issuance failed: %v", err)
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	h.setAuthCookies(c, pair)
	utils.Created(c, "User created successfully", pair)
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates credentials, revokes every prior session for the user, and
// issues a new token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.BadRequest(c, invalidCredentialsMsg)
		} else {
			log.Printf("login: user lookup failed: %v", err)
			utils.InternalServerError(c, "Failed to log in")
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.BadRequest(c, invalidCredentialsMsg)
		return
	}

	pair, err := h.Auth.Login(user.ID)
	if err != nil {
		log.Printf("login: token issuance failed: %v", err)
		utils.InternalServerError(c, "Failed to log in")
		return
	}

	h.setAuthCookies(c, pair)
	utils.Success(c, "Logged in successfully", pair)
}

// RefreshRequest represents the request body for token rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates a refresh token: the presented secret is revoked and a new
// pair is issued in its place. The secret comes from the request body or the
// refresh-token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var rawSecret string
	var req RefreshRequest
	// Body is optional when the cookie is present, so bind leniently.
	if err := c.ShouldBindJSON(&req); err == nil {
		rawSecret = req.RefreshToken
	}
	if rawSecret == "" {
		rawSecret, _ = c.Cookie(RefreshTokenCookie)
	}
	if rawSecret == "" {
		utils.Unauthorized(c, "Authentication failed")
		return
	}

	pair, err := h.Auth.Rotate(rawSecret)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			utils.Unauthorized(c, "Authentication failed")
		} else {
			log.Printf("refresh: rotation failed: %v", err)
			utils.InternalServerError(c, "Failed to refresh token")
		}
		return
	}

	h.setAuthCookies(c, pair)
	utils.Success(c, "Token refreshed successfully", pair)
}

// Logout revokes every refresh token of the authenticated user and clears
// the auth cookies. Repeating it succeeds again.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.Auth.Logout(userID); err != nil {
		log.Printf("logout: revoke failed: %v", err)
		utils.InternalServerError(c, "Failed to log out")
		return
	}

	h.clearAuthCookies(c)
	utils.Success(c, "Logged out successfully", nil)
}

// setAuthCookies stores both tokens as HTTP-only cookies, each expiring with
// its token.
func (h *AuthHandler) setAuthCookies(c *gin.Context, pair *auth.TokenPair) {
	secure := h.Cfg.Environment != "development"
	c.SetCookie(
		middleware.AccessTokenCookie,
		pair.AccessToken,
		int(h.Cfg.AccessTokenTTL.Seconds()),
		"/",
		"",
		secure,
		true,
	)
	c.SetCookie(
		RefreshTokenCookie,
		pair.RefreshToken,
		int(h.Cfg.RefreshTokenTTL.Seconds()),
		"/",
		"",
		secure,
		true,
	)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	secure := h.Cfg.Environment != "development"
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}
