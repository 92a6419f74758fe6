package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/entities"
)

// AuthController serves the login, logout and first-run setup endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
}

func NewAuthController(service *Service, sessionManager *SessionManager) *AuthController {
	return &AuthController{service: service, sessionManager: sessionManager}
}

// RegisterRoutes attaches the authentication routes to the router.
func (a *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", a.LoginPage)
	router.POST("/login", a.Login)
	router.POST("/logout", a.Logout)
	router.GET("/setup", a.SetupStatus)
	router.POST("/setup", a.Setup)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginPage tells an unauthenticated client how to log in and hands it the
// CSRF token to echo back on the POST.
func (a *AuthController) LoginPage(c *gin.Context) {
	if a.sessionManager != nil && a.sessionManager.IsAuthenticated(c.Request) {
		c.JSON(http.StatusOK, gin.H{"message": "already authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "POST credentials to /login",
		"csrf_token": c.GetString(ContextKeyCSRFToken),
	})
}

// Login validates credentials and starts a session.
func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := a.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrAccountLocked) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if err := a.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": userResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}

// Logout destroys the current session.
func (a *AuthController) Logout(c *gin.Context) {
	if a.sessionManager != nil {
		if err := a.sessionManager.DestroySession(c.Request); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// SetupStatus reports whether the first-run administrator account still
// needs to be created.
func (a *AuthController) SetupStatus(c *gin.Context) {
	hasUsers, err := a.service.HasUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check setup status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"setup_required": !hasUsers,
		"csrf_token":     c.GetString(ContextKeyCSRFToken),
	})
}

type setupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Setup creates the first administrator account. Once any user exists the
// endpoint refuses further accounts.
func (a *AuthController) Setup(c *gin.Context) {
	hasUsers, err := a.service.HasUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check setup status"})
		return
	}
	if hasUsers {
		c.JSON(http.StatusForbidden, gin.H{"error": "setup already completed"})
		return
	}

	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}

	user, err := a.service.CreateUser(req.Username, req.Email, req.Password, entities.UserRoleAdmin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": userResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}

// APITokenController manages per-user Bearer tokens.
type APITokenController struct {
	service *Service
}

func NewAPITokenController(service *Service) *APITokenController {
	return &APITokenController{service: service}
}

// GenerateToken issues a fresh API token, invalidating any previous one.
func (t *APITokenController) GenerateToken(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	token, err := t.service.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	// Shown once; only the hash is kept
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RevokeToken invalidates the user's API token.
func (t *APITokenController) RevokeToken(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := t.service.RevokeToken(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token revoked"})
}
