package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authClient *auth.Client
	db         *gorm.DB
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authClient *auth.Client, db *gorm.DB) *AuthHandler {
	return &AuthHandler{authClient: authClient, db: db}
}

// HandleLogin verifies the Firebase ID token, creates a session cookie
// and upserts the local profile row for the account.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.authClient == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication is not configured")
	}

	// Get ID Token from Authorization Header
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
	}

	token, err := h.authClient.VerifyIDToken(c.Request().Context(), tokenString)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.upsertProfile(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store profile: "+err.Error())
	}

	// Create Session Cookie (valid for 5 days)
	expiresIn := time.Hour * 24 * 5
	cookieValue, err := h.authClient.SessionCookie(c.Request().Context(), tokenString, expiresIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	cookie := &http.Cookie{
		Name:     "session",
		Value:    cookieValue,
		MaxAge:   int(expiresIn.Seconds()),
		HttpOnly: true,
		Secure:   os.Getenv("ENV") == "production",
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"user":   user,
	})
}

// upsertProfile mirrors the Firebase account into the users table.
func (h *AuthHandler) upsertProfile(token *auth.Token) (*models.User, error) {
	var user models.User
	err := h.db.Where("firebase_uid = ?", token.UID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{
		FirebaseUID: token.UID,
		UserType:    models.UserTypeTenant,
	}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.Name = name
	}
	if err := h.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// HandleLogout clears the session cookie
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "session",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]string{
		"status": "logged out",
	})
}
