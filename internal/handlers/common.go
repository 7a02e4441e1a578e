package handlers

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

func getUintFromContext(c echo.Context, key string) uint {
	val := c.Get(key)
	if val == nil {
		return 0
	}
	uintVal, ok := val.(uint)
	if !ok {
		return 0
	}
	return uintVal
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// currentUser resolves the authenticated user's local row. The auth
// middleware guarantees userUID; the row itself is created at login.
func currentUser(c echo.Context, db *gorm.DB) (models.User, error) {
	var user models.User

	if id := getUintFromContext(c, "userID"); id != 0 {
		if err := db.First(&user, id).Error; err == nil {
			return user, nil
		}
	}

	uid := getStringFromContext(c, "userUID")
	if uid == "" {
		return user, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if err := db.Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
		return user, echo.NewHTTPError(http.StatusUnauthorized, "no profile for this account")
	}
	return user, nil
}
