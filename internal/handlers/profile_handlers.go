package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated user's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type"`
}

// UpdateProfile updates name, phone and role of the authenticated user
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Phone = req.Phone

	switch models.UserType(req.UserType) {
	case models.UserTypeOwner, models.UserTypeTenant:
		user.UserType = models.UserType(req.UserType)
	case "":
		// unchanged
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "user_type must be owner or tenant")
	}

	if err := h.db.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update profile: "+err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
