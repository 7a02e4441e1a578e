package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

const houseListCacheKey = "houses:available"

type HouseHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewHouseHandler(db *gorm.DB, cache *services.RedisCache) *HouseHandler {
	return &HouseHandler{db: db, cache: cache}
}

// ListHouses returns available listings, optionally filtered by city
// and maximum monthly price. The unfiltered listing is cached.
func (h *HouseHandler) ListHouses(c echo.Context) error {
	city := c.QueryParam("city")
	maxPriceStr := c.QueryParam("max_price")

	fetch := func() ([]models.House, error) {
		query := h.db.Where("is_available = ?", true).Order("created_at desc")
		if city != "" {
			query = query.Where("city = ?", city)
		}
		if maxPriceStr != "" {
			if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", maxPrice)
			}
		}
		var houses []models.House
		err := query.Find(&houses).Error
		return houses, err
	}

	var houses []models.House
	var err error
	if city == "" && maxPriceStr == "" {
		houses, err = services.GetOrSet(h.cache, c.Request().Context(), houseListCacheKey, time.Minute, fetch)
	} else {
		houses, err = fetch()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch houses: "+err.Error())
	}

	return c.JSON(http.StatusOK, houses)
}

// GetHouse returns one listing with its owner
func (h *HouseHandler) GetHouse(c echo.Context) error {
	var house models.House
	if err := h.db.Preload("Owner").First(&house, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "house not found")
	}
	return c.JSON(http.StatusOK, house)
}

type houseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Rooms       int     `json:"rooms"`
	Bathrooms   int     `json:"bathrooms"`
	PhotoURL    string  `json:"photo_url"`
	IsAvailable *bool   `json:"is_available"`
}

// CreateHouse publishes a new listing for the authenticated owner
func (h *HouseHandler) CreateHouse(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var req houseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Title == "" || req.City == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and city are required")
	}
	if req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
	}

	house := models.House{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		Price:       req.Price,
		Rooms:       req.Rooms,
		Bathrooms:   req.Bathrooms,
		PhotoURL:    req.PhotoURL,
		IsAvailable: true,
	}
	if err := h.db.Create(&house).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create house: "+err.Error())
	}

	// Listing owners are owners
	if user.UserType == models.UserTypeTenant {
		h.db.Model(&user).Update("user_type", models.UserTypeOwner)
	}

	h.cache.Delete(c.Request().Context(), houseListCacheKey)
	return c.JSON(http.StatusCreated, house)
}

// UpdateHouse edits a listing owned by the authenticated user
func (h *HouseHandler) UpdateHouse(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var house models.House
	if err := h.db.First(&house, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "house not found")
	}
	if house.OwnerID != user.ID && user.UserType != models.UserTypeAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "you can only edit your own listings")
	}

	var req houseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if req.Title != "" {
		house.Title = req.Title
	}
	if req.City != "" {
		house.City = req.City
	}
	if req.Price > 0 {
		house.Price = req.Price
	}
	house.Description = req.Description
	house.Address = req.Address
	house.Rooms = req.Rooms
	house.Bathrooms = req.Bathrooms
	house.PhotoURL = req.PhotoURL
	if req.IsAvailable != nil {
		house.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(&house).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update house: "+err.Error())
	}

	h.cache.Delete(c.Request().Context(), houseListCacheKey)
	return c.JSON(http.StatusOK, house)
}

// DeleteHouse removes a listing owned by the authenticated user
func (h *HouseHandler) DeleteHouse(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var house models.House
	if err := h.db.First(&house, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "house not found")
	}
	if house.OwnerID != user.ID && user.UserType != models.UserTypeAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "you can only delete your own listings")
	}

	if err := h.db.Delete(&house).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete house: "+err.Error())
	}

	h.cache.Delete(c.Request().Context(), houseListCacheKey)
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
