package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Bruno200000/LOKI-sub001/internal/handlers"
	authMiddleware "github.com/Bruno200000/LOKI-sub001/internal/middleware"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

const defaultCommissionFee = 1000 // XOF, charged per booking regardless of rent

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Firebase; credential path resolution lives in the service
	authClient, err := services.InitFirebase("")
	if err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Auth features will not work until valid credentials are provided")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis is optional; the listing cache degrades to direct queries
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			cache = nil
		}
	} else {
		log.Println("Warning: REDIS_URL not set, listing cache disabled")
	}

	// Payment gateway client, built once from env and injected
	wave := services.NewWaveService()
	if !wave.Configured() {
		log.Println("Warning: WAVE_API_KEY not set, payments cannot be initiated")
	}

	commissionFee := defaultCommissionFee
	if feeStr := os.Getenv("COMMISSION_FEE"); feeStr != "" {
		if fee, err := strconv.Atoi(feeStr); err == nil && fee > 0 {
			commissionFee = fee
		}
	}

	mailer := services.NewEmailService()
	bookingService := services.NewBookingService(db, float64(commissionFee))
	paymentService := services.NewPaymentService(db, wave)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(getEnvDefault("CORS_ORIGINS", "http://localhost:5173"), ","),
		AllowCredentials: true,
	}))

	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authClient, db)
	profileHandler := handlers.NewProfileHandler(db)
	houseHandler := handlers.NewHouseHandler(db, cache)
	bookingHandler := handlers.NewBookingHandler(db, bookingService, paymentService, mailer)
	paymentHandler := handlers.NewPaymentHandler(db, paymentService)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)
	e.GET("/api/houses", houseHandler.ListHouses)
	e.GET("/api/houses/:id", houseHandler.GetHouse)
	// Both gateway redirects (success and error) land here
	e.GET("/api/payments/checkout/return", paymentHandler.CheckoutReturn)

	// Protected routes
	api := e.Group("/api")
	api.Use(authMiddleware.RequireAuth(authClient, db))

	api.GET("/profile", profileHandler.GetProfile)
	api.PUT("/profile", profileHandler.UpdateProfile)

	api.POST("/houses", houseHandler.CreateHouse)
	api.PUT("/houses/:id", houseHandler.UpdateHouse)
	api.DELETE("/houses/:id", houseHandler.DeleteHouse)

	api.POST("/bookings", bookingHandler.CreateBooking)
	api.GET("/bookings", bookingHandler.ListMyBookings)
	api.GET("/owner/bookings", bookingHandler.ListOwnerBookings)
	api.POST("/bookings/:id/approve", bookingHandler.ApproveBooking)
	api.POST("/bookings/:id/reject", bookingHandler.RejectBooking)
	api.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)

	api.POST("/payments/:id/initiate", paymentHandler.InitiatePayment)
	api.GET("/payments/:id/status", paymentHandler.CheckStatus)
	api.POST("/payments/:id/cancel", paymentHandler.CancelPayment)

	api.GET("/dashboard", dashboardHandler.Dashboard)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

func getEnvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
