package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hostel-backend/config"
	"hostel-backend/controllers"
	"hostel-backend/routes"
	"hostel-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if settings.SecretKey == "dev-secret-key-change-me" && !settings.Debug {
		log.Println("⚠️  SECRET_KEY is the development default; set a real one in production")
	}

	db, err := config.ConnectDatabase(settings)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	authService := services.NewAuthService(db)
	catalogService := services.NewCatalogService(db)
	bookingService := services.NewBookingService(db)
	receiptService := services.NewReceiptService(settings.StaticRoot)
	adminService := services.NewAdminService(db)
	mediaService := services.NewMediaService(settings.MediaRoot)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, settings.SecretKey, settings.SessionTTL(), !settings.Debug)
	catalogController := controllers.NewCatalogController(catalogService)
	bookingController := controllers.NewBookingController(bookingService, catalogService, receiptService)
	adminController := controllers.NewAdminController(adminService, mediaService)

	router := routes.SetupRouter(settings, authService, authController, catalogController, bookingController, adminController)

	srv := &http.Server{
		Addr:              settings.Addr(),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		base := "http://127.0.0.1:" + settings.Port
		log.Printf("🚀 Server starting on %s", srv.Addr)
		log.Printf("Home:  %s/", base)
		log.Printf("Login: %s/accounts/login/", base)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("✅ Server stopped gracefully")
}
