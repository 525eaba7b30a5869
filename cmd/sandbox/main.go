package main

import (
	"context"
	"log"
	"time"

	"parampara-storefront/configs"
	"parampara-storefront/internal/handlers"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"
	"parampara-storefront/internal/services"
	"parampara-storefront/pkg/auth"
	"parampara-storefront/pkg/database"
	"parampara-storefront/pkg/messaging"
	"parampara-storefront/pkg/sms"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

func main() {
	config := configs.LoadConfig()

	gin.SetMode(config.Server.Mode)

	logLevel := logger.Warn
	if config.Server.Mode == gin.DebugMode {
		logLevel = logger.Info
	}
	db, err := database.NewDatabase(config.Database.Driver, config.Database.DSN, logLevel)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.DB.AutoMigrate(models.AllEntities()...); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	var publisher messaging.Publisher = messaging.LogPublisher{}
	if len(config.Kafka.Brokers) > 0 {
		publisher = messaging.NewKafkaProducer(config.Kafka.Brokers)
	}
	defer publisher.Close()

	var sender sms.Sender = sms.LogSender{}
	if config.SMS.APIKey != "" {
		sender = sms.NewSMSService(config.SMS.APIKey, config.SMS.SenderID, config.SMS.BaseURL)
	}

	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours)

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	foodRepo := repositories.NewFoodRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	wishlistRepo := repositories.NewWishlistRepository(db.DB)
	feedbackRepo := repositories.NewFeedbackRepository(db.DB)
	verificationRepo := repositories.NewPhoneVerificationRepository(db.DB)

	// Services
	authService := services.NewAuthService(userRepo, jwtManager)
	otpService := services.NewOTPService(verificationRepo, userRepo, authService, sender)
	catalogService := services.NewCatalogService(categoryRepo, foodRepo)

	ctx := context.Background()
	if err := catalogService.Seed(ctx); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}
	if err := authService.EnsureAdmin(ctx, config.Admin.Email, config.Admin.Password); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	cronService := services.NewCronService(otpService, time.Hour)
	cronService.Start()
	defer cronService.Stop()

	router := handlers.NewRouter(handlers.Services{
		Auth:     authService,
		OTP:      otpService,
		Catalog:  catalogService,
		Orders:   services.NewOrderService(orderRepo, foodRepo, publisher),
		Wishlist: services.NewWishlistService(wishlistRepo, foodRepo),
		Feedback: services.NewFeedbackService(feedbackRepo, foodRepo),
	}, jwtManager, config.Server.AllowedOrigins)

	log.Printf("Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}
