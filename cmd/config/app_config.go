package config

import (
	"os"
	"strconv"
	"time"
	"topup-backend/internal/api/handlers"
	"topup-backend/internal/api/routes"
	"topup-backend/internal/middleware"
	"topup-backend/internal/utils"
	"topup-backend/internal/utils/mailing"
	"topup-backend/internal/utils/storage"
	"topup-backend/pkg/admin"
	"topup-backend/pkg/jwt"
	"topup-backend/pkg/points"
	"topup-backend/pkg/product"
	"topup-backend/pkg/settings"
	"topup-backend/pkg/user"
	"topup-backend/pkg/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Dhaka",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()

	adProfit, err := strconv.ParseInt(utils.GetConfig("AD_PROFIT_BDT_PER_POINT"), 10, 64)
	if err != nil {
		adProfit = admin.DefaultAdProfitBdtPerPoint
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	walletRepository := wallet.NewWalletRepository(db)
	pointsRepository := points.NewPointsRepository(db)
	settingsRepository := settings.NewSettingsRepository(db)
	productRepository := product.NewProductRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(
		userRepository,
		jwtService,
		utils.GetConfig("ADMIN_USERNAME"),
		utils.GetConfig("ADMIN_PASSWORD"),
	)
	walletService := wallet.NewWalletService(walletRepository, userRepository, s3, mailer)
	settingsService := settings.NewSettingsService(settingsRepository)
	pointsService := points.NewPointsService(pointsRepository, settingsRepository)
	productService := product.NewProductService(productRepository)
	adminService := admin.NewAdminService(adminRepository, adProfit)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator, jwtService)
	walletHandler := handlers.NewWalletHandler(walletService, validator)
	pointsHandler := handlers.NewPointsHandler(pointsService, validator)
	settingsHandler := handlers.NewSettingsHandler(settingsService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	adminHandler := handlers.NewAdminHandler(adminService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		WalletHandler:   walletHandler,
		PointsHandler:   pointsHandler,
		SettingsHandler: settingsHandler,
		ProductHandler:  productHandler,
		AdminHandler:    adminHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
