package routes

import (
	"time"
	"topup-backend/internal/api/handlers"
	"topup-backend/internal/middleware"
	"topup-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	WalletHandler   handlers.WalletHandler
	PointsHandler   handlers.PointsHandler
	SettingsHandler handlers.SettingsHandler
	ProductHandler  handlers.ProductHandler
	AdminHandler    handlers.AdminHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Wallet()
	c.Points()
	c.Products()
	c.Settings()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/role", c.UserHandler.GetRole)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetProfile)
		user.Put("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.SaveProfile)
		user.Get("/is-admin", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.IsAdmin)
		// credential guessing gets its own tighter limit
		user.Post("/claim-admin",
			limiter.New(limiter.Config{Max: 5, Expiration: 1 * time.Minute}),
			c.Middleware.AuthMiddleware(c.JWTService),
			c.UserHandler.ClaimAdminAccess,
		)
	}
}

func (c *Config) Wallet() {
	wallet := c.App.Group("/api/v1/wallet", c.Middleware.AuthMiddleware(c.JWTService))
	{
		wallet.Get("/balance", c.WalletHandler.GetBalance)
		wallet.Get("/transactions", c.WalletHandler.GetCallerTransactions)
		wallet.Post("/topup", c.WalletHandler.SubmitTopUp)
		wallet.Post("/topup/proof", c.WalletHandler.UploadProof)
	}
}

func (c *Config) Points() {
	points := c.App.Group("/api/v1/points", c.Middleware.AuthMiddleware(c.JWTService))
	{
		points.Get("/balance", c.PointsHandler.GetBalance)
		points.Get("/transactions", c.PointsHandler.GetCallerTransactions)
		points.Post("/purchase-requests", c.PointsHandler.SubmitPurchaseRequest)
		points.Get("/purchase-requests", c.PointsHandler.GetCallerPurchaseRequests)
		points.Post("/diamonds", c.PointsHandler.PurchaseDiamonds)
		points.Get("/diamonds", c.PointsHandler.GetCallerDiamondPurchases)
		points.Post("/ad-rewards", c.PointsHandler.ClaimAdReward)
		points.Get("/ad-rewards/today", c.PointsHandler.GetDailyAdCount)
	}
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products")
	{
		products.Get("", c.ProductHandler.GetProducts)
	}

	orders := c.App.Group("/api/v1/orders", c.Middleware.AuthMiddleware(c.JWTService))
	{
		orders.Post("", c.ProductHandler.CreateOrder)
		orders.Get("", c.ProductHandler.GetCallerOrders)
	}
}

func (c *Config) Settings() {
	settings := c.App.Group("/api/v1/settings")
	{
		settings.Get("", c.SettingsHandler.GetSettings)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group(
		"/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)
	{
		admin.Get("/dashboard", c.AdminHandler.GetDashboard)
		admin.Get("/ad-rewards", c.AdminHandler.GetAdRewardsAnalytics)

		admin.Get("/users", c.UserHandler.GetUsers)
		admin.Get("/users/:id", c.UserHandler.GetUserProfile)
		admin.Post("/users/role", c.UserHandler.AssignRole)

		admin.Get("/wallet/transactions", c.WalletHandler.GetAllTransactions)
		admin.Post("/wallet/approve", c.WalletHandler.ApproveTopUp)
		admin.Post("/wallet/reject", c.WalletHandler.RejectTopUp)

		admin.Get("/points/transactions", c.PointsHandler.GetAllTransactions)
		admin.Get("/points/purchase-requests", c.PointsHandler.GetAllPurchaseRequests)
		admin.Post("/points/approve", c.PointsHandler.ApprovePurchaseRequest)
		admin.Post("/points/reject", c.PointsHandler.RejectPurchaseRequest)
		admin.Post("/points/adjust", c.PointsHandler.AdjustPoints)
		admin.Get("/points/diamonds", c.PointsHandler.GetAllDiamondPurchases)

		admin.Post("/products", c.ProductHandler.AddProduct)
		admin.Put("/products/:id", c.ProductHandler.UpdateProduct)
		admin.Delete("/products/:id", c.ProductHandler.DeleteProduct)
		admin.Get("/orders", c.ProductHandler.GetAllOrders)
		admin.Patch("/orders/:id/status", c.ProductHandler.UpdateOrderStatus)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
