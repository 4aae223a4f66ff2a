package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrition-app/config"
	adminapi "nutrition-app/internal/api/admin"
	authapi "nutrition-app/internal/api/auth"
	billingapi "nutrition-app/internal/api/billing"
	"nutrition-app/internal/api/billingwebhook"
	roomsapi "nutrition-app/internal/api/rooms"
	trackingapi "nutrition-app/internal/api/tracking"
	usersapi "nutrition-app/internal/api/users"
	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/domain/access"
	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/rooms"
	"nutrition-app/internal/domain/subscription"
	"nutrition-app/internal/domain/tracking"
	"nutrition-app/internal/domain/users"
)

// Dependencies is everything the HTTP layer is built from. StatusCache may be
// nil.
type Dependencies struct {
	Config      *config.Config
	Logger      *slog.Logger
	Users       users.Repository
	Billing     billing.Repository
	Tracking    tracking.Repository
	Rooms       rooms.Repository
	Gateway     billingapi.Gateway
	StatusCache billingapi.StatusCache
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	jwtSecret := []byte(cfg.JWTSecret)
	updater := subscription.NewUpdater(deps.Users, deps.Logger)

	authHandler := authapi.NewHandler(deps.Users, jwtSecret, deps.Logger)
	webhookHandler := billingwebhook.NewHandler(cfg.AbacatePayWebhookSecret, updater, deps.Billing, deps.Logger)
	billingHandler := billingapi.NewHandler(billingapi.Options{
		Gateway:       deps.Gateway,
		Cache:         deps.StatusCache,
		Subscriptions: updater,
		Payments:      deps.Billing,
		Users:         deps.Users,
		Logger:        deps.Logger,
	})
	usersHandler := usersapi.NewHandler(deps.Users, deps.Billing, deps.Logger)
	trackingHandler := trackingapi.NewHandler(deps.Tracking, deps.Logger)
	roomsHandler := roomsapi.NewHandler(deps.Rooms, deps.Logger)
	adminHandler := adminapi.NewHandler(deps.Users, deps.Billing)

	// The signature covers the raw body, so no sanitizer here.
	r.POST("/webhooks/abacatepay", webhookHandler.Receive)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Status is polled by the checkout page; the charge id is the only input.
	r.GET("/billing/status/:id", billingHandler.CheckStatus)
	r.GET("/billing/plans", billingapi.ListPlans)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	if cfg.GoogleEnabled() {
		google := authapi.NewGoogleHandler(authHandler, authapi.GoogleConfig{
			ClientID:         cfg.GoogleClientID,
			ClientSecret:     cfg.GoogleClientSecret,
			RedirectURL:      cfg.GoogleRedirectURL,
			FrontendRedirect: cfg.GoogleFrontendRedirect,
		})
		public.GET("/auth/google", google.Start)
		public.GET("/auth/google/callback", google.Callback)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(jwtSecret, deps.Logger), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", usersHandler.GetCurrentUser)
	auth.PATCH("/me", usersHandler.UpdateProfile)
	auth.POST("/change-password", authHandler.ChangePassword)

	auth.POST("/billing/checkout", billingHandler.CreateCheckout)
	auth.POST("/billing/cancel", billingHandler.CancelSubscription)
	auth.GET("/billing/payments", billingHandler.GetPaymentHistory)

	auth.POST("/meals", middleware.RequireCapability(deps.Users, access.CapMealLog), trackingHandler.CreateMeal)
	auth.GET("/meals", trackingHandler.ListMeals)
	auth.DELETE("/meals/:id", trackingHandler.DeleteMeal)
	auth.POST("/hydration", middleware.RequireCapability(deps.Users, access.CapHydration), trackingHandler.CreateHydration)
	auth.GET("/hydration", trackingHandler.ListHydration)
	auth.POST("/weight", middleware.RequireCapability(deps.Users, access.CapWeight), trackingHandler.CreateWeight)
	auth.GET("/weight", trackingHandler.ListWeights)

	auth.GET("/rooms", roomsHandler.ListRooms)
	auth.POST("/rooms/join", roomsHandler.JoinRoom)
	auth.GET("/meal-plans", roomsHandler.ListMyMealPlans)

	// Professional tier
	auth.POST("/rooms", middleware.RequireCapability(deps.Users, access.CapRooms), roomsHandler.CreateRoom)
	auth.POST("/rooms/:id/plans", middleware.RequireCapability(deps.Users, access.CapAssignPlans), roomsHandler.AssignPlan)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtSecret, deps.Logger), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/users", adminHandler.ListAllUsers)
	admin.GET("/users/:id", adminHandler.GetUserDetails)
	admin.GET("/payments", adminHandler.ListAllPayments)
	admin.GET("/webhook-logs", adminHandler.ListWebhookLogs)
	admin.GET("/stats", adminHandler.GetAdminStats)
}
