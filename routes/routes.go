package routes

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rebeauty-backend/config"
	"rebeauty-backend/controllers"
	"rebeauty-backend/services"
	"rebeauty-backend/utils"
)

// SetupRouter wires every service and controller onto a gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Bootstrap-Code"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	authService := services.NewAuthService(db, cfg)
	customerService := services.NewCustomerService(db)
	visitService := services.NewVisitService(db)
	targetingService := services.NewTargetingService(db)
	mailService := services.NewMailService(services.NewLogMailer(logger), logger)

	authController := controllers.NewAuthController(authService)
	staffController := controllers.NewStaffController(authService)
	customerController := controllers.NewCustomerController(customerService)
	visitController := controllers.NewVisitController(visitService)
	mailController := controllers.NewMailController(targetingService, mailService)
	dashboardController := controllers.NewDashboardController(targetingService, customerService)

	r.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(authService))
		auth.GET("/me", authController.Me)
	}

	// Staff creation sits outside the authenticated group: the very first
	// account is bootstrapped with a shared secret instead of a token.
	r.POST("/staffs", utils.OptionalAuthMiddleware(authService), staffController.Create)
	r.GET("/staffs", utils.AuthMiddleware(authService), staffController.List)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(authService))
	{
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.Create)
			customers.GET("", customerController.List)
			customers.GET("/:id", customerController.Get)
			customers.PATCH("/:id", customerController.Update)
			customers.DELETE("/:id", customerController.Delete)
		}

		visits := api.Group("/visits")
		{
			visits.POST("", visitController.Create)
			visits.GET("/by-customer/:customer_id", visitController.ListByCustomer)
			visits.GET("/today-count", visitController.TodayCount)
			visits.PUT("/:id", visitController.Update)
			visits.DELETE("/:id", visitController.Delete)
		}

		api.POST("/visit-items/:id/follow-sent", visitController.MarkFollowSent)

		api.GET("/follow-mail/targets", mailController.Targets)

		emails := api.Group("/emails")
		{
			emails.POST("/test", mailController.SendTest)
			emails.POST("/bulk", mailController.SendBulk)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/inactive-customers", dashboardController.InactiveCustomers)
			dashboard.GET("/monthly-new-count", dashboardController.MonthlyNewCount)
		}
	}

	return r
}
