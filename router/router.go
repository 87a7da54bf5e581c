package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/campus-eats/canteen-app/config"
	"github.com/campus-eats/canteen-app/controllers"
	"github.com/campus-eats/canteen-app/middlewares"
	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/notify"
	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

// Dependencies are built once in main and shared by every handler.
type Dependencies struct {
	Config  config.Config
	DB      *gorm.DB
	Hub     *notify.Hub
	Tokens  *utils.TokenIssuer
	Auth    *services.AuthService
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.Config.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())
	if deps.Config.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(rate.Limit(deps.Config.RateLimitRPS), deps.Config.RateLimitBurst).RateLimit())
	}

	authCtrl := controllers.NewAuthController(deps.Auth)
	canteenCtrl := controllers.NewCanteenController(deps.Catalog)
	categoryCtrl := controllers.NewMenuCategoryController(deps.Catalog)
	menuCtrl := controllers.NewMenuController(deps.Catalog)
	orderCtrl := controllers.NewOrderController(deps.Orders)
	wsCtrl := controllers.NewWSController(deps.Hub, deps.Catalog, deps.Config.CORSOrigins)

	authenticated := middlewares.AuthMiddleware(deps.Tokens)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		utils.RespondJSON(c, code, "Canteen API", gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
		})
	})

	authGroup := api.Group("/auth")
	{
		// login/register are limited per IP on top of the global limiter
		strict := middlewares.NewStrictRateLimiter().RateLimit()
		authGroup.POST("/register", strict, authCtrl.Register)
		authGroup.POST("/login", strict, authCtrl.Login)
		authGroup.GET("/me", authenticated, authCtrl.Me)
	}

	api.GET("/canteens", canteenCtrl.GetAllCanteens)
	api.GET("/canteens/:id/menu", canteenCtrl.GetCanteenMenu)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	orders := api.Group("/orders", authenticated)
	{
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("/my-orders", orderCtrl.GetMyOrders)
		orders.GET("/:id", orderCtrl.GetOrderByID)
	}

	admin := api.Group("/admin", authenticated, middlewares.RequireRoles(models.RoleCanteenAdmin, models.RoleSuperAdmin))
	{
		admin.GET("/my-canteens", canteenCtrl.GetMyCanteens)
		admin.GET("/canteens/:id/orders", orderCtrl.GetCanteenOrders)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
		admin.POST("/orders/:id/cancel", orderCtrl.CancelOrder)

		admin.GET("/canteens/:id/categories", categoryCtrl.GetCategories)
		admin.POST("/canteens/:id/categories", categoryCtrl.CreateCategory)
		admin.POST("/canteens/:id/menu-items", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu-items/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)
	}

	r.GET("/ws", authenticated, wsCtrl.Handle)

	return r
}
