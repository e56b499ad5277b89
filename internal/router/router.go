package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront-gateway/config"
	"storefront-gateway/internal/app/controller"
	"storefront-gateway/internal/events"
	"storefront-gateway/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	cartController    *controller.CartController
	catalogController *controller.CatalogController
	searchController  *controller.SearchController
	sessionMiddleware *middleware.SessionMiddleware
	hub               *events.Hub
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	cartController *controller.CartController,
	catalogController *controller.CatalogController,
	searchController *controller.SearchController,
	sessionMiddleware *middleware.SessionMiddleware,
	hub *events.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		cartController:    cartController,
		catalogController: catalogController,
		searchController:  searchController,
		sessionMiddleware: sessionMiddleware,
		hub:               hub,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "healthy",
			"message":     "Storefront gateway is running",
			"subscribers": r.hub.SubscriberCount(),
		})
	})

	router.GET("/ws", func(c *gin.Context) {
		events.ServeWS(r.hub, c.Writer, c.Request)
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/session", r.authController.GetSession)
			auth.GET("/me", r.sessionMiddleware.RequireSession(), r.authController.GetMe)
			auth.PUT("/me", r.sessionMiddleware.RequireSession(), r.authController.UpdateMe)
			auth.POST("/password", r.sessionMiddleware.RequireSession(), r.authController.ChangePassword)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:id", r.cartController.UpdateItem)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
			cart.POST("/open", r.cartController.OpenCart)
			cart.POST("/close", r.cartController.CloseCart)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/:slug", r.catalogController.GetProduct)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.catalogController.ListCategories)
			categories.GET("/:slug", r.catalogController.GetCategory)
		}

		search := v1.Group("/search")
		{
			search.GET("", r.searchController.Search)
			search.POST("/query", r.searchController.SetQuery)
			search.GET("/state", r.searchController.GetState)
		}
	}

	return router
}
