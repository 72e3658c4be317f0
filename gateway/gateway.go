package gateway

import (
	"fmt"
	"net/http"

	"github.com/example/sweetshop/pkg/config"
	"github.com/example/sweetshop/pkg/media"
	"github.com/example/sweetshop/pkg/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Gateway struct {
	config    *config.Config
	logger    *zap.Logger
	router    *gin.Engine
	auth      *service.AuthService
	inventory *service.InventoryService
	orders    *service.OrderService
	media     *media.CloudinaryService
}

func NewGateway(cfg *config.Config, logger *zap.Logger, auth *service.AuthService, inventory *service.InventoryService, orders *service.OrderService, mediaSvc *media.CloudinaryService) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config:    cfg,
		logger:    logger,
		router:    router,
		auth:      auth,
		inventory: inventory,
		orders:    orders,
		media:     mediaSvc,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := g.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", g.register)
			auth.POST("/login", g.login)
			auth.GET("/validate", g.requireAuth(), g.validateToken)
			auth.GET("/stats", g.requireAuth(), g.requireAdmin(), g.userStats)
		}

		sweets := api.Group("/sweets", g.requireAuth())
		{
			sweets.GET("", g.listSweets)
			sweets.GET("/search", g.searchSweets)
			sweets.GET("/categories", g.listCategories)
			sweets.POST("", g.requireAdmin(), g.addSweet)
			sweets.PUT("/:id", g.requireAdmin(), g.updateSweet)
			sweets.DELETE("/:id", g.requireAdmin(), g.deleteSweet)
			sweets.POST("/:id/purchase", g.purchaseSweet)
			sweets.POST("/:id/restock", g.requireAdmin(), g.restockSweet)
		}

		orders := api.Group("/orders", g.requireAuth())
		{
			orders.GET("", g.requireAdmin(), g.listOrders)
			orders.GET("/stats", g.requireAdmin(), g.orderStats)
			orders.GET("/my-orders", g.myOrders)
			orders.GET("/:id", g.getOrder)
			orders.PUT("/:id/status", g.requireAdmin(), g.updateOrderStatus)
		}

		if g.media != nil {
			images := api.Group("/images", g.requireAuth(), g.requireAdmin())
			{
				images.POST("/upload", g.uploadImage)
				images.DELETE("/delete", g.deleteImage)
			}
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Router() *gin.Engine {
	return g.router
}

func (g *Gateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.config.Server.Host, g.config.Server.Port)
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}
