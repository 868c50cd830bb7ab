package handler

import (
	"time"

	"billing/internal/config"
	"billing/internal/infrastructure/lock"
	"billing/internal/infrastructure/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, locker lock.Locker, cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()

	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(RecoveryMiddleware())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	h := NewHandler(db, locker, cfg)

	// 未配置用户名时根路径不做认证
	if cfg.Auth.Username != "" {
		r.GET("/", gin.BasicAuth(gin.Accounts{cfg.Auth.Username: cfg.Auth.Password}), h.Root)
	} else {
		r.GET("/", h.Root)
	}

	customers := r.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PATCH("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.GET("/:id/transactions", h.ListCustomerTransactions)
		customers.GET("/:id/plans", h.ListCustomerPlans)
		customers.POST("/:id/plans/:plan_id", h.SubscribeCustomer)
	}

	transactions := r.Group("/transactions")
	{
		transactions.GET("", h.ListTransactions)
		transactions.POST("", h.CreateTransaction)
		transactions.GET("/:id", h.GetTransaction)
		transactions.PATCH("/:id", h.UpdateTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}

	plans := r.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.POST("", h.CreatePlan)
		plans.GET("/:id", h.GetPlan)
		plans.PATCH("/:id", h.UpdatePlan)
		plans.DELETE("/:id", h.DeletePlan)
	}

	subscriptions := r.Group("/subscriptions")
	{
		subscriptions.GET("", h.ListSubscriptions)
		subscriptions.GET("/:id", h.GetSubscription)
		subscriptions.PATCH("/:id", h.UpdateSubscription)
		subscriptions.DELETE("/:id", h.DeleteSubscription)
	}

	r.POST("/invoices", h.CreateInvoice)
	r.GET("/time/:iso_code", h.CurrentTime)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
