package router

import (
	"net/http"
	"time"

	"salestrack/internal/apierror"
	"salestrack/internal/config"
	"salestrack/internal/handler"
	"salestrack/internal/middleware"
	"salestrack/internal/repository"
	"salestrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, rdb, time.Duration(cfg.ProductCacheTTL)*time.Second)
	saleSvc := service.NewSaleService(saleRepo, productRepo, userRepo, rdb, cfg.ReceiptStoragePath)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(saleRepo, expenseRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Catalog reads are public; writes require an admin token.
	r.GET("/api/products", productsH.List)
	r.GET("/api/products/:id", productsH.Get)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret, userRepo)

	products := r.Group("/api/products", jwtMW, middleware.RequireAdmin())
	{
		products.POST("", productsH.Create)
		products.PUT("/:id", productsH.Update)
		products.DELETE("/:id", productsH.Delete)
	}

	// Sales — any authenticated user
	sales := r.Group("/api/sales", jwtMW)
	{
		sales.POST("", salesH.Create)
		sales.GET("", salesH.List)
		sales.GET("/stats/sales", reportsH.SalesStats)
		sales.GET("/analytics/sales", reportsH.SalesAnalytics)
		sales.GET("/stats/products/count", reportsH.ProductCount)
		sales.GET("/stats/products/growth", reportsH.ProductGrowth)
		sales.GET("/:id", salesH.Get)
		sales.GET("/:id/receipt", salesH.Receipt)
	}

	// Expenses — admin only
	expenses := r.Group("/api/expenses", jwtMW, middleware.RequireAdmin())
	{
		expenses.POST("", expensesH.Create)
		expenses.GET("", expensesH.List)
		expenses.GET("/stats/expenses", reportsH.ExpenseStats)
		expenses.GET("/analytics/expenses", reportsH.ExpenseAnalytics)
		expenses.GET("/total", reportsH.ExpenseTotal)
		expenses.PUT("/:id", expensesH.Update)
		expenses.DELETE("/:id", expensesH.Delete)
	}

	// Account management — admin only
	users := r.Group("/api/users", jwtMW, middleware.RequireAdmin())
	{
		users.POST("", usersH.Create)
		users.GET("", usersH.List)
		users.PUT("/:id", usersH.Update)
		users.DELETE("/:id", usersH.Deactivate)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Route not found"))
	})

	return r
}
