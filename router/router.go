package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/controllers"
	"restopos/middlewares"
)

func SetupRouter(db *gorm.DB, sessionMinutes int, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	// Global middleware must be attached before any route is registered;
	// gin snapshots each route's handler chain at registration time.
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	customerCtrl := controllers.NewCustomerController(db)
	sessionCtrl := controllers.NewSessionController(db, sessionMinutes)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	allergenCtrl := controllers.NewAllergenController(db)
	syncCtrl := controllers.NewSyncController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Guest flow: shared table session, no credentials
	r.POST("/login", sessionCtrl.GuestLogin)
	r.GET("/sessions/:token", sessionCtrl.GetSessionByToken)

	// Guest-facing catalog
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/products", productCtrl.GetActiveProducts)
	r.GET("/allergens", allergenCtrl.GetAllAllergens)

	// Back-office auth, rate limited
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/admin/register", userCtrl.Register)
		public.POST("/admin/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/by-status", tableCtrl.FindTablesByStatus)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// GUESTS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// SESSIONS
	auth.GET("/sessions", sessionCtrl.ListSessions)
	auth.POST("/sessions/repair-duplicates", sessionCtrl.RepairDuplicates)
	auth.POST("/sessions/sweep-expired", sessionCtrl.SweepExpired)
	auth.GET("/sessions/:session_id", sessionCtrl.GetSessionByID)
	auth.PATCH("/sessions/:session_id", sessionCtrl.UpdateSession)
	auth.POST("/sessions/:session_id/close", sessionCtrl.CloseSession)
	auth.DELETE("/sessions/:session_id", sessionCtrl.DeleteSession)

	// CATALOG
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	auth.GET("/products", productCtrl.GetAllProducts)
	auth.POST("/products", productCtrl.CreateProduct)
	auth.GET("/products/:product_id", productCtrl.GetProductByID)
	auth.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	auth.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	auth.POST("/allergens", allergenCtrl.CreateAllergen)
	auth.DELETE("/allergens/:allergen_id", allergenCtrl.DeleteAllergen)

	// DOMOTICA SYNC (admin role only)
	sync := auth.Group("/sync")
	sync.Use(middlewares.RequireRole("admin"))
	{
		sync.POST("/domotica", syncCtrl.ImportSnapshot)
		sync.GET("/batches", syncCtrl.ListBatches)
	}

	return r
}
