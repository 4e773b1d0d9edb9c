package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/controllers"
	"github.com/benguluru-bhavan/ordering-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	portionCtrl := controllers.NewPortionController(db)
	bannerCtrl := controllers.NewBannerController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminUserCtrl := controllers.NewAdminUserController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	// Menu browsing needs no login.
	r.GET("/categories", categoryCtrl.GetActiveCategories)
	r.GET("/menu-items", menuCtrl.GetAvailableItems)
	r.GET("/banners", bannerCtrl.GetActiveBanners)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", authCtrl.GetProfile)
		auth.POST("/logout", authCtrl.Logout)

		// Checkout and the customer's own order tracking.
		auth.POST("/orders", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminCheck(db))
	{
		admin.GET("/categories", categoryCtrl.GetAllCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.GET("/menu-items", menuCtrl.GetAllItems)
		admin.POST("/menu-items", menuCtrl.CreateItem)
		admin.GET("/menu-items/:item_id", menuCtrl.GetItemByID)
		admin.PATCH("/menu-items/:item_id", menuCtrl.UpdateItem)
		admin.DELETE("/menu-items/:item_id", menuCtrl.DeleteItem)

		admin.GET("/portions", portionCtrl.GetAllPortions)
		admin.POST("/portions", portionCtrl.CreatePortion)
		admin.PATCH("/portions/:portion_id", portionCtrl.UpdatePortion)
		admin.DELETE("/portions/:portion_id", portionCtrl.DeletePortion)

		admin.GET("/banners", bannerCtrl.GetAllBanners)
		admin.POST("/banners", bannerCtrl.CreateBanner)
		admin.PATCH("/banners/:banner_id", bannerCtrl.UpdateBanner)
		admin.DELETE("/banners/:banner_id", bannerCtrl.DeleteBanner)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		admin.POST("/users", adminUserCtrl.ManageAdmins)

		admin.GET("/notifications", notificationCtrl.GetAllNotifications)
		admin.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
	}

	// Realtime order feed for the admin console; token arrives as a query
	// parameter because websocket upgrades cannot set headers.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/orders", controllers.OrderFeedHandler(db))
	}

	return r
}
