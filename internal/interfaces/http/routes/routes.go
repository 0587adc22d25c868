// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/recommendation"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
	"github.com/your-org/storefront-backend/internal/domain/upload"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Dependencies are the services the API is built on
type Dependencies struct {
	Config *config.Config
	Logger logrus.FieldLogger
	JWT    *auth.JWTManager

	Products        *product.Service
	Carts           *cart.Service
	Checkouts       *checkout.Service
	Orders          *order.Service
	Favorites       *favorite.Service
	History         *history.Service
	Recommendations *recommendation.Service
	Subscribers     *subscriber.Service
	Users           *user.Service
	Uploads         *upload.Service
	Analytics       *analytics.Service
}

// SetupRoutes registers every API route under rg
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	SetupUserRoutes(rg, deps)
	SetupProductRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupOrderRoutes(rg, deps)
	SetupEngagementRoutes(rg, deps)
	SetupUploadRoutes(rg, deps)
	SetupAdminRoutes(rg, deps)
}

// SetupUserRoutes sets up registration, login and profile routes
func SetupUserRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Logger)

	users := rg.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh", authHandler.RefreshToken)

		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWT))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Products, deps.Logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/best-seller", productHandler.GetBestSeller)
		products.GET("/new-arrivals", productHandler.GetNewArrivals)
		products.GET("/similar/:id", productHandler.GetSimilar)
		products.GET("/:id", productHandler.GetProduct)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(deps.JWT), middleware.AdminMiddleware())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupCartRoutes sets up cart routes. Guests are identified by guestId.
func SetupCartRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Logger)

	carts := rg.Group("/cart")
	carts.Use(middleware.OptionalAuthMiddleware(deps.JWT))
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("", cartHandler.AddToCart)
		carts.PUT("", cartHandler.UpdateCartItem)
		carts.DELETE("", cartHandler.RemoveFromCart)
	}

	merge := rg.Group("/cart/merge")
	merge.Use(middleware.AuthMiddleware(deps.JWT))
	{
		merge.POST("", cartHandler.MergeCart)
	}
}

// SetupOrderRoutes sets up checkout and order routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkouts, deps.Logger)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Logger)

	checkouts := rg.Group("/checkout")
	checkouts.Use(middleware.AuthMiddleware(deps.JWT))
	{
		checkouts.POST("", checkoutHandler.CreateCheckout)
		checkouts.GET("/:id", checkoutHandler.GetCheckout)
		checkouts.PUT("/:id/pay", checkoutHandler.PayCheckout)
		checkouts.POST("/:id/finalize", checkoutHandler.FinalizeCheckout)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(deps.JWT))
	{
		orders.GET("/my-orders", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", orderHandler.DownloadInvoice)
	}
}

// SetupEngagementRoutes sets up favorites, history and newsletter routes
func SetupEngagementRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	favoriteHandler := handlers.NewFavoriteHandler(deps.Favorites, deps.Recommendations, deps.Logger)
	historyHandler := handlers.NewHistoryHandler(deps.History, deps.Logger)
	subscriberHandler := handlers.NewSubscriberHandler(deps.Subscribers, deps.Logger)

	favorites := rg.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(deps.JWT))
	{
		favorites.GET("", favoriteHandler.GetFavorites)
		favorites.POST("", favoriteHandler.AddFavorite)
		favorites.GET("/recommendations", favoriteHandler.GetRecommendations)
		favorites.DELETE("/:id", favoriteHandler.RemoveFavorite)
	}

	views := rg.Group("/history")
	views.Use(middleware.AuthMiddleware(deps.JWT))
	{
		views.GET("", historyHandler.GetHistory)
		views.POST("/view", historyHandler.RecordView)
	}

	rg.POST("/subscribe", subscriberHandler.Subscribe)
}

// SetupUploadRoutes sets up the image upload route
func SetupUploadRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	uploadHandler := handlers.NewUploadHandler(deps.Uploads, deps.Logger)

	uploads := rg.Group("/upload")
	uploads.Use(middleware.AuthMiddleware(deps.JWT))
	{
		uploads.POST("", uploadHandler.UploadImage)
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Products, deps.Logger)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Logger)
	userAdminHandler := handlers.NewUserAdminHandler(deps.Users, deps.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics, deps.Logger)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.JWT), middleware.AdminMiddleware())
	{
		admin.GET("/stats", analyticsHandler.GetDashboardStats)

		admin.GET("/products", productHandler.GetAdminProducts)

		admin.GET("/orders", orderHandler.GetAllOrders)
		admin.PUT("/orders/:id", orderHandler.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

		admin.GET("/users", userAdminHandler.GetUsers)
		admin.POST("/users", userAdminHandler.CreateUser)
		admin.PUT("/users/:id", userAdminHandler.UpdateUser)
		admin.DELETE("/users/:id", userAdminHandler.DeleteUser)
	}
}
