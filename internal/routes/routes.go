package routes

import (
	"github.com/gin-gonic/gin"

	"laptop-storefront/internal/handlers"
)

// Handlers agrupa todo lo que necesita la tabla de rutas.
// Los middlewares nil se omiten.
type Handlers struct {
	Storefront *handlers.StorefrontHandler
	Products   *handlers.ProductHandler
	Customers  *handlers.CustomerHandler
	Reviews    *handlers.ReviewHandler
	Settings   *handlers.SettingsHandler
	Uploads    *handlers.UploadHandler
	Exports    *handlers.ExportHandler
	Health     *handlers.HealthHandler

	AdminAuth   gin.HandlerFunc
	Maintenance gin.HandlerFunc
	ReviewLimit gin.HandlerFunc
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	handlers.UseJSONFieldNames()

	router.GET("/health", h.Health.Health)

	v1 := router.Group("/v1")
	public := v1.Group("", compact(h.Maintenance)...)
	{
		public.GET("/products", h.Storefront.Browse)
		public.GET("/products/search", h.Storefront.Search)
		public.GET("/products/:slug", h.Storefront.Detail)
		public.GET("/home", h.Storefront.Home)
		public.GET("/reviews", h.Storefront.Reviews)
		public.POST("/reviews", append(compact(h.ReviewLimit), h.Storefront.SubmitReview)...)
		public.GET("/settings", h.Storefront.Settings)
	}

	admin := v1.Group("/admin", compact(h.AdminAuth)...)
	{
		products := admin.Group("/products")
		products.GET("", h.Products.ListProducts)
		products.POST("", h.Products.CreateProduct)
		products.GET("/stats", h.Products.Stats)
		products.GET("/warnings", h.Products.Warnings)
		products.GET("/export", h.Exports.Products)
		products.POST("/bulk-delete", h.Products.BulkDelete)
		products.GET("/:id", h.Products.GetProduct)
		products.PUT("/:id", h.Products.UpdateProduct)
		products.PATCH("/:id/publish", h.Products.SetPublished)
		products.POST("/:id/duplicate", h.Products.DuplicateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)

		customers := admin.Group("/customers")
		customers.GET("", h.Customers.ListCustomers)
		customers.POST("", h.Customers.CreateCustomer)
		customers.GET("/stats", h.Customers.Stats)
		customers.GET("/export", h.Exports.Customers)
		customers.POST("/bulk-delete", h.Customers.BulkDelete)
		customers.GET("/:id", h.Customers.GetCustomer)
		customers.PUT("/:id", h.Customers.UpdateCustomer)
		customers.PATCH("/:id/status", h.Customers.SetStatus)
		customers.POST("/:id/reminder", h.Customers.SendReminder)
		customers.POST("/:id/review-request", h.Customers.RequestReview)
		customers.DELETE("/:id", h.Customers.DeleteCustomer)

		reviews := admin.Group("/reviews")
		reviews.GET("", h.Reviews.ListReviews)
		reviews.POST("", h.Reviews.CreateReview)
		reviews.GET("/stats", h.Reviews.Stats)
		reviews.GET("/export", h.Exports.Reviews)
		reviews.POST("/bulk-delete", h.Reviews.BulkDelete)
		reviews.POST("/bulk-status", h.Reviews.BulkStatus)
		reviews.GET("/:id", h.Reviews.GetReview)
		reviews.PUT("/:id", h.Reviews.UpdateReview)
		reviews.PATCH("/:id/status", h.Reviews.SetStatus)
		reviews.PATCH("/:id/featured", h.Reviews.SetFeatured)
		reviews.POST("/:id/reply", h.Reviews.Reply)
		reviews.DELETE("/:id", h.Reviews.DeleteReview)

		admin.GET("/settings", h.Settings.GetSettings)
		admin.PATCH("/settings", h.Settings.UpdateSettings)

		admin.POST("/uploads", h.Uploads.Upload)
		admin.POST("/uploads/batch", h.Uploads.UploadBatch)
	}
}

func compact(mw ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw))
	for _, m := range mw {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
