package router

import (
	"github.com/gin-gonic/gin"
	"github.com/vendra/vendra-backend/config"
	"github.com/vendra/vendra-backend/internal/app/controller"
	"github.com/vendra/vendra-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	productController    *controller.ProductController
	catalogController    *controller.CatalogController
	collectionController *controller.CollectionController
	taxonomyController   *controller.TaxonomyController
	addressController    *controller.AddressController
	uploadController     *controller.UploadController
	eventsController     *controller.EventsController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	catalogController *controller.CatalogController,
	collectionController *controller.CollectionController,
	taxonomyController *controller.TaxonomyController,
	addressController *controller.AddressController,
	uploadController *controller.UploadController,
	eventsController *controller.EventsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		productController:    productController,
		catalogController:    catalogController,
		collectionController: collectionController,
		taxonomyController:   taxonomyController,
		addressController:    addressController,
		uploadController:     uploadController,
		eventsController:     eventsController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "VENDRA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PATCH("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		// Public storefront read surface
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/products", r.catalogController.ListProducts)
			catalog.GET("/products/:id", r.catalogController.GetProduct)
			catalog.GET("/collections", r.catalogController.ListCollections)
			catalog.GET("/taxonomy", r.catalogController.GetTaxonomy)
		}

		// Back-office write surface
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("staff", "admin"))
		{
			products := admin.Group("/products")
			{
				products.GET("", r.productController.ListProducts)
				products.GET("/export", r.productController.ExportCatalog)
				products.GET("/:id", r.productController.GetProduct)
				products.POST("", r.productController.CreateProduct)
				products.POST("/bulk", r.productController.BulkUpdateProducts)
				products.PATCH("/:id", r.productController.UpdateProduct)
				products.DELETE("/:id", r.productController.DeleteProduct)
			}

			collections := admin.Group("/collections")
			{
				collections.GET("", r.collectionController.ListCollections)
				collections.GET("/:id", r.collectionController.GetCollection)
				collections.POST("", r.collectionController.CreateCollection)
				collections.PATCH("/:id", r.collectionController.UpdateCollection)
				collections.DELETE("/:id", r.collectionController.DeleteCollection)
			}

			taxonomy := admin.Group("/taxonomy")
			{
				taxonomy.GET("/categories", r.taxonomyController.ListCategories)
				taxonomy.POST("/categories", r.taxonomyController.CreateCategory)
				taxonomy.GET("/types", r.taxonomyController.ListTypes)
				taxonomy.POST("/types", r.taxonomyController.CreateType)
				taxonomy.GET("/vendors", r.taxonomyController.ListVendors)
				taxonomy.POST("/vendors", r.taxonomyController.CreateVendor)
			}

			admin.POST("/uploads/presigned-url", r.uploadController.GeneratePresignedURL)
			admin.GET("/events", r.eventsController.Subscribe)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.ListAddresses)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
			addresses.POST("/:id/default", r.addressController.SetDefaultAddress)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
