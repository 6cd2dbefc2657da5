package api

import (
	"net/http" // HTTP status codes
	"time"     // CORS max age

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-contrib/pprof" // Profiling endpoints
	"github.com/gin-gonic/gin"     // Gin web framework
	"gorm.io/gorm"                 // GORM ORM library

	"realty_portal/internal/middleware" // Auth middleware
	"realty_portal/internal/store"      // Persistence
)

// RouterConfig holds the HTTP settings taken from Config
type RouterConfig struct {
	IsProd               bool
	TrustedProxies       []string
	CORSOrigins          []string
	ProtectContentWrites bool
	MediaRoot            string // served under /media when non-empty
	Tokens               TokenConfig
}

// Deps are the services the handlers run on
type Deps struct {
	DB       *gorm.DB
	Admins   *store.AdminStore
	Messages *store.MessageStore
	Content  *Content
	Notifier Notifier // nil disables contact mail
}

// corsConfig allows credentials only for an explicit origin list; an empty list opens every origin without them
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

// NewRouter builds the gin engine with every route
func NewRouter(cfg RouterConfig, d Deps) (*gin.Engine, error) {
	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	if !cfg.IsProd {
		pprof.Register(r) // /debug/pprof outside production only
	}

	r.GET("/health", healthHandler(d.DB))
	if cfg.MediaRoot != "" {
		r.Static("/media", cfg.MediaRoot) // Local uploads
	}

	auth := []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(cfg.Tokens.Secret),
		middleware.LoadCallerMiddleware(d.Admins),
	}

	// Admin routes
	r.POST("/admin/login", LoginHandler(d.Admins, cfg.Tokens))
	r.POST("/admin/refresh", RefreshHandler(d.Admins, cfg.Tokens))
	adminGroup := r.Group("/admin", auth...)
	adminGroup.GET("/me", MeHandler())
	manage := adminGroup.Group("", middleware.AdminOnlyMiddleware())
	manage.GET("/users", ListAdminsHandler(d.Admins))
	manage.POST("/create", CreateAdminHandler(d.Admins))
	manage.DELETE("/delete/:id", DeleteAdminHandler(d.Admins))
	staff := adminGroup.Group("/messages", middleware.StaffOnlyMiddleware())
	staff.GET("", ListMessagesHandler(d.Messages))
	staff.PATCH("/:id", MarkMessageHandler(d.Messages))

	// Content routes; writes are gated only when configured
	var writeGate []gin.HandlerFunc
	if cfg.ProtectContentWrites {
		writeGate = auth
	}
	ct := d.Content
	listings := r.Group("/listings")
	listings.GET("", ListListingsHandler(ct))
	listings.GET("/search", SearchListingsHandler(ct))
	listings.GET("/:id", GetListingHandler(ct))
	listingWrites := listings.Group("", writeGate...)
	listingWrites.POST("", CreateListingHandler(ct))
	listingWrites.PUT("/:id", UpdateListingHandler(ct, false))
	listingWrites.PATCH("/:id", UpdateListingHandler(ct, true))
	listingWrites.DELETE("/:id", DeleteListingHandler(ct))

	gallery := r.Group("/gallery")
	gallery.GET("", ListGalleryHandler(ct))
	gallery.GET("/:id", GetGalleryHandler(ct))
	galleryWrites := gallery.Group("", writeGate...)
	galleryWrites.POST("", CreateGalleryHandler(ct))
	galleryWrites.PUT("/:id", UpdateGalleryHandler(ct, false))
	galleryWrites.PATCH("/:id", UpdateGalleryHandler(ct, true))
	galleryWrites.DELETE("/:id", DeleteGalleryHandler(ct))

	r.POST("/contact", ContactHandler(d.Messages, d.Notifier))
	return r, nil
}

// healthHandler reports liveness and database reachability
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
