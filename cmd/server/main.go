package main

import (
	"context" // context package is needed for Redis operations

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"realty_portal/internal/api"    // Custom package for API handlers
	"realty_portal/internal/config" // Custom package for configuration
	"realty_portal/internal/db"     // Database connection
	"realty_portal/internal/media"  // Uploaded file storage
	"realty_portal/internal/notify" // Contact mail
	"realty_portal/internal/search" // Listing search index
	"realty_portal/internal/store"  // Persistence
	"realty_portal/internal/utils"  // Response cache
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	setupLogger(cfg)
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	files, mediaRoot := setupMedia(cfg)
	cache := setupCache(cfg)

	// Search index is optional
	var index search.Indexer
	if cfg.Meili.Host != "" {
		client := search.NewSearchClient(cfg.Meili.Host, cfg.Meili.APIKey, cfg.Meili.Index)
		if err := client.InitIndex(); err != nil {
			logrus.WithError(err).Warn("meilisearch unavailable, search falls back to SQL")
		}
		index = client
	}

	// Contact mail is optional
	var notifier api.Notifier
	if cfg.MailEnabled() {
		sender := notify.NewMailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
		notifier = notify.NewContactNotifier(sender, cfg.Mail.Operator, cfg.Mail.Signature)
	} else {
		logrus.Warn("MAIL_USER or MAIL_OPERATOR not set, contact notifications disabled")
	}

	r, err := api.NewRouter(api.RouterConfig{
		IsProd:               cfg.IsProd,
		TrustedProxies:       cfg.TrustedProxies,
		CORSOrigins:          cfg.CORSOrigins,
		ProtectContentWrites: cfg.ProtectContentWrites,
		MediaRoot:            mediaRoot,
		Tokens: api.TokenConfig{
			Secret:     cfg.JWTSecret,
			AccessTTL:  cfg.AccessTTL,
			RefreshTTL: cfg.RefreshTTL,
		},
	}, api.Deps{
		DB:       gdb,
		Admins:   store.NewAdminStore(gdb),
		Messages: store.NewMessageStore(gdb),
		Content: &api.Content{
			Listings:       store.NewListingStore(gdb, files),
			Gallery:        store.NewGalleryStore(gdb, files),
			Cache:          cache,
			CacheTTL:       cfg.CacheTTL,
			Index:          index,
			MediaBaseURL:   cfg.Media.BaseURL,
			MaxUploadBytes: cfg.MaxUploadMB << 20,
		},
		Notifier: notifier,
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {             // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger picks the formatter and level
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupMedia returns the upload store and, for local disk, the directory to serve
func setupMedia(cfg *config.Config) (media.Store, string) {
	switch cfg.Media.Backend {
	case "s3":
		s, err := media.NewMinioStore(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.UseSSL)
		if err != nil {
			logrus.Fatalf("failed to connect to object storage: %v", err)
		}
		if cfg.Media.BaseURL == "" {
			logrus.Warn("MEDIA_BASE_URL not set, image URLs will point at /media on this host")
		}
		return s, ""
	case "memory":
		return media.NewMemoryStore(), ""
	default:
		s, err := media.NewDiskStore(cfg.Media.Root)
		if err != nil {
			logrus.Fatalf("failed to prepare media root: %v", err)
		}
		return s, s.Root()
	}
}

// setupCache uses Redis when configured, otherwise an in-process cache
func setupCache(cfg *config.Config) utils.Cache {
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set, using in-process cache")
		return utils.NewLocalCache(1000)
	}
	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return utils.NewRedisCache(redisClient)
}
