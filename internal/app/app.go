package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/config"
	"laptop-storefront/internal/database"
	"laptop-storefront/internal/events"
	"laptop-storefront/internal/handlers"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/media"
	"laptop-storefront/internal/middleware"
	"laptop-storefront/internal/repository"
	"laptop-storefront/internal/routes"
	"laptop-storefront/internal/services"
)

// App tiene una sola instancia de cada dependencia y se encarga de cerrarlas
type App struct {
	Config *config.Config
	Logger *logrus.Logger

	Mongo     *mongo.Client
	DB        *mongo.Database
	Cache     cache.Cache
	Publisher events.Publisher

	Products  *services.ProductService
	Catalog   *services.CatalogService
	Customers *services.CustomerService
	Reviews   *services.ReviewService
	Settings  *services.SettingsService
	Uploader  *media.Uploader

	checks map[string]handlers.Pinger
}

// New arma la aplicación completa. Redis, NATS y media son opcionales.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Production: cfg.IsProduction(),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	client, err := database.Connect(ctx, cfg.MongoURI, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Logger: log,
		Mongo:  client,
		DB:     client.Database(cfg.MongoDB),
		checks: map[string]handlers.Pinger{},
	}
	a.checks["mongo"] = func(ctx context.Context) error { return database.Ping(ctx, client) }

	a.Cache = a.newCache()
	a.Publisher = a.newPublisher()

	settings := services.NewSettingsService(repository.NewSettingsRepository(a.DB), a.Cache, log)
	products := repository.NewProductRepository(a.DB)

	a.Settings = settings
	a.Products = services.NewProductService(products, a.Cache, a.Publisher, log)
	a.Catalog = services.NewCatalogService(products, settings, a.Cache, log)
	a.Customers = services.NewCustomerService(repository.NewCustomerRepository(a.DB), settings, log)
	a.Reviews = services.NewReviewService(repository.NewReviewRepository(a.DB), settings, a.Cache, a.Publisher, log)

	uploader, err := media.NewUploader(media.Options{
		CloudName:    cfg.MediaCloudName,
		UploadPreset: cfg.MediaUploadPreset,
		Folder:       cfg.MediaFolder,
		Endpoint:     cfg.MediaUploadURL,
		MaxBytes:     cfg.MediaMaxBytes,
	}, log)
	if err != nil {
		log.WithError(err).Warn("media uploads disabled")
	} else {
		a.Uploader = uploader
	}

	return a, nil
}

func (a *App) newCache() cache.Cache {
	if a.Config.RedisURL == "" {
		a.Logger.Info("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryCache(a.Config.CacheTTL, time.Minute)
	}

	rc, err := cache.NewRedisCache(a.Config.RedisURL, a.Config.CacheTTL, logger.Component(a.Logger, "cache.redis"))
	if err != nil {
		a.Logger.WithError(err).Warn("invalid redis config, using in-memory cache")
		return cache.NewMemoryCache(a.Config.CacheTTL, time.Minute)
	}
	if rc.IsAvailable() {
		a.checks["redis"] = rc.Ping
	}
	return rc
}

func (a *App) newPublisher() events.Publisher {
	if a.Config.NATSURL == "" {
		return events.NoopPublisher{}
	}
	p, err := events.NewNATSPublisher(a.Config.NATSURL, a.Logger)
	if err != nil {
		a.Logger.WithError(err).Warn("events disabled")
		return events.NoopPublisher{}
	}
	return p
}

// Router arma el engine de gin con middlewares y rutas
func (a *App) Router(ctx context.Context) (*gin.Engine, error) {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := newEngine(a.Config)
	if err != nil {
		return nil, err
	}
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(a.Logger),
		middleware.CORS(a.Config.CORSOrigins),
	)

	adminAuth, err := a.adminAuth(ctx)
	if err != nil {
		return nil, err
	}

	// ImageUploader queda nil si media no está configurado
	var uploader handlers.ImageUploader
	if a.Uploader != nil {
		uploader = a.Uploader
	}

	routes.RegisterRoutes(router, routes.Handlers{
		Storefront: handlers.NewStorefrontHandler(a.Catalog, a.Reviews, a.Settings, a.Logger),
		Products:   handlers.NewProductHandler(a.Products, a.Logger),
		Customers:  handlers.NewCustomerHandler(a.Customers, a.Logger),
		Reviews:    handlers.NewReviewHandler(a.Reviews, a.Logger),
		Settings:   handlers.NewSettingsHandler(a.Settings, a.Logger),
		Uploads:    handlers.NewUploadHandler(uploader, a.Logger),
		Exports:    handlers.NewExportHandler(a.Products, a.Customers, a.Reviews, a.Logger),
		Health:     handlers.NewHealthHandler(a.checks),

		AdminAuth:   adminAuth,
		Maintenance: middleware.Maintenance(a.Settings, a.Logger),
		ReviewLimit: middleware.RateLimit(middleware.NewIPRateLimiter(a.Config.ReviewRatePerMinute, 3)),
	})
	return router, nil
}

// newEngine crea el engine; solo los proxies configurados pueden fijar la IP del cliente
func newEngine(cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	return router, nil
}

func (a *App) adminAuth(ctx context.Context) (gin.HandlerFunc, error) {
	opts := middleware.AuthOptions{AllowedEmails: a.Config.AdminEmails, Disabled: a.Config.AuthDisabled}
	if opts.Disabled {
		a.Logger.Warn("admin authentication is DISABLED")
		return middleware.AdminAuth(nil, opts, a.Logger), nil
	}

	verifier, err := middleware.NewFirebaseVerifier(ctx, a.Config.FirebaseProjectID, a.Config.FirebaseCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to init identity provider: %w", err)
	}
	if len(opts.AllowedEmails) == 0 {
		a.Logger.Warn("ADMIN_EMAILS is empty, any authenticated user can use the admin API")
	}
	return middleware.AdminAuth(verifier, opts, a.Logger), nil
}

// Serve levanta el servidor HTTP y lo apaga cuando ctx termina
func (a *App) Serve(ctx context.Context) error {
	router, err := a.Router(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.WithField("port", a.Config.Port).Info("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close libera las conexiones en orden inverso al de creación
func (a *App) Close() {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.WithError(err).Warn("failed to close event publisher")
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.WithError(err).Warn("failed to close cache")
		}
	}
	if a.Mongo != nil {
		_ = database.Close(context.Background(), a.Mongo, a.Logger)
	}
}
