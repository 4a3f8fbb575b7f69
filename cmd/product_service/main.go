package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"

	"github.com/adaschool/product-service/internal/platform/config"
	"github.com/adaschool/product-service/internal/platform/database"
	"github.com/adaschool/product-service/internal/platform/health"
	"github.com/adaschool/product-service/internal/platform/logger"
	"github.com/adaschool/product-service/internal/platform/metrics"
	"github.com/adaschool/product-service/internal/platform/middleware"
	productAPI "github.com/adaschool/product-service/internal/product/api"
	productRepo "github.com/adaschool/product-service/internal/product/repository"
	productService "github.com/adaschool/product-service/internal/product/service"
)

func main() {
	// Load Config
	if err := config.LoadDotEnv(); err != nil {
		logger.Error("Failed to read .env file", err)
		os.Exit(1)
	}
	logCfg := config.LoadLogConfig()
	storeCfg := config.LoadStoreConfig()
	mongoCfg := config.LoadProductMongoConfig()
	serverCfg := config.LoadServerConfig("8080")
	healthCfg := config.LoadHealthConfig()

	// Setup Logger
	logger.Configure(logCfg.Level, logCfg.Format)
	logger.Info("Starting Product Service...")

	ctx := context.Background()
	shutdownOps := map[string]gfshutdown.Operation{}
	var closeStore gfshutdown.Operation

	// Setup Store
	var (
		prodRepository productRepo.ProductRepository
		pinger         health.Pinger
	)
	switch storeCfg.Backend {
	case config.StoreBackendMemory:
		logger.Warn("Using in-memory product store, data is lost on restart")
		prodRepository = productRepo.NewMemoryProductRepository()
		pinger = health.PingerFunc(func(context.Context) error { return nil })
	case config.StoreBackendMongo:
		client, err := database.Connect(ctx, mongoCfg)
		if err != nil {
			logger.Error("Failed to connect to database for Product Service", err)
			os.Exit(1)
		}
		closeStore = client.Disconnect

		coll := client.Database(mongoCfg.Database).Collection(mongoCfg.Collection)
		if err := productRepo.EnsureIndexes(ctx, coll); err != nil {
			logger.Warn("Could not ensure product indexes: %v", err)
		}
		prodRepository = productRepo.NewMongoProductRepository(coll, mongoCfg.QueryTimeout)
		pinger = database.Pinger{Client: client}
	default:
		logger.Error("Unknown STORE_BACKEND %q", nil, storeCfg.Backend)
		os.Exit(1)
	}

	monitor := health.NewMonitor(pinger)
	if err := monitor.Start(healthCfg.Schedule); err != nil {
		logger.Error("Failed to start store health monitor", err)
		os.Exit(1)
	}
	shutdownOps["health-monitor"] = monitor.Stop

	// Setup Dependencies
	prodService := productService.NewProductService(prodRepository)
	productHandler := productAPI.NewProductHandler(prodService)

	// Setup Gin Router
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), metrics.Middleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", monitor.Handler)

	apiV1 := router.Group("/v1")
	productHandler.RegisterRoutes(apiV1)

	srv := &http.Server{
		Addr:    serverCfg.Port,
		Handler: router,
	}
	// The store is closed only after in-flight requests have drained.
	shutdownOps["http-server"] = func(ctx context.Context) error {
		err := srv.Shutdown(ctx)
		if closeStore != nil {
			if cerr := closeStore(ctx); cerr != nil {
				logger.Error("Failed to disconnect from database", cerr)
			}
		}
		return err
	}

	go func() {
		logger.Info("Product Service running on port " + serverCfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to run Product Service server", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, serverCfg.ShutdownTimeout, shutdownOps)
	exitCode := <-wait
	logger.Info("Product Service exited with code %d", exitCode)
	os.Exit(exitCode)
}
