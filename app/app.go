package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storefront/app/controller"
	"storefront/app/router"
	"storefront/cart"
	"storefront/config"
	"storefront/db"
	"storefront/repository"
	"storefront/service"
)

// Initialize wires the services and registers the routes on mux.
// The returned CatalogService has already attempted its first load.
func Initialize(ctx context.Context, cfg *config.Config, mux *http.ServeMux, logger *zap.Logger) (*service.CatalogService, error) {
	source, err := newProductSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var store cart.Store
	if cfg.DatabaseURL != "" {
		// Initialize database connection
		if err := db.InitDB(ctx, cfg.DatabaseURL, logger); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store = repository.NewCartRepository(logger)
	} else {
		logger.Info("no database configured, keeping the cart in memory")
		store = cart.NewMemoryCart(logger)
	}

	catalogService := service.NewCatalogService(source, store, cfg.FetchTimeout, logger)

	exporter, err := service.NewCatalogExporter(catalogService, cfg.BaseURL, cfg.ChromePath, logger)
	if err != nil {
		return nil, err
	}

	images := service.NewImageOptimizer(cfg.ImageCacheDir, nil, logger)
	if err := images.EnsureCacheDir(); err != nil {
		return nil, err
	}

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService, exporter, images, logger),
		Cart:    controller.NewCartController(store, logger),
	}

	// Setup routes using standard http router
	router.SetupRoutes(mux, controllers)

	// A failed first load leaves an empty catalog; POST /catalog/refresh retries.
	if err := catalogService.Refresh(ctx); err != nil {
		logger.Warn("initial catalog load failed", zap.Error(err))
	}

	return catalogService, nil
}

func newProductSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.ProductSourceInterface, error) {
	switch cfg.ProductsSource {
	case config.SourceDrive:
		source, err := service.NewDriveProductSource(ctx, cfg.CredentialsPath, cfg.DriveProductsFileID, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize drive product source: %w", err)
		}
		return source, nil
	case config.SourceHTTP, "":
		return service.NewHTTPProductSource(cfg.ProductsURL, nil, logger), nil
	default:
		return nil, fmt.Errorf("unknown PRODUCTS_SOURCE %q", cfg.ProductsSource)
	}
}
