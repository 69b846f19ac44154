package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/models"
	"storefront/service"
)

const itemsPathPrefix = "/catalog/items/"

// CatalogController handles HTTP requests for browsing the catalog
type CatalogController struct {
	catalogService *service.CatalogService
	exporter       *service.CatalogExporter
	images         *service.ImageOptimizer
	logger         *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	catalogService *service.CatalogService,
	exporter *service.CatalogExporter,
	images *service.ImageOptimizer,
	logger *zap.Logger,
) *CatalogController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogController{
		catalogService: catalogService,
		exporter:       exporter,
		images:         images,
		logger:         logger,
	}
}

// categoryParam returns the category query parameter, ALL when absent
func categoryParam(r *http.Request) string {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		return catalog.CategoryAll
	}
	return category
}

// GetCatalog handles GET /catalog?category=ALL
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, c.catalogService.Catalog(categoryParam(r)))
}

// GetCategories handles GET /catalog/categories
func (c *CatalogController) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, catalog.Categories)
}

// Refresh handles POST /catalog/refresh
// Reloads the product records from the configured source
func (c *CatalogController) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.catalogService.Refresh(r.Context()); err != nil {
		c.logger.Error("catalog refresh failed", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to refresh catalog: %v", err), http.StatusBadGateway)
		return
	}

	items := c.catalogService.Items(catalog.CategoryAll)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"items":  len(items),
	})
}

// HandleItem dispatches the /catalog/items/{id}/{action} routes
func (c *CatalogController) HandleItem(w http.ResponseWriter, r *http.Request) {
	// Path format: /catalog/items/{id}/{action}
	path := strings.TrimPrefix(r.URL.Path, itemsPathPrefix)
	slash := strings.LastIndex(path, "/")
	if slash <= 0 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	itemID, action := path[:slash], path[slash+1:]

	switch action {
	case "variant":
		c.ChooseVariant(w, r, itemID)
	case "cart":
		c.AddToCart(w, r, itemID)
	case "image":
		c.GetImage(w, r, itemID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// ChooseVariant handles POST /catalog/items/{id}/variant
// Body: {"variantId": "..."}; returns the updated card view
func (c *CatalogController) ChooseVariant(w http.ResponseWriter, r *http.Request, itemID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ChooseVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	card, err := c.catalogService.ChooseVariant(itemID, req.VariantID)
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		http.Error(w, fmt.Sprintf("Item %s not found", itemID), http.StatusNotFound)
		return
	case errors.Is(err, service.ErrUnknownVariant):
		http.Error(w, fmt.Sprintf("Unknown variant %q for item %s", req.VariantID, itemID), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("Failed to choose variant: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// AddToCart handles POST /catalog/items/{id}/cart
func (c *CatalogController) AddToCart(w http.ResponseWriter, r *http.Request, itemID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := c.catalogService.AddToCart(r.Context(), itemID)
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		http.Error(w, fmt.Sprintf("Item %s not found", itemID), http.StatusNotFound)
		return
	case errors.Is(err, service.ErrUnavailable):
		http.Error(w, "Out of stock", http.StatusConflict)
		return
	case err != nil:
		c.logger.Error("add to cart failed", zap.String("item_id", itemID), zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to add to cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, payload)
}

// GetImage handles GET /catalog/items/{id}/image?size=thumb|medium
func (c *CatalogController) GetImage(w http.ResponseWriter, r *http.Request, itemID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	card, err := c.catalogService.Card(itemID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Item %s not found", itemID), http.StatusNotFound)
		return
	}

	size := r.URL.Query().Get("size")
	data, err := c.images.Optimized(r.Context(), card.Item.Image, size)
	if errors.Is(err, service.ErrNoImage) {
		http.Error(w, "Item has no image", http.StatusNotFound)
		return
	}
	if err != nil {
		c.logger.Warn("failed to optimize image", zap.String("item_id", itemID), zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to load image: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		c.logger.Warn("failed to write image response", zap.Error(err))
	}
}

// RenderCatalog handles GET /catalog/render?category=ALL
// Returns the HTML page that GeneratePDF prints
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	htmlContent, err := c.exporter.RenderHTML(categoryParam(r))
	if err != nil {
		c.logger.Error("failed to render catalog", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to render catalog: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		c.logger.Warn("failed to write HTML response", zap.Error(err))
	}
}

// DownloadPDF handles GET /catalog/pdf?category=ALL
func (c *CatalogController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := categoryParam(r)
	pdfData, err := c.exporter.GeneratePDF(r.Context(), category)
	if err != nil {
		c.logger.Error("failed to generate PDF", zap.String("category", category), zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("catalog_%s.pdf", sanitizeFilename(category))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		c.logger.Warn("failed to write PDF response", zap.Error(err))
	}
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}
