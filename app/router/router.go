package router

import (
	"net/http"

	"storefront/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Cart    *controller.CartController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog routes
	mux.HandleFunc("/catalog", controllers.Catalog.GetCatalog)
	mux.HandleFunc("/catalog/categories", controllers.Catalog.GetCategories)
	mux.HandleFunc("/catalog/refresh", controllers.Catalog.Refresh)

	// HTML page used by the PDF export, and the export itself
	mux.HandleFunc("/catalog/render", controllers.Catalog.RenderCatalog)
	mux.HandleFunc("/catalog/pdf", controllers.Catalog.DownloadPDF)

	// Per-item actions: /catalog/items/{id}/variant, /cart and /image
	mux.HandleFunc("/catalog/items/", controllers.Catalog.HandleItem)

	// Cart routes
	mux.HandleFunc("/cart", controllers.Cart.GetCart)
}
