package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/promostore-backend/api/controllers"
	"github.com/angelmondragon/promostore-backend/api/middleware"
	"github.com/angelmondragon/promostore-backend/internal/cart"
	"github.com/angelmondragon/promostore-backend/internal/quotation"
	"github.com/angelmondragon/promostore-backend/pkg/config"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storagePinger controllers.Pinger,
	requestObserver middleware.RequestObserver,
	metricsHandler http.Handler,
	catalogReader controllers.CatalogReader,
	browseSessions controllers.BrowseSessions,
	cartService cart.Service,
	quotationService quotation.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(requestObserver),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, storagePinger, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(catalogReader))
			r.Get("/suppliers", controllers.CatalogSuppliers(catalogReader))
			r.Get("/price-range", controllers.CatalogPriceRange(catalogReader))
		})

		r.Get("/products", controllers.ProductList(catalogReader, logg))
		r.Get("/products/{productId}", controllers.ProductGet(catalogReader, logg))

		r.Route("/browse", func(r chi.Router) {
			r.Get("/", controllers.BrowseState(browseSessions, logg))
			r.Put("/", controllers.BrowseSubmit(browseSessions, catalogReader, logg))
			r.Delete("/", controllers.BrowseReset(browseSessions, catalogReader, logg))
			r.Post("/retry", controllers.BrowseRetry(browseSessions, logg))
		})

		r.Get("/cart", controllers.CartFetch(cartService, logg))
		r.Post("/cart/items", controllers.CartAddItem(cartService, logg))

		r.Get("/quotations/{productId}", controllers.QuotationDraft(quotationService, logg))
		r.Post("/quotations/{productId}", controllers.QuotationGenerate(quotationService, logg))
	})

	return r
}
