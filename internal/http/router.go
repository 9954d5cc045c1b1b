package httpapi

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID, WithLogging, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.Cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	r.Get("/cart", app.getCartHandler)
	r.Get("/checkout/last", app.lastCheckoutHandler)
	r.Get("/subscribers", app.listSubscribersHandler)
	r.Get("/feedback", app.listFeedbackHandler)
	r.Get("/contact", app.listContactsHandler)
	r.Get("/custom-orders", app.listCustomOrdersHandler)
	r.Get("/notifications", app.listNotificationsHandler)
	r.Delete("/notifications/{id}", app.dismissNotificationHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.rejectWhenClosing)
		r.Post("/cart/items", app.addCartItemHandler)
		r.Patch("/cart/items/{name}", app.changeQuantityHandler)
		r.Delete("/cart/items/{name}", app.removeCartItemHandler)
		r.Delete("/cart", app.clearCartHandler)
		r.Post("/cart/checkout", app.checkoutHandler)
		r.Post("/subscribers", app.subscribeHandler)
		r.Post("/feedback", app.submitFeedbackHandler)
		r.Post("/contact", app.sendContactHandler)
		r.Post("/custom-orders", app.saveCustomOrderHandler)
		r.Post("/custom-orders/quick-add", app.quickAddHandler)
		r.Delete("/custom-orders/{index}", app.deleteCustomOrderHandler)
		r.Post("/custom-orders/{index}/cart", app.customOrderToCartHandler)
	})

	r.Get("/healthz", app.healthHandler)
	r.Get("/debug/metrics", app.metricsHandler)
	r.Handle("/debug/vars", expvar.Handler())
	r.Get("/openapi.yaml", app.openapiHandler)
	r.Get("/docs", app.docsHandler)
	return r
}
