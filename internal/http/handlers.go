package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/cart"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/config"
	httpopenapi "github.com/fairyhunter13/coffee-storefront-simulator/internal/http/openapi"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/forms"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/notify"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
)

// App holds the storefront services behind the HTTP API.
type App struct {
	Cfg     config.Config
	Cart    *cart.Manager
	Forms   *forms.Service
	Notices *notify.Center

	closing atomic.Bool
	renders atomic.Uint64
	started time.Time
}

// NewApp wires cart renders and cart notifications into the app.
func NewApp(cfg config.Config, c *cart.Manager, f *forms.Service, n *notify.Center) *App {
	a := &App{Cfg: cfg, Cart: c, Forms: f, Notices: n, started: time.Now()}
	c.OnRender(a.onCartRender)
	c.OnNotify(func(msg string) { n.Push(msg) })
	return a
}

// StartShutdown stops accepting requests that write state.
func (a *App) StartShutdown() {
	a.closing.Store(true)
}

// Renders returns how many cart renders have happened.
func (a *App) Renders() uint64 { return a.renders.Load() }

func (a *App) onCartRender(items []model.LineItem) {
	a.renders.Add(1)
	s := cart.Summarize(items)
	obs.Logger.Debug("cart_rendered",
		"lines", len(s.Lines),
		"count", s.Count,
		"total", s.TotalDisplay,
	)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	s := cart.Summarize(a.Cart.Items())
	m := map[string]any{
		"cart_lines":           len(s.Lines),
		"cart_units":           s.Count,
		"cart_total":           s.Total,
		"cart_renders":         a.renders.Load(),
		"notifications_active": len(a.Notices.Active()),
		"subscribers":          len(a.Forms.Subscribers()),
		"custom_orders":        len(a.Forms.CustomOrders()),
		"uptime_sec":           time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Coffee Storefront API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
