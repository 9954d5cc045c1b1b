package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/cart"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
)

type addItemRequest struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
	Qty   *int        `json:"qty,omitempty"`
}

type changeQuantityRequest struct {
	Delta *int `json:"delta"`
}

type checkoutResponse struct {
	CheckedOut bool            `json:"checked_out"`
	Checkout   *model.Checkout `json:"checkout,omitempty"`
	Cart       cart.Summary    `json:"cart"`
}

// parsePrice converts the numeric text of a price. Range checks happen in cart.Add.
func parsePrice(n json.Number) (float64, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, errors.New("price is required")
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("price must be numeric")
	}
	return p, nil
}

// lineName returns the {name} path parameter. chi matches against RawPath
// when it is set, so only then is the parameter still escaped.
func lineName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (a *App) writeCart(w http.ResponseWriter, status int) {
	writeJSON(w, status, cart.Summarize(a.Cart.Items()))
}

func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	a.writeCart(w, http.StatusOK)
}

func (a *App) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var in addItemRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	qty := 1
	if in.Qty != nil {
		qty = *in.Qty
	}
	if err := a.Cart.Add(name, price, qty); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	obs.Logger.Info("cart_item_added",
		"request_id", RequestIDFromContext(r.Context()),
		"name", name,
		"price", price,
		"qty", qty,
	)
	a.writeCart(w, http.StatusOK)
}

func (a *App) changeQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var in changeQuantityRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Delta == nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "delta is required")
		return
	}
	a.Cart.ChangeQuantity(lineName(r), *in.Delta)
	a.writeCart(w, http.StatusOK)
}

func (a *App) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	a.Cart.Remove(lineName(r))
	a.writeCart(w, http.StatusOK)
}

func (a *App) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	a.Cart.Clear()
	a.writeCart(w, http.StatusOK)
}

func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.Cart.Checkout()
	resp := checkoutResponse{CheckedOut: ok, Cart: cart.Summarize(a.Cart.Items())}
	if ok {
		resp.Checkout = &rec
		obs.Logger.Info("checkout_completed",
			"request_id", RequestIDFromContext(r.Context()),
			"lines", len(rec.Cart),
			"total", cart.FormatMoney(cart.Total(rec.Cart)),
		)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) lastCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.Cart.LastCheckout()
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "no checkout recorded")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
