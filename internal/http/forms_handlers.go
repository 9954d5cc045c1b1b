package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/cart"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/forms"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

type feedbackRequest struct {
	Rating string `json:"rating"`
	Text   string `json:"text"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type quickAddRequest struct {
	Drink string `json:"drink"`
	Qty   int    `json:"qty"`
}

// writeFormError maps forms errors onto the JSON error payload.
func writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, forms.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, cart.ErrInvalidPrice):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, forms.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	default:
		obs.Logger.Error("form_request_failed", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func orderIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "index must be an integer")
		return 0, false
	}
	return idx, true
}

func (a *App) listSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Forms.Subscribers())
}

func (a *App) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var in subscribeRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := a.Forms.Subscribe(in.Email); err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.Forms.Subscribers())
}

func (a *App) listFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Forms.Feedback())
}

func (a *App) submitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var in feedbackRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := a.Forms.SubmitFeedback(in.Rating, in.Text)
	if err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (a *App) listContactsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Forms.Contacts())
}

func (a *App) sendContactHandler(w http.ResponseWriter, r *http.Request) {
	var in contactRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := a.Forms.SendContact(in.Name, in.Email, in.Message)
	if err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (a *App) listCustomOrdersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Forms.CustomOrders())
}

func (a *App) saveCustomOrderHandler(w http.ResponseWriter, r *http.Request) {
	var in forms.CustomOrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	o, err := a.Forms.SaveCustomOrder(in)
	if err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (a *App) deleteCustomOrderHandler(w http.ResponseWriter, r *http.Request) {
	idx, ok := orderIndex(w, r)
	if !ok {
		return
	}
	if err := a.Forms.DeleteCustomOrder(idx); err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Forms.CustomOrders())
}

func (a *App) customOrderToCartHandler(w http.ResponseWriter, r *http.Request) {
	idx, ok := orderIndex(w, r)
	if !ok {
		return
	}
	if err := a.Forms.AddCustomOrderToCart(idx); err != nil {
		writeFormError(w, err)
		return
	}
	a.writeCart(w, http.StatusOK)
}

func (a *App) quickAddHandler(w http.ResponseWriter, r *http.Request) {
	var in quickAddRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := a.Forms.QuickAddToCart(in.Drink, in.Qty); err != nil {
		writeFormError(w, err)
		return
	}
	a.writeCart(w, http.StatusOK)
}

func (a *App) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Notices.Active())
}

func (a *App) dismissNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "id must be a positive integer")
		return
	}
	if !a.Notices.Dismiss(id) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
