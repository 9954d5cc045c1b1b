package forms

import (
	"strings"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/store"
)

// DefaultDrinkPrice is charged for drinks missing from the price list.
const DefaultDrinkPrice = 4.0

var drinkPrices = map[string]float64{
	"Americano":     3,
	"Cappuccino":    4,
	"Earl Grey":     3.25,
	"Mocha Frappe":  4.75,
	"Vanilla Latte": 4.5,
	"Cold Brew":     3.75,
}

// DrinkPrice returns the custom order price of drink.
func DrinkPrice(drink string) float64 {
	if p, ok := drinkPrices[drink]; ok {
		return p
	}
	return DefaultDrinkPrice
}

// CustomLineName is the cart line name used for a custom drink.
func CustomLineName(drink string) string {
	return drink + " (Custom)"
}

// CustomOrderInput is the submitted custom order form.
type CustomOrderInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Drink string `json:"drink"`
	Qty   int    `json:"qty"`
	Notes string `json:"notes"`
}

func (in CustomOrderInput) normalize() (model.CustomOrder, error) {
	o := model.CustomOrder{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Drink: strings.TrimSpace(in.Drink),
		Qty:   max(1, in.Qty),
		Notes: strings.TrimSpace(in.Notes),
	}
	switch {
	case o.Name == "":
		return o, fieldError("name", "is required")
	case o.Phone == "":
		return o, fieldError("phone", "is required")
	case o.Drink == "":
		return o, fieldError("drink", "is required")
	}
	return o, nil
}

// SaveCustomOrder appends a custom order.
func (s *Service) SaveCustomOrder(in CustomOrderInput) (model.CustomOrder, error) {
	o, err := in.normalize()
	if err != nil {
		return model.CustomOrder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := store.Load[[]model.CustomOrder](s.st, s.keys.CustomOrders, nil)
	store.Save(s.st, s.keys.CustomOrders, append(items, o))
	s.notify("Custom order saved.")
	return o, nil
}

// CustomOrders returns saved custom orders by position.
func (s *Service) CustomOrders() []model.CustomOrder {
	return orEmpty(store.Load[[]model.CustomOrder](s.st, s.keys.CustomOrders, nil))
}

// DeleteCustomOrder removes the order at index.
func (s *Service) DeleteCustomOrder(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.CustomOrders()
	if index < 0 || index >= len(items) {
		return ErrNotFound
	}
	items = append(items[:index], items[index+1:]...)
	store.Save(s.st, s.keys.CustomOrders, items)
	return nil
}

// AddCustomOrderToCart adds the saved order at index to the cart.
func (s *Service) AddCustomOrderToCart(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.CustomOrders()
	if index < 0 || index >= len(items) {
		return ErrNotFound
	}
	o := items[index]
	return s.cart.Add(CustomLineName(o.Drink), DrinkPrice(o.Drink), max(1, o.Qty))
}

// QuickAddToCart adds a custom drink to the cart without saving an order.
func (s *Service) QuickAddToCart(drink string, qty int) error {
	drink = strings.TrimSpace(drink)
	if drink == "" {
		return fieldError("drink", "is required")
	}
	return s.cart.Add(CustomLineName(drink), DrinkPrice(drink), max(1, qty))
}
