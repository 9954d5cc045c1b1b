// Package cart manages the shopping cart persisted in a store.Backend.
//
// Every read goes to the backend; the Manager keeps no cart copy of its own.
// Each mutation loads the cart, changes it, saves it and then calls every
// render listener once with the new contents.
package cart

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/store"
)

// ErrInvalidPrice is returned by Add for NaN, infinite or negative prices.
var ErrInvalidPrice = errors.New("price must be a finite non-negative number")

// RenderFunc receives the cart after every mutation. It must not mutate the cart.
type RenderFunc func(items []model.LineItem)

// NotifyFunc receives short confirmation messages such as "Added: Latte".
type NotifyFunc func(message string)

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used for checkout timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager is the single writer of the cart slot.
type Manager struct {
	st   store.Backend
	keys store.Keys
	now  func() time.Time

	// mu serializes mutations; listeners run while it is held.
	mu sync.Mutex

	lmu       sync.Mutex
	nextID    int
	renderers map[int]RenderFunc
	notifiers map[int]NotifyFunc
}

// New creates a Manager over st using the cart and checkout slots in keys.
func New(st store.Backend, keys store.Keys, opts ...Option) *Manager {
	m := &Manager{
		st:        st,
		keys:      keys,
		now:       time.Now,
		renderers: make(map[int]RenderFunc),
		notifiers: make(map[int]NotifyFunc),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// OnRender registers fn and returns a function that removes it.
func (m *Manager) OnRender(fn RenderFunc) func() {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	id := m.nextID
	m.nextID++
	m.renderers[id] = fn
	return func() {
		m.lmu.Lock()
		delete(m.renderers, id)
		m.lmu.Unlock()
	}
}

// OnNotify registers fn and returns a function that removes it.
func (m *Manager) OnNotify(fn NotifyFunc) func() {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	id := m.nextID
	m.nextID++
	m.notifiers[id] = fn
	return func() {
		m.lmu.Lock()
		delete(m.notifiers, id)
		m.lmu.Unlock()
	}
}

// Items returns the persisted cart. Unreadable or corrupt data reads as empty.
func (m *Manager) Items() []model.LineItem {
	items := store.Load[[]model.LineItem](m.st, m.keys.Cart, nil)
	if items == nil {
		return []model.LineItem{}
	}
	return items
}

// Add puts qty units of name into the cart. An existing line keeps its
// position and unit price and only gains quantity. qty below 1 means 1.
func (m *Manager) Add(name string, price float64, qty int) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return ErrInvalidPrice
	}
	if qty < 1 {
		qty = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.Items()
	merged := false
	for i := range items {
		if items[i].Name == name {
			items[i].Qty = addQty(items[i].Qty, qty)
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, model.LineItem{Name: name, Price: price, Qty: qty})
	}
	m.commit(items)
	m.notify("Added: " + name)
	return nil
}

// Remove drops the line for name. Missing names leave the cart unchanged.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.Items()
	kept := items[:0]
	for _, it := range items {
		if it.Name != name {
			kept = append(kept, it)
		}
	}
	m.commit(kept)
}

// ChangeQuantity adds delta to the quantity of name, never going below 1.
// Quantities saturate at math.MaxInt.
func (m *Manager) ChangeQuantity(name string, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.Items()
	for i := range items {
		if items[i].Name == name {
			items[i].Qty = max(1, addQty(items[i].Qty, delta))
		}
	}
	m.commit(items)
}

// addQty returns a+b clamped to the int range.
func addQty(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commit([]model.LineItem{})
}

// Total is the sum of price times quantity over the persisted cart.
func (m *Manager) Total() float64 {
	return Total(m.Items())
}

// Total is the sum of price times quantity over items.
func Total(items []model.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Qty)
	}
	return sum
}

// Checkout records the current cart as the last checkout and empties it.
// It reports false and does nothing when the cart is empty.
func (m *Manager) Checkout() (model.Checkout, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.Items()
	if len(items) == 0 {
		return model.Checkout{}, false
	}
	rec := model.Checkout{When: m.now().UTC(), Cart: items}
	store.Save(m.st, m.keys.LastCheckout, rec)
	m.commit([]model.LineItem{})
	obs.Logger.Info("cart_checked_out", "lines", len(items), "total", Total(items))
	m.notify("Thanks! Your order was received.")
	return rec, true
}

// LastCheckout returns the most recent checkout record, if any.
func (m *Manager) LastCheckout() (model.Checkout, bool) {
	rec := store.Load(m.st, m.keys.LastCheckout, model.Checkout{})
	if rec.When.IsZero() {
		return model.Checkout{}, false
	}
	if rec.Cart == nil {
		rec.Cart = []model.LineItem{}
	}
	return rec, true
}

// Render calls every render listener with the persisted cart. It is used once
// at startup so listeners show restored state.
func (m *Manager) Render() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.render(m.Items())
}

func (m *Manager) commit(items []model.LineItem) {
	store.Save(m.st, m.keys.Cart, items)
	m.render(items)
}

func (m *Manager) render(items []model.LineItem) {
	m.lmu.Lock()
	fns := make([]RenderFunc, 0, len(m.renderers))
	for _, fn := range m.renderers {
		fns = append(fns, fn)
	}
	m.lmu.Unlock()
	for _, fn := range fns {
		view := make([]model.LineItem, len(items))
		copy(view, items)
		fn(view)
	}
}

func (m *Manager) notify(message string) {
	m.lmu.Lock()
	fns := make([]NotifyFunc, 0, len(m.notifiers))
	for _, fn := range m.notifiers {
		fns = append(fns, fn)
	}
	m.lmu.Unlock()
	for _, fn := range fns {
		fn(message)
	}
}
