// Package forms stores visitor submissions: newsletter subscriptions, feedback,
// contact messages and custom drink orders.
package forms

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/cart"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/store"
)

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned for a custom order index outside the list.
	ErrNotFound = errors.New("not found")
)

func fieldError(field, problem string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, problem)
}

// Service reads and appends form records in a store.Backend.
type Service struct {
	st     store.Backend
	keys   store.Keys
	cart   *cart.Manager
	now    func() time.Time
	notify cart.NotifyFunc

	// mu serializes every load-modify-save of the form slots.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier sets where confirmation messages go.
func WithNotifier(fn cart.NotifyFunc) Option {
	return func(s *Service) { s.notify = fn }
}

// New creates a Service. Custom orders are added to c.
func New(st store.Backend, keys store.Keys, c *cart.Manager, opts ...Option) *Service {
	s := &Service{st: st, keys: keys, cart: c, now: time.Now, notify: func(string) {}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe adds email to the subscriber list unless it is already there.
func (s *Service) Subscribe(email string) error {
	email = strings.TrimSpace(email)
	if err := validEmail(email); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.Subscribers()
	if !slices.Contains(subs, email) {
		subs = append(subs, email)
	}
	store.Save(s.st, s.keys.Subscribers, subs)
	s.notify("Subscribed!")
	return nil
}

// Subscribers returns subscriber emails in signup order.
func (s *Service) Subscribers() []string {
	return orEmpty(store.Load[[]string](s.st, s.keys.Subscribers, nil))
}

// SubmitFeedback appends a rated comment.
func (s *Service) SubmitFeedback(rating, text string) (model.Feedback, error) {
	rating = strings.TrimSpace(rating)
	text = strings.TrimSpace(text)
	if rating == "" {
		return model.Feedback{}, fieldError("rating", "is required")
	}
	if text == "" {
		return model.Feedback{}, fieldError("text", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := model.Feedback{Rating: rating, Text: text, TS: s.now().UTC()}
	items := store.Load[[]model.Feedback](s.st, s.keys.Feedback, nil)
	store.Save(s.st, s.keys.Feedback, append(items, entry))
	s.notify("Thanks for your feedback!")
	return entry, nil
}

// Feedback returns feedback entries, newest first.
func (s *Service) Feedback() []model.Feedback {
	items := orEmpty(store.Load[[]model.Feedback](s.st, s.keys.Feedback, nil))
	slices.Reverse(items)
	return items
}

// SendContact appends a contact message.
func (s *Service) SendContact(name, email, message string) (model.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" {
		return model.ContactMessage{}, fieldError("name", "is required")
	}
	if err := validEmail(email); err != nil {
		return model.ContactMessage{}, err
	}
	if message == "" {
		return model.ContactMessage{}, fieldError("message", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := model.ContactMessage{Name: name, Email: email, Message: message, TS: s.now().UTC()}
	items := store.Load[[]model.ContactMessage](s.st, s.keys.Contacts, nil)
	store.Save(s.st, s.keys.Contacts, append(items, entry))
	s.notify("Message sent!")
	return entry, nil
}

// Contacts returns contact messages in the order they were sent.
func (s *Service) Contacts() []model.ContactMessage {
	return orEmpty(store.Load[[]model.ContactMessage](s.st, s.keys.Contacts, nil))
}

func validEmail(email string) error {
	if email == "" {
		return fieldError("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fieldError("email", "is not a valid address")
	}
	return nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
