package forms

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/cart"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/store"
)

type fixture struct {
	st       *store.Memory
	cart     *cart.Manager
	svc      *Service
	messages []string
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{st: store.NewMemory(), now: time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)}
	keys := store.NewKeys("ccc")
	f.cart = cart.New(f.st, keys)
	clock := func() time.Time { return f.now }
	f.svc = New(f.st, keys, f.cart,
		WithClock(clock),
		WithNotifier(func(msg string) { f.messages = append(f.messages, msg) }),
	)
	return f
}

func TestSubscribeDeduplicates(t *testing.T) {
	f := newFixture(t)
	for _, e := range []string{"ana@example.com", " ana@example.com ", "bo@example.com"} {
		if err := f.svc.Subscribe(e); err != nil {
			t.Fatalf("subscribe %q: %v", e, err)
		}
	}
	got := f.svc.Subscribers()
	if len(got) != 2 || got[0] != "ana@example.com" || got[1] != "bo@example.com" {
		t.Fatalf("unexpected subscribers: %v", got)
	}
	if len(f.messages) != 3 || f.messages[0] != "Subscribed!" {
		t.Fatalf("unexpected messages: %v", f.messages)
	}
}

func TestSubscribeValidation(t *testing.T) {
	f := newFixture(t)
	for _, e := range []string{"", "   ", "not-an-email", "Ana <ana@example.com>"} {
		if err := f.svc.Subscribe(e); !errors.Is(err, ErrValidation) {
			t.Fatalf("subscribe %q: expected ErrValidation, got %v", e, err)
		}
	}
	if len(f.svc.Subscribers()) != 0 {
		t.Fatalf("invalid emails must not be stored")
	}
}

func TestFeedbackNewestFirst(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.SubmitFeedback("5", "Great latte"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.now = f.now.Add(time.Minute)
	e, err := f.svc.SubmitFeedback("3", "  Slow service ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if e.Text != "Slow service" || !e.TS.Equal(f.now) {
		t.Fatalf("unexpected entry: %+v", e)
	}
	got := f.svc.Feedback()
	if len(got) != 2 || got[0].Rating != "3" || got[1].Rating != "5" {
		t.Fatalf("expected newest first, got %+v", got)
	}
	stored := store.Load[[]model.Feedback](f.st, "ccc_feedback", nil)
	if stored[0].Rating != "5" {
		t.Fatalf("stored order must stay append order")
	}
}

func TestFeedbackRequiresFields(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.SubmitFeedback("", "text"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing rating")
	}
	if _, err := f.svc.SubmitFeedback("4", " "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing text")
	}
}

func TestSendContact(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.SendContact("Ana", "ana@example.com", "Open on Sunday?"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := f.svc.SendContact("Bo", "bo@example.com", "Hi"); err != nil {
		t.Fatalf("send: %v", err)
	}
	got := f.svc.Contacts()
	if len(got) != 2 || got[0].Name != "Ana" || !got[0].TS.Equal(f.now) {
		t.Fatalf("unexpected contacts: %+v", got)
	}
	if f.messages[len(f.messages)-1] != "Message sent!" {
		t.Fatalf("unexpected message %q", f.messages[len(f.messages)-1])
	}
}

func TestSendContactValidation(t *testing.T) {
	f := newFixture(t)
	cases := []struct{ name, email, msg string }{
		{"", "ana@example.com", "hi"},
		{"Ana", "", "hi"},
		{"Ana", "nope", "hi"},
		{"Ana", "ana@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := f.svc.SendContact(tc.name, tc.email, tc.msg); !errors.Is(err, ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", tc, err)
		}
	}
	if len(f.svc.Contacts()) != 0 {
		t.Fatalf("invalid contact stored")
	}
}

func TestCorruptListsReadEmpty(t *testing.T) {
	f := newFixture(t)
	_ = f.st.Set("ccc_subscribers", "oops")
	_ = f.st.Set("ccc_feedback", "[1,2")
	if got := f.svc.Subscribers(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty subscribers, got %v", got)
	}
	if got := f.svc.Feedback(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty feedback, got %v", got)
	}
	if err := f.svc.Subscribe("ana@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if got := f.svc.Subscribers(); len(got) != 1 {
		t.Fatalf("expected list to recover, got %v", got)
	}
}

// slowBackend widens the gap between reading and writing a slot.
type slowBackend struct {
	*store.Memory
}

func (b slowBackend) Get(key string) (string, bool, error) {
	v, ok, err := b.Memory.Get(key)
	time.Sleep(time.Millisecond)
	return v, ok, err
}

func TestConcurrentSubmissionsKeepEveryRecord(t *testing.T) {
	st := slowBackend{store.NewMemory()}
	keys := store.NewKeys("ccc")
	svc := New(st, keys, cart.New(st, keys))

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, 4*n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("guest%d@example.com", i)
			errs <- svc.Subscribe(email)
			_, err := svc.SubmitFeedback("5", fmt.Sprintf("visit %d", i))
			errs <- err
			_, err = svc.SendContact("Guest", email, "hello")
			errs <- err
			_, err = svc.SaveCustomOrder(CustomOrderInput{Name: "Guest", Phone: "1", Drink: "Americano", Qty: 1})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if got := len(svc.Subscribers()); got != n {
		t.Fatalf("subscribers: got %d want %d", got, n)
	}
	if got := len(svc.Feedback()); got != n {
		t.Fatalf("feedback: got %d want %d", got, n)
	}
	if got := len(svc.Contacts()); got != n {
		t.Fatalf("contacts: got %d want %d", got, n)
	}
	if got := len(svc.CustomOrders()); got != n {
		t.Fatalf("custom orders: got %d want %d", got, n)
	}
}
