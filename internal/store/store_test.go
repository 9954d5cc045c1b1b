package store

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type record struct {
	Name string   `json:"name"`
	Qty  int      `json:"qty"`
	Tags []string `json:"tags"`
}

type brokenBackend struct{ err error }

func (b brokenBackend) Get(string) (string, bool, error) { return "", false, b.err }
func (b brokenBackend) Set(string, string) error        { return b.err }

func TestLoadReturnsFallbackWhenAbsent(t *testing.T) {
	s := NewMemory()
	got := Load(s, "missing", []string{"fallback"})
	if !reflect.DeepEqual(got, []string{"fallback"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := NewMemory()
	want := []record{{Name: "Latte", Qty: 3, Tags: []string{"hot"}}, {Name: "Cold Brew", Qty: 1}}
	Save(s, "k", want)
	for i := 0; i < 3; i++ {
		got := Load[[]record](s, "k", nil)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("read %d: got %+v want %+v", i, got, want)
		}
	}
}

func TestLoadCorruptRecordFallsBack(t *testing.T) {
	cases := []struct {
		name, raw string
	}{
		{"not_json", "{{not json"},
		{"wrong_shape", `{"name":"Latte"}`},
		{"truncated", `[{"name":"Latte","qty":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemory()
			_ = s.Set("k", tc.raw)
			got := Load(s, "k", []record{})
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty fallback, got %+v", got)
			}
		})
	}
}

func TestLoadEmptyStringIsAbsent(t *testing.T) {
	s := NewMemory()
	_ = s.Set("k", "")
	if got := Load(s, "k", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestUnavailableBackendIsAbsorbed(t *testing.T) {
	b := brokenBackend{err: errors.New("storage disabled")}
	Save(b, "k", []string{"a"})
	if got := Load(b, "k", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSaveUnencodableValueKeepsPrevious(t *testing.T) {
	s := NewMemory()
	Save(s, "k", 1.5)
	Save(s, "k", make(chan int))
	if got := Load(s, "k", 0.0); got != 1.5 {
		t.Fatalf("expected previous value, got %v", got)
	}
}

func TestMemoryDelete(t *testing.T) {
	s := NewMemory()
	Save(s, "k", []int{1})
	s.Delete("k")
	if _, ok, _ := s.Get("k"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryConcurrentSets(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			Save(s, "k", i)
			_ = Load(s, "k", -1)
		}()
	}
	wg.Wait()
	if got := Load(s, "k", -1); got < 0 || got >= 100 {
		t.Fatalf("unexpected final value %d", got)
	}
}

func TestNewKeys(t *testing.T) {
	k := NewKeys("ccc")
	if k.Cart != "ccc_cart" || k.CustomOrders != "ccc_custom_orders" || k.LastCheckout != "ccc_last_checkout" {
		t.Fatalf("unexpected keys: %+v", k)
	}
}
