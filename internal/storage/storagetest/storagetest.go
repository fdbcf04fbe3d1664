// Package storagetest holds behaviour checks shared by every storage.Provider.
package storagetest

import (
	"context"
	"reflect"
	"testing"

	"github.com/julianstephens/moodlog/internal/storage"
)

// RunProviderTests exercises the Provider contract. newProvider must return an
// initialized, empty provider.
func RunProviderTests(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		p := newProvider(t)
		v, ok, err := p.GetItem(ctx, "moodData")
		if err != nil {
			t.Fatalf("GetItem() unexpected error: %v", err)
		}
		if ok || v != "" {
			t.Errorf("GetItem() = (%q, %v), want (\"\", false)", v, ok)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		p := newProvider(t)
		if err := p.SetItem(ctx, "moodData", `{"a":1}`); err != nil {
			t.Fatalf("SetItem() unexpected error: %v", err)
		}
		if err := p.SetItem(ctx, "moodData", `{"a":2}`); err != nil {
			t.Fatalf("SetItem() overwrite unexpected error: %v", err)
		}
		v, ok, err := p.GetItem(ctx, "moodData")
		if err != nil {
			t.Fatalf("GetItem() unexpected error: %v", err)
		}
		if !ok || v != `{"a":2}` {
			t.Errorf("GetItem() = (%q, %v), want ({\"a\":2}, true)", v, ok)
		}
	})

	t.Run("compare and swap", func(t *testing.T) {
		p := newProvider(t)

		swapped, err := p.CompareAndSwap(ctx, "k", "", false, "v1")
		if err != nil || !swapped {
			t.Fatalf("CompareAndSwap(absent) = (%v, %v), want (true, nil)", swapped, err)
		}

		swapped, err = p.CompareAndSwap(ctx, "k", "", false, "v2")
		if err != nil || swapped {
			t.Fatalf("CompareAndSwap(absent) on present key = (%v, %v), want (false, nil)", swapped, err)
		}

		swapped, err = p.CompareAndSwap(ctx, "k", "stale", true, "v2")
		if err != nil || swapped {
			t.Fatalf("CompareAndSwap(stale) = (%v, %v), want (false, nil)", swapped, err)
		}

		swapped, err = p.CompareAndSwap(ctx, "k", "v1", true, "v2")
		if err != nil || !swapped {
			t.Fatalf("CompareAndSwap(current) = (%v, %v), want (true, nil)", swapped, err)
		}

		v, _, _ := p.GetItem(ctx, "k")
		if v != "v2" {
			t.Errorf("value after swap = %q, want v2", v)
		}

		swapped, err = p.CompareAndSwap(ctx, "other", "x", true, "y")
		if err != nil || swapped {
			t.Errorf("CompareAndSwap(present) on absent key = (%v, %v), want (false, nil)", swapped, err)
		}
	})

	t.Run("remove item leaves other keys", func(t *testing.T) {
		p := newProvider(t)
		mustSet(t, p, "moodData", "x")
		mustSet(t, p, "theme", "dark")

		if err := p.RemoveItem(ctx, "moodData"); err != nil {
			t.Fatalf("RemoveItem() unexpected error: %v", err)
		}
		if err := p.RemoveItem(ctx, "moodData"); err != nil {
			t.Fatalf("RemoveItem() on missing key unexpected error: %v", err)
		}

		keys, err := p.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys() unexpected error: %v", err)
		}
		if !reflect.DeepEqual(keys, []string{"theme"}) {
			t.Errorf("Keys() = %v, want [theme]", keys)
		}
	})

	t.Run("clear", func(t *testing.T) {
		p := newProvider(t)
		mustSet(t, p, "moodData", "x")
		mustSet(t, p, "theme", "dark")

		for i := 0; i < 2; i++ {
			if err := p.Clear(ctx); err != nil {
				t.Fatalf("Clear() #%d unexpected error: %v", i+1, err)
			}
		}

		keys, err := p.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys() unexpected error: %v", err)
		}
		if len(keys) != 0 {
			t.Errorf("Keys() after Clear = %v, want none", keys)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		p := newProvider(t)
		mustSet(t, p, "b", "2")
		mustSet(t, p, "a", "1")
		mustSet(t, p, "c", "3")

		keys, err := p.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys() unexpected error: %v", err)
		}
		if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
			t.Errorf("Keys() = %v, want [a b c]", keys)
		}
	})

	t.Run("unicode values", func(t *testing.T) {
		p := newProvider(t)
		want := `{"emoji":"😄","label":"Happy"}`
		mustSet(t, p, "moodData", want)
		got, _, err := p.GetItem(ctx, "moodData")
		if err != nil {
			t.Fatalf("GetItem() unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("GetItem() = %q, want %q", got, want)
		}
	})
}

func mustSet(t *testing.T, p storage.Provider, key, value string) {
	t.Helper()
	if err := p.SetItem(context.Background(), key, value); err != nil {
		t.Fatalf("SetItem(%q) unexpected error: %v", key, err)
	}
}
