package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/moodlog/internal/storage"
	"github.com/julianstephens/moodlog/internal/storage/storagetest"
)

func TestMemoryStoreProvider(t *testing.T) {
	storagetest.RunProviderTests(t, func(t *testing.T) storage.Provider {
		s := storage.NewMemoryStore()
		if err := s.Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}
		return s
	})
}

func TestMemoryStoreNotLoaded(t *testing.T) {
	s := storage.NewMemoryStore()
	if _, _, err := s.GetItem(context.Background(), "k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("GetItem() before Init error = %v, want ErrNotLoaded", err)
	}
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	s := storage.NewMemoryStore()
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SetItem(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Errorf("SetItem() with canceled context error = %v, want context.Canceled", err)
	}
}
