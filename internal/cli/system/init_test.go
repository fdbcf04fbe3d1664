package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/config"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/mood"
	"github.com/julianstephens/moodlog/internal/storage"
	"github.com/julianstephens/moodlog/internal/storage/sqlite"
)

func newContext(store storage.Provider) *cli.Context {
	return &cli.Context{
		Store:  store,
		Config: config.Defaults(),
		Mood:   mood.NewService(store, mood.Options{Location: time.UTC}),
	}
}

func setupTestInitDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	logger.InitDiscard()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return newContext(store), dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	bg := context.Background()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if err := ctx.Store.SetItem(bg, "moodData", "{}"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}

	keys, err := ctx.Store.Keys(bg)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys after force init = %v, want none", keys)
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)
	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("force init with source equal to destination should fail")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	bg := context.Background()

	sourcePath := filepath.Join(t.TempDir(), "old.json")
	source := storage.NewJSONStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	if err := source.SetItem(bg, "moodData", `{"2024-05-01":[]}`); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}
	if err := source.SetItem(bg, "settings", "{}"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	value, ok, err := ctx.Store.GetItem(bg, "moodData")
	if err != nil || !ok || value != `{"2024-05-01":[]}` {
		t.Errorf("copied moodData = (%q, %v, %v)", value, ok, err)
	}
	if _, ok, _ := ctx.Store.GetItem(bg, "settings"); !ok {
		t.Error("settings key was not copied")
	}
}

func TestInitCmd_MemoryForceClears(t *testing.T) {
	logger.InitDiscard()
	store := storage.NewMemoryStore()
	ctx := newContext(store)
	bg := context.Background()

	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.SetItem(bg, "moodData", "{}"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if _, ok, _ := store.GetItem(bg, "moodData"); ok {
		t.Error("force init should clear a non-file store")
	}
}
