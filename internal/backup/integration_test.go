package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/mood"
	"github.com/julianstephens/moodlog/internal/storage"
	"github.com/julianstephens/moodlog/internal/storage/sqlite"
)

// TestIntegrationResetAndRestore records moods through a real store, resets
// after a backup, then restores and checks the moods come back.
func TestIntegrationResetAndRestore(t *testing.T) {
	logger.InitDiscard()
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		file string
		open func(path string) storage.Provider
	}{
		{"sqlite", "moodlog.db", func(p string) storage.Provider { return sqlite.NewStore(p) }},
		{"json", "moodlog.json", func(p string) storage.Provider { return storage.NewJSONStore(p) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)

			store := tc.open(path)
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			svc := mood.NewService(store, mood.Options{Location: time.UTC})

			selected := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
			for _, label := range []string{"Happy", "Happy", "Tired"} {
				m, _ := models.LookupMood(label)
				if _, err := svc.Record(ctx, selected, m); err != nil {
					t.Fatalf("Record() failed: %v", err)
				}
			}

			mgr := NewManager(store.GetConfigPath())
			backupPath, err := mgr.CreateBackup()
			if err != nil {
				t.Fatalf("CreateBackup failed: %v", err)
			}

			if err := svc.Reset(ctx, constants.ResetScopeKey); err != nil {
				t.Fatalf("Reset() failed: %v", err)
			}
			if n := svc.Stats(ctx).Total(); n != 0 {
				t.Fatalf("Stats().Total() after reset = %d, want 0", n)
			}

			if err := store.Close(); err != nil {
				t.Fatalf("Close() failed: %v", err)
			}
			if _, err := mgr.RestoreBackup(backupPath); err != nil {
				t.Fatalf("RestoreBackup failed: %v", err)
			}

			store = tc.open(path)
			if err := store.Load(); err != nil {
				t.Fatalf("Load() after restore failed: %v", err)
			}
			defer store.Close()
			svc = mood.NewService(store, mood.Options{Location: time.UTC})

			stats := svc.Stats(ctx)
			if stats.Count("Happy") != 2 || stats.Count("Tired") != 1 {
				t.Errorf("Stats() after restore = %v, want Happy 2 Tired 1", stats.Map())
			}
		})
	}
}
