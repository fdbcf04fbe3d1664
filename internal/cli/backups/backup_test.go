package backups

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/moodlog/internal/backup"
	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/mood"
	"github.com/julianstephens/moodlog/internal/storage"
	"github.com/julianstephens/moodlog/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	logger.InitDiscard()

	dbPath := filepath.Join(t.TempDir(), "moodlog.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &cli.Context{
		Store: store,
		Mood:  mood.NewService(store, mood.Options{Location: time.UTC}),
	}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath := setupTestContext(t)
	bg := context.Background()

	happy, _ := models.LookupMood("Happy")
	if _, err := ctx.Mood.Record(bg, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), happy); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	mgr := backup.NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := ctx.Mood.Reset(bg, ""); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() after restore failed: %v", err)
	}
	if n := ctx.Mood.Stats(bg).Count("Happy"); n != 1 {
		t.Errorf("Happy count after restore = %d, want 1", n)
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	ctx.Confirm = func(string, string) (bool, error) { return false, nil }

	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore should not fail: %v", err)
	}
	if _, _, err := ctx.Store.GetItem(context.Background(), "moodData"); err != nil {
		t.Errorf("store should stay open after a cancelled restore: %v", err)
	}
}

func TestBackupRestoreMissing(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("restore of a missing backup should fail")
	}
}

func TestBackupUnsupportedStore(t *testing.T) {
	logger.InitDiscard()
	store := storage.NewMemoryStore()
	ctx := &cli.Context{Store: store}

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, backup.ErrUnsupported) {
		t.Errorf("backup create on memory store error = %v, want %v", err, backup.ErrUnsupported)
	}
	if err := (&BackupListCmd{}).Run(ctx); !errors.Is(err, backup.ErrUnsupported) {
		t.Errorf("backup list on memory store error = %v, want %v", err, backup.ErrUnsupported)
	}
}
