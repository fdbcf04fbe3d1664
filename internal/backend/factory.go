package backend

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/moodlog/internal/config"
	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/keyring"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/storage"
	"github.com/julianstephens/moodlog/internal/storage/postgres"
	"github.com/julianstephens/moodlog/internal/storage/sqlite"
)

// Type identifies a storage backend
type Type string

const (
	MemoryBackend   Type = "memory"
	JSONBackend     Type = "json"
	SQLiteBackend   Type = "sqlite"
	PostgresBackend Type = "postgres"
)

// ErrNoConnectionString is returned when the postgres backend is selected
// without a connection string in the environment or keyring.
var ErrNoConnectionString = errors.New("no PostgreSQL connection string configured")

// Detect maps a storage target to the backend that serves it.
func Detect(target string) Type {
	t := strings.TrimSpace(target)
	switch {
	case t == constants.MemoryStorageName:
		return MemoryBackend
	case strings.EqualFold(t, "postgres"), strings.EqualFold(t, "postgresql"), postgres.IsConnString(t):
		return PostgresBackend
	case strings.HasSuffix(strings.ToLower(t), ".json"):
		return JSONBackend
	default:
		return SQLiteBackend
	}
}

// New builds the provider for target. It does not Init or Load it.
func New(target string) (storage.Provider, Type, error) {
	kind := Detect(target)

	switch kind {
	case MemoryBackend:
		logger.Debug("Using in-memory storage")
		return storage.NewMemoryStore(), kind, nil
	case JSONBackend:
		path := config.ExpandPath(target)
		logger.Debug("Using JSON storage", "path", path)
		return storage.NewJSONStore(path), kind, nil
	case PostgresBackend:
		connStr, err := resolveConnString(target)
		if err != nil {
			return nil, kind, err
		}
		logger.Debug("Using PostgreSQL storage")
		return postgres.New(connStr), kind, nil
	default:
		path := config.ExpandPath(target)
		logger.Debug("Using SQLite storage", "path", path)
		return sqlite.NewStore(path), kind, nil
	}
}

// resolveConnString picks the connection string for the postgres backend.
// A string given on the command line or in the config file must not carry a
// password; the environment and the keyring are the places for secrets.
func resolveConnString(target string) (string, error) {
	if postgres.IsConnString(target) {
		if _, err := postgres.ValidateConnString(target); err != nil {
			return "", err
		}
		return target, nil
	}

	if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
		return connStr, nil
	}

	connStr, err := keyring.GetConnectionString()
	if err == nil {
		return connStr, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: set %s or run '%s keyring set'",
			ErrNoConnectionString, constants.EnvDBConnection, constants.AppName)
	}
	return "", err
}
