package mood

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
	apperrors "github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/storage"
)

type Options struct {
	// Key is the provider key holding the serialized store
	Key          string
	Location     *time.Location
	DateBasis    constants.DateBasis
	LegacyLayout bool
	Now          func() time.Time
}

// Service records entries into a single serialized store value and
// recomputes statistics from it on demand.
type Service struct {
	store  storage.Provider
	key    string
	loc    *time.Location
	basis  constants.DateBasis
	legacy bool
	now    func() time.Time

	// mu serializes read-modify-write cycles within this process
	mu sync.Mutex
}

func NewService(store storage.Provider, opts Options) *Service {
	s := &Service{
		store:  store,
		key:    opts.Key,
		loc:    opts.Location,
		basis:  opts.DateBasis,
		legacy: opts.LegacyLayout,
		now:    opts.Now,
	}
	if s.key == "" {
		s.key = constants.StorageKey
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.basis == "" {
		s.basis = constants.DefaultDateBasis
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Now returns the current time in the configured timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) Key() string {
	return s.key
}

// Record builds an entry for mood at the selected instant and appends it to
// the store. The write is committed with a compare-and-swap against the value
// that was read and retried when another writer got there first.
func (s *Service) Record(ctx context.Context, selected time.Time, mood models.MoodType) (models.MoodEntry, error) {
	canonical, ok := models.LookupMood(mood.Label)
	if !ok {
		return models.MoodEntry{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownMood, mood.Label)
	}
	entry := models.NewMoodEntry(selected, s.loc, s.basis, canonical)

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; attempt <= constants.MaxWriteAttempts; attempt++ {
		raw, present, err := s.store.GetItem(ctx, s.key)
		if err != nil {
			logger.Error("Failed to read mood data", "key", s.key, "error", err)
			return models.MoodEntry{}, &apperrors.StorageReadError{Key: s.key, Err: err}
		}

		current, err := models.DecodeStore(raw)
		if err != nil {
			logger.Error("Refusing to overwrite unreadable mood data", "key", s.key, "error", err)
			return models.MoodEntry{}, &apperrors.StorageReadError{Key: s.key, Err: err}
		}
		current.Append(entry)

		encoded, err := models.EncodeStore(current, s.legacy)
		if err != nil {
			logger.Error("Failed to encode mood data", "key", s.key, "error", err)
			return models.MoodEntry{}, &apperrors.StorageWriteError{Key: s.key, Err: err}
		}

		swapped, err := s.store.CompareAndSwap(ctx, s.key, raw, present, encoded)
		if err != nil {
			logger.Error("Failed to save mood data", "key", s.key, "error", err)
			return models.MoodEntry{}, &apperrors.StorageWriteError{Key: s.key, Err: err}
		}
		if swapped {
			logger.Info("Recorded mood",
				"label", entry.Label,
				"date", entry.Date,
				"hour", entry.Hour,
				"category", entry.TimeCategory,
			)
			return entry, nil
		}

		logger.Debug("Mood data changed during write, retrying", "key", s.key, "attempt", attempt)
	}

	logger.Error("Giving up on mood write after repeated conflicts", "key", s.key, "attempts", constants.MaxWriteAttempts)
	return models.MoodEntry{}, &apperrors.StorageWriteError{Key: s.key, Err: apperrors.ErrConflict}
}

// Load reads and decodes the store. A missing key is an empty store.
func (s *Service) Load(ctx context.Context) (*models.Store, error) {
	raw, _, err := s.store.GetItem(ctx, s.key)
	if err != nil {
		return nil, &apperrors.StorageReadError{Key: s.key, Err: err}
	}
	st, err := models.DecodeStore(raw)
	if err != nil {
		return nil, &apperrors.StorageReadError{Key: s.key, Err: err}
	}
	return st, nil
}

// Stats recomputes label counts over every recorded entry. Read or decode
// failures are logged and yield empty stats.
func (s *Service) Stats(ctx context.Context) models.MoodStats {
	st, err := s.Load(ctx)
	if err != nil {
		logger.Warn("Could not load mood data, showing empty stats", "error", err)
		return models.NewMoodStats()
	}
	return models.Aggregate(st)
}

// Entries returns the entries recorded under date, in insertion order.
func (s *Service) Entries(ctx context.Context, date string) ([]models.MoodEntry, error) {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return st.Entries[date], nil
}

// Reset clears persisted mood data. ResetScopeKey removes only the store
// key; ResetScopeAll clears the whole namespace. Resetting an empty store
// succeeds.
func (s *Service) Reset(ctx context.Context, scope constants.ResetScope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch scope {
	case constants.ResetScopeKey, "":
		err = s.store.RemoveItem(ctx, s.key)
	case constants.ResetScopeAll:
		err = s.store.Clear(ctx)
	default:
		return fmt.Errorf("unknown reset scope %q", scope)
	}
	if err != nil {
		logger.Error("Failed to reset mood data", "scope", scope, "error", err)
		return &apperrors.StorageWriteError{Key: s.key, Err: err}
	}

	logger.Info("Mood data reset", "scope", scope)
	return nil
}

// Confirmation is the feedback shown after a successful save.
func Confirmation(e models.MoodEntry) string {
	return fmt.Sprintf("Saved! Mood: %s (%s)", e.Label, e.TimeCategory)
}
