package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodlog/internal/constants"
	apperrors "github.com/julianstephens/moodlog/internal/errors"
)

// Store holds every recorded entry partitioned by date. Every entry in
// Entries[date] has Date == date and partitions are append-only.
type Store struct {
	Version  int
	Revision string
	Entries  map[string][]MoodEntry
}

// envelope is the versioned on-disk layout of a Store
type envelope struct {
	Version  int                    `json:"version"`
	Revision string                 `json:"revision"`
	Entries  map[string][]MoodEntry `json:"entries"`
}

func NewStore() *Store {
	return &Store{
		Version: constants.SchemaVersionCurrent,
		Entries: make(map[string][]MoodEntry),
	}
}

// Append files an entry under its own date, creating the partition if needed
func (s *Store) Append(entry MoodEntry) {
	if s.Entries == nil {
		s.Entries = make(map[string][]MoodEntry)
	}
	s.Entries[entry.Date] = append(s.Entries[entry.Date], entry)
}

// Dates returns the partition keys in ascending order
func (s *Store) Dates() []string {
	dates := make([]string, 0, len(s.Entries))
	for d := range s.Entries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Len returns the total number of entries across all partitions
func (s *Store) Len() int {
	n := 0
	for _, entries := range s.Entries {
		n += len(entries)
	}
	return n
}

// DecodeStore parses a stored value. An empty value is an empty store. Both
// the current envelope and the legacy bare {date: [entry]} layout are
// accepted; legacy documents are migrated in memory.
func DecodeStore(raw string) (*Store, error) {
	if strings.TrimSpace(raw) == "" {
		return NewStore(), nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformed, err)
	}

	store := NewStore()
	if _, ok := top["version"]; ok {
		var env envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformed, err)
		}
		if env.Version > constants.SchemaVersionCurrent {
			return nil, fmt.Errorf("%w: schema version %d is newer than supported version %d",
				apperrors.ErrMalformed, env.Version, constants.SchemaVersionCurrent)
		}
		store.Revision = env.Revision
		if env.Entries != nil {
			store.Entries = env.Entries
		}
	} else {
		for date, partition := range top {
			var entries []MoodEntry
			if err := json.Unmarshal(partition, &entries); err != nil {
				return nil, fmt.Errorf("%w: partition %s: %v", apperrors.ErrMalformed, date, err)
			}
			store.Entries[date] = entries
		}
	}

	if err := store.normalize(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformed, err)
	}
	return store, nil
}

// normalize validates every partition, deriving a missing time category from the hour
func (s *Store) normalize() error {
	for date, entries := range s.Entries {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return fmt.Errorf("invalid partition date %q", date)
		}
		for i := range entries {
			if entries[i].TimeCategory == "" && entries[i].Hour >= 0 && entries[i].Hour <= 23 {
				entries[i].TimeCategory = TimeCategoryForHour(entries[i].Hour)
			}
			if err := entries[i].Validate(date); err != nil {
				return err
			}
		}
	}
	return nil
}

// EncodeStore serializes the store. A fresh revision is stamped on every
// encode. With legacy set, the bare {date: [entry]} layout is written instead
// of the envelope.
func EncodeStore(s *Store, legacy bool) (string, error) {
	entries := s.Entries
	if entries == nil {
		entries = map[string][]MoodEntry{}
	}

	var (
		data []byte
		err  error
	)
	if legacy {
		data, err = json.Marshal(entries)
	} else {
		s.Version = constants.SchemaVersionCurrent
		s.Revision = uuid.NewString()
		data, err = json.Marshal(envelope{
			Version:  s.Version,
			Revision: s.Revision,
			Entries:  entries,
		})
	}
	if err != nil {
		return "", fmt.Errorf("failed to serialize store: %w", err)
	}
	return string(data), nil
}
