package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/moodlog/internal/constants"
	apperrors "github.com/julianstephens/moodlog/internal/errors"
)

func entry(label string, hour int, date string) MoodEntry {
	return MoodEntry{
		Emoji:        EmojiFor(label),
		Label:        label,
		Hour:         hour,
		TimeCategory: TimeCategoryForHour(hour),
		Date:         date,
	}
}

func TestDecodeStoreEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "{}", "null"} {
		store, err := DecodeStore(raw)
		if err != nil {
			t.Fatalf("DecodeStore(%q) unexpected error: %v", raw, err)
		}
		if store.Len() != 0 {
			t.Errorf("DecodeStore(%q) has %d entries, want 0", raw, store.Len())
		}
	}
}

func TestDecodeStoreLegacyLayout(t *testing.T) {
	raw := `{"2024-01-01":[{"emoji":"😄","label":"Happy","hour":9,"timeCategory":"Morning","date":"2024-01-01"}],` +
		`"2024-01-02":[{"emoji":"😢","label":"Sad","hour":22,"timeCategory":"Night","date":"2024-01-02"}]}`

	store, err := DecodeStore(raw)
	if err != nil {
		t.Fatalf("DecodeStore() unexpected error: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
	if store.Version != constants.SchemaVersionCurrent {
		t.Errorf("Version = %d, want %d", store.Version, constants.SchemaVersionCurrent)
	}
	if got := store.Entries["2024-01-02"][0].Label; got != "Sad" {
		t.Errorf("entry label = %s, want Sad", got)
	}
}

func TestDecodeStoreDerivesMissingCategory(t *testing.T) {
	raw := `{"2024-01-01":[{"emoji":"😄","label":"Happy","hour":18,"date":"2024-01-01"}]}`
	store, err := DecodeStore(raw)
	if err != nil {
		t.Fatalf("DecodeStore() unexpected error: %v", err)
	}
	if got := store.Entries["2024-01-01"][0].TimeCategory; got != Evening {
		t.Errorf("TimeCategory = %s, want Evening", got)
	}
}

func TestDecodeStoreRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "definitely not json"},
		{name: "array", raw: `[1,2,3]`},
		{name: "partition not a list", raw: `{"2024-01-01":"oops"}`},
		{name: "bad partition date", raw: `{"yesterday":[]}`},
		{name: "date mismatch", raw: `{"2024-01-01":[{"emoji":"😄","label":"Happy","hour":9,"timeCategory":"Morning","date":"2024-01-02"}]}`},
		{name: "hour out of range", raw: `{"2024-01-01":[{"emoji":"😄","label":"Happy","hour":24,"timeCategory":"Night","date":"2024-01-01"}]}`},
		{name: "unknown category", raw: `{"2024-01-01":[{"emoji":"😄","label":"Happy","hour":9,"timeCategory":"Brunch","date":"2024-01-01"}]}`},
		{name: "empty label", raw: `{"2024-01-01":[{"emoji":"😄","label":"","hour":9,"timeCategory":"Morning","date":"2024-01-01"}]}`},
		{name: "future schema", raw: `{"version":99,"revision":"x","entries":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStore(tt.raw)
			if !errors.Is(err, apperrors.ErrMalformed) {
				t.Errorf("DecodeStore() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestEncodeDecodeEnvelope(t *testing.T) {
	store := NewStore()
	store.Append(entry("Happy", 9, "2024-01-01"))
	store.Append(entry("Happy", 13, "2024-01-01"))

	raw, err := EncodeStore(store, false)
	if err != nil {
		t.Fatalf("EncodeStore() unexpected error: %v", err)
	}
	if store.Revision == "" {
		t.Error("EncodeStore() did not stamp a revision")
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("encoded value is not json: %v", err)
	}
	for _, key := range []string{"version", "revision", "entries"} {
		if _, ok := env[key]; !ok {
			t.Errorf("encoded envelope missing %q", key)
		}
	}

	decoded, err := DecodeStore(raw)
	if err != nil {
		t.Fatalf("DecodeStore() unexpected error: %v", err)
	}
	if decoded.Revision != store.Revision {
		t.Errorf("Revision = %s, want %s", decoded.Revision, store.Revision)
	}
	got := decoded.Entries["2024-01-01"]
	if len(got) != 2 || got[0].Hour != 9 || got[1].Hour != 13 {
		t.Errorf("partition order not preserved: %+v", got)
	}
}

func TestEncodeRevisionChangesEveryWrite(t *testing.T) {
	store := NewStore()
	if _, err := EncodeStore(store, false); err != nil {
		t.Fatal(err)
	}
	first := store.Revision
	if _, err := EncodeStore(store, false); err != nil {
		t.Fatal(err)
	}
	if store.Revision == first {
		t.Error("revision did not change between writes")
	}
}

func TestEncodeLegacyLayout(t *testing.T) {
	store := NewStore()
	store.Append(entry("Sad", 22, "2024-01-01"))

	raw, err := EncodeStore(store, true)
	if err != nil {
		t.Fatalf("EncodeStore() unexpected error: %v", err)
	}
	if strings.Contains(raw, `"version"`) {
		t.Errorf("legacy layout should not contain an envelope: %s", raw)
	}
	want := `{"2024-01-01":[{"emoji":"😢","label":"Sad","hour":22,"timeCategory":"Night","date":"2024-01-01"}]}`
	if raw != want {
		t.Errorf("EncodeStore() = %s, want %s", raw, want)
	}
}

func TestAggregate(t *testing.T) {
	store := NewStore()
	store.Append(entry("Sad", 22, "2024-01-02"))
	store.Append(entry("Happy", 9, "2024-01-01"))
	store.Append(entry("Sad", 13, "2024-01-03"))

	stats := Aggregate(store)
	if stats.Count("Sad") != 2 || stats.Count("Happy") != 1 {
		t.Errorf("unexpected counts: %v", stats.Map())
	}
	if stats.Count("Angry") != 0 {
		t.Errorf("Count(Angry) = %d, want 0", stats.Count("Angry"))
	}
	if stats.Total() != 3 {
		t.Errorf("Total() = %d, want 3", stats.Total())
	}

	// First appearance follows ascending date order
	items := stats.Items()
	if len(items) != 2 || items[0].Label != "Happy" || items[1].Label != "Sad" {
		t.Errorf("Items() order = %+v, want Happy then Sad", items)
	}
}

func TestAggregateNilStore(t *testing.T) {
	stats := Aggregate(nil)
	if stats.Len() != 0 || len(stats.Map()) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", stats.Map())
	}
}
