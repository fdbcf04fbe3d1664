package models

// MoodStats counts entries per label. Labels keep the order in which they
// were first seen so chart colours stay stable between views.
type MoodStats struct {
	labels []string
	counts map[string]int
}

type LabelCount struct {
	Label string
	Count int
}

func NewMoodStats() MoodStats {
	return MoodStats{counts: make(map[string]int)}
}

func (s *MoodStats) Add(label string) {
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
	if _, seen := s.counts[label]; !seen {
		s.labels = append(s.labels, label)
	}
	s.counts[label]++
}

// Count returns the count for label, 0 if it was never recorded
func (s MoodStats) Count(label string) int {
	return s.counts[label]
}

func (s MoodStats) Len() int {
	return len(s.labels)
}

func (s MoodStats) Total() int {
	total := 0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Items returns label counts in first-appearance order
func (s MoodStats) Items() []LabelCount {
	items := make([]LabelCount, 0, len(s.labels))
	for _, l := range s.labels {
		items = append(items, LabelCount{Label: l, Count: s.counts[l]})
	}
	return items
}

// Map returns a copy of the counts keyed by label
func (s MoodStats) Map() map[string]int {
	m := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		m[k] = v
	}
	return m
}

// Aggregate flattens every partition of the store and counts entries by
// label. Partitions are visited in ascending date order.
func Aggregate(store *Store) MoodStats {
	stats := NewMoodStats()
	if store == nil {
		return stats
	}
	for _, date := range store.Dates() {
		for _, entry := range store.Entries[date] {
			stats.Add(entry.Label)
		}
	}
	return stats
}
