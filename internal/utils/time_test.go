package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty is local", "", false},
		{"Local keyword", "Local", false},
		{"UTC", "UTC", false},
		{"IANA zone", "America/New_York", false},
		{"invalid", "Not/AZone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Europe/Paris") {
		t.Error("ValidateTimezone(Europe/Paris) = false")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone(Mars/Olympus) = true")
	}
}

func TestResolveSelectedTime(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2024, 3, 10, 14, 25, 30, 0, loc)

	tests := []struct {
		name    string
		date    string
		at      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "defaults to now",
			want: now,
		},
		{
			name: "time of day today",
			at:   "08:15",
			want: time.Date(2024, 3, 10, 8, 15, 0, 0, loc),
		},
		{
			name: "date keeps current time of day",
			date: "2024-03-01",
			want: time.Date(2024, 3, 1, 14, 25, 30, 0, loc),
		},
		{
			name: "date and time",
			date: "2024-03-01",
			at:   "23:05",
			want: time.Date(2024, 3, 1, 23, 5, 0, 0, loc),
		},
		{
			name: "rfc3339 wins over date",
			date: "2024-03-01",
			at:   "2024-02-02T03:04:05Z",
			want: time.Date(2024, 2, 2, 3, 4, 5, 0, time.UTC),
		},
		{name: "bad time", at: "25:99", wantErr: true},
		{name: "bad date", date: "2024-13-40", wantErr: true},
		{name: "bad timestamp", at: "2024-02-02Tnope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSelectedTime(now, tt.date, tt.at, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSelectedTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveSelectedTime() = %v, want %v", got, tt.want)
			}
			if got.Location() != loc {
				t.Errorf("ResolveSelectedTime() location = %v, want %v", got.Location(), loc)
			}
		})
	}
}
