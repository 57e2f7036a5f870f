package timeparse

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "2018-10-27",
			want:  time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date and time",
			input: "2018-10-27 10:30:45",
			want:  time.Date(2018, 10, 27, 10, 30, 45, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset",
			input: "2018-10-27T10:00:00-07:00",
			want:  time.Date(2018, 10, 27, 17, 0, 0, 0, time.UTC),
		},
		{
			name:    "US format",
			input:   "10/27/2018",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "out of range",
			input:   "2018-13-45",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"hours", "12h", 12 * time.Hour, false},
		{"days short", "3d", 3 * day, false},
		{"days long", "1day", day, false},
		{"weeks", "2weeks", 14 * day, false},
		{"months", "6mo", 180 * day, false},
		{"years", "1y", 365 * day, false},
		{"unit case", "2W", 14 * day, false},
		{"whitespace", " 10h ", 10 * time.Hour, false},

		{"empty", "", 0, true},
		{"no unit", "123", 0, true},
		{"no number", "d", 0, true},
		{"minutes not supported", "5m", 0, true},
		{"negative", "-1d", 0, true},
		{"fractional", "1.5d", 0, true},
		{"combined", "1y2d", 0, true},
		{"overflow", "999999999999y", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAge(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAge(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAge(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQualifiers(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	if got, want := Since("created", time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", 3600))), "created:>=2024-01-02T02:04:05Z"; got != want {
		t.Errorf("Since() = %q, want %q", got, want)
	}
	if got, want := Within("pushed", 7*day, now), "pushed:>=2024-03-03T12:00:00Z"; got != want {
		t.Errorf("Within() = %q, want %q", got, want)
	}
}
