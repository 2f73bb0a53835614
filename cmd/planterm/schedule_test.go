package main

import (
	"testing"

	"github.com/saessak-labs/planterm/internal/schedule"
)

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{
			name:  "millisecond timestamp",
			input: "1756339200000",
			want:  1756339200000,
		},
		{
			name:  "small id",
			input: "42",
			want:  42,
		},
		{
			name:    "not a number",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			input:   "123x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntryID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEntryID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseEntryID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseWeatherFlag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  schedule.WeatherType
		ok    bool
	}{
		{
			name:  "korean sunny",
			input: "맑음",
			want:  schedule.WeatherSunny,
			ok:    true,
		},
		{
			name:  "korean rainy",
			input: "비",
			want:  schedule.WeatherRainy,
			ok:    true,
		},
		{
			name:  "korean cloudy",
			input: "흐림",
			want:  schedule.WeatherCloudy,
			ok:    true,
		},
		{
			name:  "stored identifier",
			input: "sunny",
			want:  schedule.WeatherSunny,
			ok:    true,
		},
		{
			name:  "mixed case identifier",
			input: "Rainy",
			want:  schedule.WeatherRainy,
			ok:    true,
		},
		{
			name:  "unknown",
			input: "우박",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseWeatherFlag(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseWeatherFlag(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseWeatherFlag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
