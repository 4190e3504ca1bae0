package domain

import (
	"math"
	"testing"
)

func TestPlaybackPosition_WatchProgress(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		duration float64
		want     float64
	}{
		{"mid video", 42.5, 300.0, 42.5 / 300.0},
		{"unknown duration", 42.5, 0, 0},
		{"position past duration clamps to 1", 310, 300, 1.0},
		{"start", 0, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlaybackPosition{Position: tt.position, Duration: tt.duration}
			got := p.WatchProgress()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WatchProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaybackPosition_IsPartiallyWatched(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		duration float64
		want     bool
	}{
		{"mid video", 120, 600, true},
		{"just started", 10, 600, false},
		{"almost done", 580, 600, false},
		{"exactly at threshold", 30, 600, false},
		{"just past threshold", 31, 600, true},
		{"short video fully inside margins", 20, 35, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlaybackPosition{Position: tt.position, Duration: tt.duration}
			if got := p.IsPartiallyWatched(); got != tt.want {
				t.Errorf("IsPartiallyWatched() position=%v duration=%v = %v, want %v",
					tt.position, tt.duration, got, tt.want)
			}
		})
	}
}

func TestValidOffsets(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		duration float64
		want     bool
	}{
		{"ordinary values", 42.5, 300, true},
		{"zero duration is allowed", 42.5, 0, true},
		{"negative position", -1, 300, false},
		{"negative duration", 10, -5, false},
		{"nan position", math.NaN(), 300, false},
		{"nan duration", 10, math.NaN(), false},
		{"infinite position", math.Inf(1), 300, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidOffsets(tt.position, tt.duration); got != tt.want {
				t.Errorf("ValidOffsets(%v, %v) = %v, want %v", tt.position, tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{75, "1:15"},
		{600, "10:00"},
		{3661, "1:01:01"},
		{7322.9, "2:02:02"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
