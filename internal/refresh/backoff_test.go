package refresh

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name    string
		attempt int
		want    time.Duration
	}{
		{"first poll", 0, 2 * time.Second},
		{"negative attempt", -1, 2 * time.Second},
		{"second poll", 1, 4 * time.Second},
		{"third poll", 2, 8 * time.Second},
		{"fourth poll", 3, 16 * time.Second},
		{"fifth poll capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many polls capped", 40, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.attempt, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.attempt, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	for _, base := range []time.Duration{time.Second, 2 * time.Second, time.Minute} {
		for attempt := 0; attempt <= 70; attempt++ {
			got := calculateBackoff(attempt, base)
			if got > maxBackoff {
				t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", attempt, base, got, maxBackoff)
			}
		}
	}
}
