package refresh

import "time"

// maxBackoff caps the delay between scrape status polls.
const maxBackoff = 30 * time.Second

// calculateBackoff returns base doubled once per prior attempt, capped at maxBackoff.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	if attempt <= 0 {
		return min(base, maxBackoff)
	}
	d := base
	for range attempt {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
