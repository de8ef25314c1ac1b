package catalogapi

import (
	"strings"
	"time"
)

// AvailabilityInStock is the availability value the stores use for stocked items.
const AvailabilityInStock = "In Stock"

const catalogTimestampLayout = "2006-01-02 15:04:05"

// Product mirrors one entry of /api/products.
type Product struct {
	ID           int64   `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Brand        string  `json:"brand" yaml:"brand"`
	Store        string  `json:"store" yaml:"store"`
	Price        float64 `json:"price" yaml:"price"`
	Rating       float64 `json:"rating" yaml:"rating"`
	Category     string  `json:"category" yaml:"category"`
	Availability string  `json:"availability" yaml:"availability"`
	Image        string  `json:"image,omitempty" yaml:"image,omitempty"`
	Link         string  `json:"link,omitempty" yaml:"link,omitempty"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	Timestamp    string  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// InStock reports whether the store lists the product as available.
func (p Product) InStock() bool {
	return strings.EqualFold(strings.TrimSpace(p.Availability), AvailabilityInStock)
}

// ScrapedAt returns the parsed scrape timestamp, or the zero time.
func (p Product) ScrapedAt() time.Time {
	return parseTime(p.Timestamp)
}

// Scrape job states reported by /api/scrape/status.
const (
	ScrapeIdle      = "idle"
	ScrapeRunning   = "running"
	ScrapeCompleted = "completed"
	ScrapeError     = "error"
)

// ScrapeStatus mirrors both the /api/scrape acknowledgement and /api/scrape/status.
type ScrapeStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ProductsCount int    `json:"products_count"`
}

// Running reports whether the scrape job is still working.
func (s ScrapeStatus) Running() bool {
	switch s.state() {
	case ScrapeIdle, ScrapeCompleted, ScrapeError:
		return false
	default:
		return true
	}
}

// Failed reports whether the scrape job ended in error.
func (s ScrapeStatus) Failed() bool {
	return s.state() == ScrapeError
}

func (s ScrapeStatus) state() string {
	return strings.ToLower(strings.TrimSpace(s.Status))
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(catalogTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
