package activity

import (
	"regexp"
	"strings"
	"time"
)

// Prefix is the log prefix set for the TUI log file.
const Prefix = "shelfscan"

const stampLayout = "2006/01/02 15:04:05"

var runPattern = regexp.MustCompile(`^refresh\[([^\]]+)\]:\s*`)

// Entry is one parsed log line.
type Entry struct {
	Time    time.Time // zero when the line has no timestamp
	RunID   string    // set for refresh workflow lines
	Message string
	Raw     string
}

// IsRefresh reports whether the entry was written by a refresh run.
func (e Entry) IsRefresh() bool {
	return e.RunID != ""
}

// Parse splits a standard library log line into its timestamp and message.
// Lines that do not match are returned with only Message and Raw set.
func Parse(line string) Entry {
	e := Entry{Raw: line}
	rest := strings.TrimPrefix(line, Prefix+" ")

	if len(rest) >= len(stampLayout) {
		if ts, err := time.ParseInLocation(stampLayout, rest[:len(stampLayout)], time.Local); err == nil {
			e.Time = ts
			rest = strings.TrimPrefix(rest[len(stampLayout):], " ")
		}
	}

	if m := runPattern.FindStringSubmatch(rest); m != nil {
		e.RunID = m[1]
		rest = rest[len(m[0]):]
	}
	e.Message = rest
	return e
}

// Load tails the log at path and parses each line.
func Load(path string, maxLines int) ([]Entry, error) {
	lines, err := Tail(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}
