// Package activity reads back shelfscan's own log file for the activity view.
//
// # Overview
//
// In TUI mode the standard logger writes to a file (see tea.LogToFile) with the
// "shelfscan" prefix and default log flags:
//
//	shelfscan 2026/10/15 09:12:03 refresh[5f1c...]: requesting scrape
//	shelfscan 2026/10/15 09:12:07 refresh[5f1c...]: catalog v3 installed with 212 products
//
// Tail extracts the last N lines with a single pass over the file using a ring
// buffer, so memory stays O(N) regardless of file size. Parse splits a line into
// its timestamp, refresh run id and message; lines in any other shape are kept
// verbatim as the message.
//
// # Error Handling
//
// A missing log file is not an error: the view simply shows no activity. Other
// I/O errors are returned wrapped.
package activity
