// Package refresh runs the user triggered "re-scrape and reload" workflow.
//
// # Overview
//
// A run has three phases and never skips one:
//
//	┌──────────────┐    ┌──────────────────────┐    ┌──────────────────┐
//	│ scrape       │───>│ wait                 │───>│ reload           │
//	│ POST /scrape │    │ poll /scrape/status  │    │ GET /products    │
//	│ X-Request-ID │    │ or fixed settle      │    │ store.Replace()  │
//	└──────────────┘    └──────────────────────┘    └──────────────────┘
//
// # Waiting
//
// In poll mode the scrape status endpoint is queried until it stops reporting
// "running". Delays between polls start at PollInterval and double up to 30s; the
// whole wait is bounded by Timeout. A backend without the status endpoint (404 or
// 405) gets the fixed SettleDelay instead. Settle mode always uses the fixed delay.
//
// # Failure Semantics
//
// Any phase failure leaves the store's catalog untouched and records the error on
// it. The returned error is a *PhaseError naming the phase. The Notifier sees every
// started run exactly once; a run rejected with ErrBusy is never started and is not
// reported.
//
// # Concurrency
//
// Run blocks for the whole workflow and is meant to be called from a goroutine (the
// UI wraps it in a tea.Cmd). The busy flag is the only backpressure; in-flight runs
// are not cancelled except through the parent context.
package refresh
