// Package app is the composition root for shelfscan.
//
// # Overview
//
// Setup loads the configuration, builds the catalog API client and an empty
// state.Store. The TUI and every CLI subcommand start from the same Services
// value, so they share one way of reaching the catalog service.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config.toml, .env and env overrides
//	       ├─────> catalogapi.NewClient() Create HTTP client
//	       ├─────> state.Store{}          Empty catalog, version 0
//	       ├─────> tea.LogToFile()        Redirect log output to the log file
//	       ├─────> prefs.Load()           Theme and sort key
//	       └─────> ui.Run()               Start TUI (blocks)
//
//	Inside the TUI:
//	┌─────────────────────────────────────────┐
//	│ Loader (tea.Cmd)                        │
//	│  └─> LoadCatalog() -> store.Replace()   │
//	│ r key (tea.Cmd)                         │
//	│  └─> refresh.Workflow.Run()             │
//	│      └─> store.Replace() on success     │
//	│ tick                                    │
//	│  └─> store.Snapshot() -> Model          │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Configuration and client construction errors are fatal and returned from Run.
// Catalog load and refresh failures are recorded on the store, logged and shown
// as toasts; the UI keeps running with whatever catalog it has.
package app
