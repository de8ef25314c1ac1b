// Package config loads shelfscan's configuration file.
//
// # Overview
//
// Configuration is optional. Load reads ~/.config/shelfscan/config.toml (or the path
// given with --config), fills anything missing from defaults and then applies
// environment overrides. A missing file is not an error.
//
// # TOML Format
//
//	api_url = "127.0.0.1:8000"
//	request_timeout = "10s"
//	log_file = "~/.local/state/shelfscan/shelfscan.log"
//
//	[refresh]
//	mode = "poll"          # poll | settle
//	settle_delay = "3s"
//	poll_interval = "1s"
//	timeout = "2m"
//
// Durations use time.ParseDuration syntax and must be positive. Blank values fall
// back to defaults. Tilde paths are expanded.
//
// # Environment
//
// A .env file in the working directory is loaded with godotenv before the config is
// resolved; variables already set in the process win over the file.
//
//   - SHELFSCAN_API_URL overrides api_url
//   - SHELFSCAN_REFRESH_MODE overrides refresh.mode
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures
//   - File read errors other than os.ErrNotExist
//   - TOML parsing errors ("parse config: ...")
//   - Invalid durations or refresh modes, prefixed with the offending key
package config
