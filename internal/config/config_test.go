package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shelfscan/shelfscan/internal/refresh"
)

// isolate points HOME and the working directory at temp dirs and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, key := range []string{EnvAPIURL, EnvRefreshMode} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("Unsetenv(%s): %v", key, err)
		}
	}
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	wantLog := filepath.Join(home, ".local", "state", "shelfscan", "shelfscan.log")
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	want := refresh.Options{Mode: refresh.ModePoll, SettleDelay: 3 * time.Second, PollInterval: time.Second, Timeout: 2 * time.Minute}
	if cfg.Refresh != want {
		t.Fatalf("Refresh = %+v, want %+v", cfg.Refresh, want)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := isolate(t)

	path := writeConfig(t, `
api_url = "  10.0.0.5:9999  "
request_timeout = "2s"
log_file = "  ~/logs/shelfscan.log  "

[refresh]
mode = "settle"
settle_delay = "500ms"
poll_interval = "250ms"
timeout = "45s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "10.0.0.5:9999" {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, "10.0.0.5:9999")
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) || !strings.HasSuffix(cfg.LogFile, "shelfscan.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	want := refresh.Options{Mode: refresh.ModeSettle, SettleDelay: 500 * time.Millisecond, PollInterval: 250 * time.Millisecond, Timeout: 45 * time.Second}
	if cfg.Refresh != want {
		t.Fatalf("Refresh = %+v, want %+v", cfg.Refresh, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
api_url = "   "
log_file = ""
[refresh]
mode = ""
timeout = " "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.Refresh.Mode != refresh.ModePoll || cfg.Refresh.Timeout != defaultRefreshTimeout {
		t.Fatalf("Refresh = %+v, want defaults", cfg.Refresh)
	}
}

func TestLoad_InvalidValuesNameTheKey(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid toml", `api_url = [`, "parse config"},
		{"bad duration", `request_timeout = "soon"`, "request_timeout"},
		{"negative duration", "[refresh]\npoll_interval = \"-1s\"", "refresh.poll_interval"},
		{"bad mode", "[refresh]\nmode = \"webhook\"", "refresh.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIURL, "http://catalog.internal:8080")
	t.Setenv(EnvRefreshMode, "settle")

	cfg, err := Load(writeConfig(t, `api_url = "127.0.0.1:1"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://catalog.internal:8080" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.Refresh.Mode != refresh.ModeSettle {
		t.Fatalf("Mode = %q, want settle", cfg.Refresh.Mode)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("SHELFSCAN_API_URL=dotenv.local:9000\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "dotenv.local:9000" {
		t.Fatalf("APIURL = %q, want value from .env", cfg.APIURL)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
