package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/config"
)

func newCatalogServer(t *testing.T, products []catalogapi.Product, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(products)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupAgainst(t *testing.T, url string) Services {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIURL, url)
	t.Setenv(config.EnvRefreshMode, "")

	svc, err := Setup(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	return svc
}

func silenceLog(t *testing.T) {
	t.Helper()
	prev := log.Writer()
	log.SetOutput(&strings.Builder{})
	t.Cleanup(func() { log.SetOutput(prev) })
}

func TestSetup_UsesEnvironmentURL(t *testing.T) {
	svc := setupAgainst(t, "http://catalog.test:9000")
	if got := svc.Client.BaseURL(); got != "http://catalog.test:9000" {
		t.Fatalf("BaseURL = %q, want env override", got)
	}
	if svc.Store == nil {
		t.Fatalf("Store is nil")
	}
	if !svc.Store.Catalog().Empty() {
		t.Fatalf("new store should start empty")
	}
}

func TestSetup_ReportsConfigErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[refresh]\nmode = \"webhook\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Setup(path)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Setup error = %v, want load config error", err)
	}
}

func TestLoadCatalog_InstallsProducts(t *testing.T) {
	silenceLog(t)
	server := newCatalogServer(t, []catalogapi.Product{
		{ID: 1, Name: "Galaxy A55", Brand: "Samsung", Store: "Jumia", Price: 420},
		{ID: 2, Name: "Redmi Note 13", Brand: "Xiaomi", Store: "Noon", Price: 250},
		{ID: 1, Name: "Galaxy A55 (dup)", Brand: "Samsung", Store: "Noon", Price: 410},
	}, http.StatusOK)
	svc := setupAgainst(t, server.URL)

	n, err := LoadCatalog(context.Background(), svc.Client, svc.Store)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("LoadCatalog count = %d, want 2 after dropping the duplicate id", n)
	}
	catalog := svc.Store.Catalog()
	if catalog.Version != 1 {
		t.Fatalf("Version = %d, want 1", catalog.Version)
	}
	if catalog.Products[0].Name != "Galaxy A55" {
		t.Fatalf("first product = %q, want the first occurrence kept", catalog.Products[0].Name)
	}
}

func TestLoadCatalog_FailureKeepsCatalogAndRecordsError(t *testing.T) {
	silenceLog(t)
	server := newCatalogServer(t, nil, http.StatusServiceUnavailable)
	svc := setupAgainst(t, server.URL)
	svc.Store.Replace([]catalogapi.Product{{ID: 9, Name: "Kept"}})

	if _, err := LoadCatalog(context.Background(), svc.Client, svc.Store); err == nil {
		t.Fatalf("LoadCatalog returned nil error, want failure")
	}

	snap := svc.Store.Snapshot()
	if snap.Catalog.Len() != 1 || snap.Catalog.Products[0].Name != "Kept" {
		t.Fatalf("catalog = %+v, want previous version kept", snap.Catalog)
	}
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot = %+v, want recorded failure", snap)
	}
}

func TestOpenLog_CreatesDirectoryAndPrefixesLines(t *testing.T) {
	prevOut, prevPrefix := log.Writer(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
	})

	path := filepath.Join(t.TempDir(), "nested", "shelfscan.log")
	f, err := openLog(path)
	if err != nil {
		t.Fatalf("openLog returned error: %v", err)
	}
	log.Printf("refresh[abc]: requesting scrape")
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "shelfscan ") || !strings.Contains(string(data), "refresh[abc]: requesting scrape") {
		t.Fatalf("log file = %q, want prefixed refresh line", data)
	}
}
