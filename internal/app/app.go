package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfscan/shelfscan/internal/activity"
	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/config"
	"github.com/shelfscan/shelfscan/internal/prefs"
	"github.com/shelfscan/shelfscan/internal/query"
	"github.com/shelfscan/shelfscan/internal/refresh"
	"github.com/shelfscan/shelfscan/internal/state"
	"github.com/shelfscan/shelfscan/internal/ui"
)

// Options configure the shelfscan application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shelfscan/prefs.toml
}

// Services are the collaborators shared by the TUI and the CLI subcommands.
type Services struct {
	Config config.Config
	Client *catalogapi.Client
	Store  *state.Store
}

// Setup loads configuration and builds the catalog client and an empty store.
func Setup(configPath string) (Services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return Services{}, fmt.Errorf("load config: %w", err)
	}

	client, err := catalogapi.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return Services{}, fmt.Errorf("init catalog client: %w", err)
	}

	return Services{Config: cfg, Client: client, Store: &state.Store{}}, nil
}

// Workflow builds the refresh workflow over the services.
func (s Services) Workflow(notify refresh.Notifier) *refresh.Workflow {
	return refresh.New(s.Client, s.Store, s.Config.Refresh, notify)
}

// LoadCatalog fetches the product list and installs it as the next catalog
// version. Failures are recorded on the store, which keeps its catalog.
func LoadCatalog(ctx context.Context, source catalogapi.Source, store *state.Store) (int, error) {
	products, err := source.FetchProducts(ctx)
	if err != nil {
		store.RecordError(err)
		log.Printf("catalog load failed: %v", err)
		return 0, err
	}
	catalog, dropped := store.Replace(products)
	if dropped > 0 {
		log.Printf("catalog load: dropped %d products with duplicate ids", dropped)
	}
	log.Printf("catalog v%d loaded with %d products", catalog.Version, catalog.Len())
	return catalog.Len(), nil
}

// Run boots the shelfscan TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	svc, err := Setup(opts.ConfigPath)
	if err != nil {
		return err
	}

	logFile, err := openLog(svc.Config.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("prefs: %v", err)
		userPrefs = prefs.Defaults()
	}
	sortKey, err := query.ParseSortKey(userPrefs.Sort)
	if err != nil {
		log.Printf("prefs: %v", err)
		sortKey = query.SortName
	}

	log.Printf("shelfscan starting against %s", svc.Client.BaseURL())

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     svc.Store,
		Refresher: svc.Workflow(nil),
		Loader: func(ctx context.Context) (int, error) {
			return LoadCatalog(ctx, svc.Client, svc.Store)
		},
		LogPath:   svc.Config.LogFile,
		ThemeName: userPrefs.Theme,
		Sort:      sortKey,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// openLog redirects the standard logger to path so log lines do not corrupt
// the alternate screen. The activity view reads the same file back.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, activity.Prefix)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
