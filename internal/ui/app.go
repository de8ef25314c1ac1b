package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfscan/shelfscan/internal/activity"
	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/prefs"
	"github.com/shelfscan/shelfscan/internal/query"
	"github.com/shelfscan/shelfscan/internal/refresh"
	"github.com/shelfscan/shelfscan/internal/selection"
	"github.com/shelfscan/shelfscan/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewDetail
	ViewActivity
)

// focusArea tracks which part of the browse view receives keys.
type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// Refresher runs the re-scrape workflow. *refresh.Workflow implements it.
type Refresher interface {
	Run(ctx context.Context) (refresh.Result, error)
	Busy() bool
}

// Loader installs the first catalog and reports how many products it holds.
type Loader func(ctx context.Context) (int, error)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Refresher Refresher
	Loader    Loader
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	Sort      query.SortKey
	PrefsPath string

	// Clipboard overrides the system clipboard writer (tests).
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	refresher Refresher
	loader    Loader
	logPath   string
	prefsPath string
	pollTick  time.Duration
	copyText  func(string) error
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	focus       focusArea
	width       int
	height      int
	ready       bool
	showHelp    bool
	showFilters bool

	// Data state
	snapshot state.Snapshot
	version  uint64
	options  query.Options
	stats    query.Stats

	// Query state
	filters query.State
	results []catalogapi.Product
	cursor  int
	offset  int

	// Search box
	input textinput.Model
	sel   selection.State

	// Detail state
	product        *catalogapi.Product
	similar        []catalogapi.Product
	detailViewport viewport.Model

	// Activity state
	activity         []activity.Entry
	activityErr      error
	activityViewport viewport.Model

	// Background work
	spinner    spinner.Model
	loading    bool
	refreshing bool
	toast      toast
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	filters := query.DefaultState()
	if opts.Sort != "" {
		filters.Sort = opts.Sort
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search products or brands..."
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		refresher:   opts.Refresher,
		loader:      opts.Loader,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		copyText:    copyText,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewBrowse,
		focus:       focusSearch,
		filters:     filters,
		results:     []catalogapi.Product{},
		input:       ti,
		sel:         selection.Closed(""),
		spinner:     sp,
		loading:     opts.Loader != nil,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		textinput.Blink,
		tickCmd(m.pollTick),
	}
	if m.loader != nil {
		cmds = append(cmds, m.spinner.Tick, loadCmd(m.ctx, m.loader))
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(min(m.width, DropdownWidth)-12, 10)
		m.clampCursor()
		m.updateDetailViewport()
		m.updateActivityViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.notify(toastError, "Could not load catalog: "+msg.err.Error())
		}
		return m, m.fetchSnapshot()

	case refreshDoneMsg:
		m.handleRefreshDone(msg)
		return m, m.fetchSnapshot()

	case activityMsg:
		m.activity = msg.entries
		m.activityErr = msg.err
		m.updateActivityViewport()
		m.activityViewport.GotoBottom()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notify(toastError, "Copy failed: "+msg.err.Error())
		} else {
			m.notify(toastSuccess, "Copied "+truncate(msg.text, 40))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input internals.
	if m.focus == focusSearch && m.currentView == ViewBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey routes keyboard input to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleResultsKey(msg)
}

// handleGlobalKey handles keys shared by every view outside the search box.
// The bool reports whether the key was consumed.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetailViewport()
		m.updateActivityViewport()
		return nil, true
	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh(), true
	case key.Matches(msg, m.keys.Activity):
		return m.openActivity(), true
	case key.Matches(msg, m.keys.Home):
		return m.home(), true
	}
	return nil, false
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.toast.expires.IsZero() && time.Now().After(m.toast.expires) {
		m.toast = toast{}
	}

	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if cmd := m.fetchSnapshot(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot installs a store snapshot. A new catalog version re-derives the
// results, the filter options and the open dropdown. Snapshot reads race each
// other, so an older catalog arriving late only contributes its status fields.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Catalog.Version < m.version {
		snap.Catalog = m.snapshot.Catalog
		snap.Loaded = m.snapshot.Loaded
	}
	m.snapshot = snap
	if snap.Catalog.Version == m.version {
		return
	}
	m.version = snap.Catalog.Version

	products := snap.Catalog.Products
	m.options = query.OptionsFor(products)
	m.stats = query.ComputeStats(products)
	m.recompute()
	m.dispatch(selection.CatalogReplaced{})

	if m.product != nil {
		for _, p := range products {
			if p.ID == m.product.ID {
				m.product = &p
				break
			}
		}
		m.similar = query.Similar(products, *m.product, SimilarLimit)
		m.updateDetailViewport()
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Sort: string(m.filters.Sort)}); err != nil {
		log.Printf("prefs: %v", err)
	}
}

func (m Model) fetchSnapshot() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return fetchSnapshotCmd(m.store)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewDetail:
		b.WriteString(m.renderDetail())
	case ViewActivity:
		b.WriteString(m.renderActivity())
	default:
		b.WriteString(m.renderBrowse())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// contentHeight is the number of rows between the command bar and the footer.
func (m Model) contentHeight() int {
	return max(m.height-3, 0)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type loadedMsg struct {
	count int
	err   error
}

type refreshDoneMsg struct {
	result refresh.Result
	err    error
}

type activityMsg struct {
	entries []activity.Entry
	err     error
}

type copiedMsg struct {
	text string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func loadCmd(ctx context.Context, load Loader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, LoadTimeout)
		defer cancel()
		n, err := load(ctx)
		return loadedMsg{count: n, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
