package refresh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/state"
)

// ErrBusy is returned by Run while another run is in flight.
var ErrBusy = errors.New("refresh already in progress")

// Mode selects how the workflow waits for the scrape job.
type Mode string

const (
	// ModePoll polls the scrape status endpoint until the job finishes.
	ModePoll Mode = "poll"
	// ModeSettle waits a fixed delay after the scrape is acknowledged.
	ModeSettle Mode = "settle"
)

// ParseMode validates s. An empty string yields ModePoll.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModePoll, nil
	case ModePoll, ModeSettle:
		return m, nil
	default:
		return "", fmt.Errorf("unknown refresh mode %q (want poll or settle)", s)
	}
}

const (
	defaultSettleDelay  = 3 * time.Second
	defaultPollInterval = time.Second
	defaultTimeout      = 2 * time.Minute
)

// Options tune the wait phase. Zero values use defaults.
type Options struct {
	Mode         Mode
	SettleDelay  time.Duration
	PollInterval time.Duration
	Timeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModePoll
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = defaultSettleDelay
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// Phase names a step of a refresh run.
type Phase string

const (
	PhaseScrape Phase = "scrape"
	PhaseWait   Phase = "wait"
	PhaseReload Phase = "reload"
)

// PhaseError reports which phase of a run failed.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("refresh %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Result describes a successful run.
type Result struct {
	RunID   string
	Count   int
	Version uint64
	Dropped int // duplicate ids discarded from the reload
}

// Outcome is delivered to the Notifier once per started run. Err is nil on
// success and a *PhaseError otherwise.
type Outcome struct {
	Result Result
	Err    error
}

// Notifier receives run outcomes.
type Notifier func(Outcome)

// Workflow requests a re-scrape, waits for it and installs the reloaded catalog.
type Workflow struct {
	source catalogapi.Source
	store  *state.Store
	opts   Options
	notify Notifier

	busy atomic.Bool

	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// New builds a workflow. notify may be nil.
func New(source catalogapi.Source, store *state.Store, opts Options, notify Notifier) *Workflow {
	return &Workflow{
		source: source,
		store:  store,
		opts:   opts.withDefaults(),
		notify: notify,
		sleep:  sleepContext,
		newID:  uuid.NewString,
	}
}

// Busy reports whether a run is in flight.
func (w *Workflow) Busy() bool {
	return w.busy.Load()
}

// Run performs one refresh. Concurrent calls return ErrBusy without notifying.
// On failure the store keeps its catalog and records the error.
func (w *Workflow) Run(ctx context.Context) (Result, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer w.busy.Store(false)

	runID := w.newID()
	res, err := w.run(ctx, runID)
	if err != nil {
		log.Printf("refresh[%s]: %v", runID, err)
		w.store.RecordError(err)
	} else {
		log.Printf("refresh[%s]: catalog v%d installed with %d products", runID, res.Version, res.Count)
	}
	if w.notify != nil {
		w.notify(Outcome{Result: res, Err: err})
	}
	return res, err
}

func (w *Workflow) run(ctx context.Context, runID string) (Result, error) {
	res := Result{RunID: runID}

	log.Printf("refresh[%s]: requesting scrape", runID)
	if _, err := w.source.TriggerScrape(ctx, runID); err != nil {
		return res, &PhaseError{Phase: PhaseScrape, Err: err}
	}

	if err := w.wait(ctx, runID); err != nil {
		return res, &PhaseError{Phase: PhaseWait, Err: err}
	}

	products, err := w.source.FetchProducts(ctx)
	if err != nil {
		return res, &PhaseError{Phase: PhaseReload, Err: err}
	}
	catalog, dropped := w.store.Replace(products)
	if dropped > 0 {
		log.Printf("refresh[%s]: dropped %d products with duplicate ids", runID, dropped)
	}
	res.Count = catalog.Len()
	res.Version = catalog.Version
	res.Dropped = dropped
	return res, nil
}

func (w *Workflow) wait(ctx context.Context, runID string) error {
	if w.opts.Mode == ModeSettle {
		return w.sleep(ctx, w.opts.SettleDelay)
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	var waited time.Duration
	for attempt := 0; ; attempt++ {
		status, err := w.source.FetchScrapeStatus(ctx)
		switch {
		case catalogapi.IsNotFound(err):
			log.Printf("refresh[%s]: status endpoint unavailable, settling for %s", runID, w.opts.SettleDelay)
			return w.sleep(ctx, w.opts.SettleDelay)
		case err != nil:
			return err
		case status.Failed():
			msg := strings.TrimSpace(status.Message)
			if msg == "" {
				msg = "no details"
			}
			return fmt.Errorf("scrape job failed: %s", msg)
		case !status.Running():
			return nil
		}

		delay := calculateBackoff(attempt, w.opts.PollInterval)
		if waited+delay > w.opts.Timeout {
			return fmt.Errorf("scrape still running after %s", w.opts.Timeout)
		}
		if err := w.sleep(ctx, delay); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("scrape still running after %s", w.opts.Timeout)
			}
			return err
		}
		waited += delay
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
