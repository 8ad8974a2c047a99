package foldership

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"github.com/bft-labs/foldership/internal/adapters/fs"
	"github.com/bft-labs/foldership/internal/adapters/fswatch"
	"github.com/bft-labs/foldership/internal/adapters/telegram"
	"github.com/bft-labs/foldership/internal/app"
	"github.com/bft-labs/foldership/internal/domain"
	"github.com/bft-labs/foldership/internal/ports"
	"github.com/bft-labs/foldership/internal/status"
	"github.com/bft-labs/foldership/pkg/log"
)

// Foldership watches a directory and delivers the files dropped into it.
// Use New() to create an instance, then Start() to begin watching.
type Foldership struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	emitter   *eventEmitterWrapper
	logger    ports.Logger

	watcher atomic.Pointer[app.Watcher]

	mu       sync.RWMutex
	done     chan struct{}
	stopping bool

	relMu    sync.Mutex
	lock     *flock.Flock
	notifier *fswatch.Notifier
	status   *status.Server
}

// New creates an instance in StateStopped. Returns an error wrapping
// ErrInvalidConfig if cfg is incomplete.
func New(cfg Config, opts ...Option) (*Foldership, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = fs.NewOS()
	}
	if o.deliverer == nil && cfg.Token == "" {
		return nil, fmt.Errorf("%w: bot token is required", domain.ErrInvalidConfig)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	return &Foldership{
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(o.logger, emitter),
		emitter:   emitter,
		logger:    o.logger,
	}, nil
}

// Start acquires the root lock and runs the watch loop in the background.
// It returns ErrAlreadyRunning if the instance is running and an error
// wrapping ErrLocked if another instance holds the root.
func (f *Foldership) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := f.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	if !f.config.DisableLock {
		fl, err := acquireLock(f.config.LockFile)
		if err != nil {
			_ = f.lifecycle.TransitionTo(app.StateStopped, "lock not acquired")
			return err
		}
		f.relMu.Lock()
		f.lock = fl
		f.relMu.Unlock()
		f.logger.Debug("root lock acquired", ports.String("lock", f.config.LockFile))
	}

	runCtx, cancel := context.WithCancel(ctx)
	f.lifecycle.SetCancel(cancel)
	f.stopping = false

	deliverer := f.opts.deliverer
	if deliverer == nil {
		deliverer = telegram.NewBot(f.opts.httpClient, f.config.APIURL, f.config.Token, f.logger)
	}

	watcher := app.NewWatcher(app.WatcherConfig{
		Root:         f.config.Root,
		Recipient:    f.config.ChatID,
		PollInterval: f.config.PollInterval,
		Once:         f.config.Once,
	}, f.opts.fs, deliverer, f.logger, f.emitter)

	if f.config.WatchEvents && !f.config.Once {
		n := fswatch.New(f.config.Root, f.logger)
		if err := n.Start(runCtx); err != nil {
			f.logger.Warn("file events unavailable, polling only", ports.Err(err))
		} else {
			watcher.SetWake(n.C())
			f.relMu.Lock()
			f.notifier = n
			f.relMu.Unlock()
		}
	}

	if f.config.StatusAddr != "" {
		srv := status.NewServer(f.config.StatusAddr, statusView{f}, f.logger)
		if err := srv.Start(); err != nil {
			cancel()
			f.release()
			_ = f.lifecycle.TransitionTo(app.StateStopped, "status server failed")
			return err
		}
		f.relMu.Lock()
		f.status = srv
		f.relMu.Unlock()
	}

	f.watcher.Store(watcher)
	done := make(chan struct{})
	f.done = done

	f.lifecycle.AddWorker()
	go func() {
		defer close(done)
		defer f.lifecycle.WorkerDone()

		if err := f.lifecycle.TransitionTo(app.StateRunning, "loop starting"); err != nil {
			// Stop won the race; runCtx is canceled and Run only closes the deliverer.
			f.logger.Debug("loop not marked running", ports.Err(err))
		}

		err := watcher.Run(runCtx)
		f.finish(err)
	}()

	return nil
}

// finish handles a loop that returned without Stop being called: single
// cycle mode or cancellation of the parent context.
func (f *Foldership) finish(runErr error) {
	f.mu.RLock()
	stopping := f.stopping
	f.mu.RUnlock()
	if stopping {
		return
	}

	f.lifecycle.Cancel()
	f.release()
	switch {
	case runErr == nil:
		_ = f.lifecycle.TransitionTo(app.StateStopped, "single cycle complete")
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		_ = f.lifecycle.TransitionTo(app.StateStopped, "context done")
	default:
		f.logger.Error("watch loop error", ports.Err(runErr))
		_ = f.lifecycle.TransitionTo(app.StateCrashed, runErr.Error())
	}
}

// Stop cancels the loop and waits up to Config.ShutdownTimeout for it to
// exit. An in-flight delivery is allowed to complete.
func (f *Foldership) Stop() error {
	f.mu.Lock()
	if !f.lifecycle.CanStop() {
		f.mu.Unlock()
		return domain.ErrNotRunning
	}
	f.stopping = true
	f.mu.Unlock()

	if err := f.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		return err
	}
	f.lifecycle.Cancel()

	err := f.lifecycle.WaitWithTimeout(f.config.ShutdownTimeout)
	f.release()

	if err != nil {
		_ = f.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = f.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// release stops auxiliary components and drops the root lock. The run
// context must already be canceled. Idempotent.
func (f *Foldership) release() {
	f.relMu.Lock()
	defer f.relMu.Unlock()

	if f.notifier != nil {
		f.notifier.Wait()
		f.notifier = nil
	}
	if f.status != nil {
		ctx, cancelShutdown := context.WithTimeout(context.Background(), f.config.ShutdownTimeout)
		if err := f.status.Shutdown(ctx); err != nil {
			f.logger.Warn("status server shutdown", ports.Err(err))
		}
		cancelShutdown()
		f.status = nil
	}
	if f.lock != nil {
		if err := f.lock.Unlock(); err != nil {
			f.logger.Warn("failed to release root lock", ports.Err(err))
		}
		f.lock = nil
	}
}

// Status returns the current lifecycle state.
func (f *Foldership) Status() State {
	return f.lifecycle.State()
}

// LoopState returns the state of the watch loop, or LoopStopped if the
// loop has not started.
func (f *Foldership) LoopState() LoopState {
	w := f.watcher.Load()
	if w == nil {
		return app.LoopStopped
	}
	return w.State()
}

// Stats returns the counters of the current or last run.
func (f *Foldership) Stats() Stats {
	w := f.watcher.Load()
	if w == nil {
		return Stats{}
	}
	return w.Stats()
}

// Done returns a channel closed when the current run's loop exits.
// Before the first Start it returns a closed channel.
func (f *Foldership) Done() <-chan struct{} {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return f.done
}

// statusView adapts Foldership to status.Provider.
type statusView struct {
	f *Foldership
}

func (v statusView) Root() string        { return v.f.config.Root }
func (v statusView) Lifecycle() string   { return v.f.Status().String() }
func (v statusView) Loop() string        { return v.f.LoopState().String() }
func (v statusView) Stats() app.Snapshot { return v.f.Stats() }
