package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/foldership/internal/domain"
	"github.com/bft-labs/foldership/internal/ports"
)

// WatcherConfig holds the watch loop parameters.
type WatcherConfig struct {
	// Root is the watched directory.
	Root string
	// Recipient identifies the chat that receives delivered files.
	Recipient string
	// PollInterval is the sleep between cycles.
	PollInterval time.Duration
	// Once runs a single cycle and returns.
	Once bool
}

// DeliveryResult describes the outcome of one delivery attempt.
type DeliveryResult struct {
	Delivery domain.Delivery
	Duration time.Duration
	Err      error
}

// CleanupResult describes the outcome of removing a sub-unit.
type CleanupResult struct {
	SubUnit domain.SubUnit
	Path    string
	Removed bool
	Err     error
}

// Observer receives loop events. Calls are made synchronously from the
// loop goroutine.
type Observer interface {
	OnLoopState(previous, current LoopState)
	OnDelivery(result DeliveryResult)
	OnCleanup(result CleanupResult)
}

// Watcher runs the detect, deliver and clean cycle over a single root.
type Watcher struct {
	config    WatcherConfig
	fs        ports.FileSystem
	deliverer ports.Deliverer
	locator   *Locator
	logger    ports.Logger
	observer  Observer
	stats     *Stats
	wake      <-chan struct{}

	mu        sync.RWMutex
	state     LoopState
	rootDown  bool
	closeOnce sync.Once
}

// NewWatcher creates a watch loop. observer may be nil.
func NewWatcher(cfg WatcherConfig, fsys ports.FileSystem, deliverer ports.Deliverer, logger ports.Logger, observer Observer) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Watcher{
		config:    cfg,
		fs:        fsys,
		deliverer: deliverer,
		locator:   NewLocator(fsys, logger),
		logger:    logger,
		observer:  observer,
		stats:     &Stats{},
		state:     LoopIdle,
	}
}

// SetWake installs a channel whose sends end the current sleep early.
// Must be called before Run.
func (w *Watcher) SetWake(ch <-chan struct{}) {
	w.wake = ch
}

// State returns the current loop state.
func (w *Watcher) State() LoopState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Stats returns a snapshot of the loop counters.
func (w *Watcher) Stats() Snapshot {
	return w.stats.Snapshot()
}

// Run executes cycles until ctx is canceled, or once in single-cycle mode.
// The deliverer is closed exactly once when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()
	defer w.setState(LoopStopped)

	w.logger.Info("watching root",
		ports.String("root", w.config.Root),
		ports.Duration("poll_interval", w.config.PollInterval),
		ports.Bool("once", w.config.Once),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		w.Cycle(ctx)

		if w.config.Once {
			return nil
		}

		if !w.sleep(ctx) {
			return ctx.Err()
		}
	}
}

// Cycle performs one detect, deliver and clean pass and leaves the loop in
// LoopSleeping. It returns true when a sub-unit was processed.
func (w *Watcher) Cycle(ctx context.Context) bool {
	w.setState(LoopIdle)
	w.stats.cycle()

	entries, err := w.fs.ReadDir(w.config.Root)
	if err != nil {
		w.markRootDown(err)
		w.setState(LoopSleeping)
		return false
	}
	w.markRootUp()

	if len(entries) == 0 {
		w.setState(LoopSleeping)
		return false
	}

	w.setState(LoopProcessing)
	sub := domain.SubUnit(entries[0].Name())

	target, found, err := w.locator.FindFile(w.config.Root)
	switch {
	case err != nil:
		w.logger.Warn("locate file failed", ports.String("root", w.config.Root), ports.Err(err))
	case !found:
		w.logger.Debug("no file under root", ports.String("sub_unit", string(sub)))
	}

	w.DeliverAndClean(ctx, target, sub)
	w.setState(LoopSleeping)
	return true
}

// DeliverAndClean sends path to the recipient, then removes Root/sub
// whether or not delivery succeeded. Failures are logged, never returned.
func (w *Watcher) DeliverAndClean(ctx context.Context, path string, sub domain.SubUnit) {
	if err := sub.Validate(); err != nil {
		w.logger.Error("refusing to process sub-unit", ports.String("root", w.config.Root), ports.Err(err))
		return
	}
	subDir := sub.Path(w.config.Root)

	d := domain.NewDelivery(path, sub)
	err := w.deliverer.Send(context.WithoutCancel(ctx), w.config.Recipient, d.Path, d.Caption)
	took := time.Since(d.StartedAt)

	w.stats.delivery(d.Path, d.StartedAt, err)
	if w.observer != nil {
		w.observer.OnDelivery(DeliveryResult{Delivery: d, Duration: took, Err: err})
	}

	if err == nil {
		w.logger.Info("file delivered",
			ports.String("id", d.ID),
			ports.String("path", d.Path),
			ports.Duration("took", took),
		)
		if rmErr := w.fs.RemoveAll(subDir); rmErr != nil {
			w.logger.Error("failed to remove sub-unit", ports.String("path", subDir), ports.Err(rmErr))
			w.cleaned(sub, subDir, false, rmErr)
			return
		}
		w.cleaned(sub, subDir, true, nil)
		return
	}

	w.logger.Error("delivery failed",
		ports.String("id", d.ID),
		ports.String("path", d.Path),
		ports.Err(err),
	)

	exists, exErr := w.fs.Exists(subDir)
	if exErr == nil && !exists {
		w.cleaned(sub, subDir, false, nil)
		return
	}
	if rmErr := w.fs.RemoveAll(subDir); rmErr != nil {
		w.logger.Warn("failed to remove sub-unit after failed delivery", ports.String("path", subDir), ports.Err(rmErr))
		w.cleaned(sub, subDir, false, rmErr)
		return
	}
	w.logger.Warn("sub-unit removed after failed delivery", ports.String("path", subDir))
	w.cleaned(sub, subDir, true, nil)
}

func (w *Watcher) cleaned(sub domain.SubUnit, path string, removed bool, err error) {
	if removed || err != nil {
		w.stats.removal(err)
	}
	if w.observer != nil {
		w.observer.OnCleanup(CleanupResult{SubUnit: sub, Path: path, Removed: removed, Err: err})
	}
}

// sleep waits for the poll interval, a wake signal or cancellation.
// It returns false on cancellation.
func (w *Watcher) sleep(ctx context.Context) bool {
	timer := time.NewTimer(w.config.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-w.wake:
		return true
	}
}

func (w *Watcher) markRootDown(err error) {
	w.mu.Lock()
	first := !w.rootDown
	w.rootDown = true
	w.mu.Unlock()

	w.stats.rootUnavailable(true)
	if first {
		w.logger.Warn("root unavailable", ports.String("root", w.config.Root), ports.Err(err))
		return
	}
	w.logger.Debug("root still unavailable", ports.String("root", w.config.Root), ports.Err(err))
}

func (w *Watcher) markRootUp() {
	w.mu.Lock()
	recovered := w.rootDown
	w.rootDown = false
	w.mu.Unlock()

	if recovered {
		w.stats.rootUnavailable(false)
		w.logger.Info("root available again", ports.String("root", w.config.Root))
	}
}

func (w *Watcher) setState(next LoopState) {
	w.mu.Lock()
	prev := w.state
	if prev == next || !prev.canMove(next) {
		w.mu.Unlock()
		return
	}
	w.state = next
	w.mu.Unlock()

	if w.observer != nil {
		w.observer.OnLoopState(prev, next)
	}
}

func (w *Watcher) close() {
	w.closeOnce.Do(func() {
		if err := w.deliverer.Close(); err != nil {
			w.logger.Warn("close deliverer", ports.Err(err))
		}
	})
}
