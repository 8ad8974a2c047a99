// Package fswatch turns file system events on the watched root into
// wake-up signals for the watch loop.
package fswatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/foldership/internal/ports"
)

// Notifier signals C whenever an entry under root is created, written or
// renamed. Signals are coalesced: at most one is pending at a time.
type Notifier struct {
	root   string
	logger ports.Logger
	ch     chan struct{}
	wg     sync.WaitGroup
}

// New creates a Notifier for root. Call Start to begin watching.
func New(root string, logger ports.Logger) *Notifier {
	return &Notifier{
		root:   root,
		logger: logger,
		ch:     make(chan struct{}, 1),
	}
}

// C returns the wake-up channel.
func (n *Notifier) C() <-chan struct{} {
	return n.ch
}

// Start registers root with fsnotify and forwards events until ctx is done.
func (n *Notifier) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(n.root); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", n.root, err)
	}

	n.wg.Add(1)
	go n.loop(ctx, watcher)
	return nil
}

// Wait blocks until the event loop has exited.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer n.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			n.logger.Debug("root changed",
				ports.String("path", event.Name),
				ports.String("op", event.Op.String()),
			)
			n.signal()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			n.logger.Warn("file watcher error", ports.Err(err))
		}
	}
}

func (n *Notifier) signal() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}
