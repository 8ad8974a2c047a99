package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bft-labs/foldership/internal/domain"
	"github.com/bft-labs/foldership/internal/ports"
)

// callLog records the order of side-effecting calls across doubles.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, s)
}

func (c *callLog) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.calls...)
}

// osFS is a host file system double with call recording and error injection.
type osFS struct {
	log       *callLog
	removeErr error
}

func (f *osFS) ReadDir(path string) ([]fs.DirEntry, error) {
	f.log.add("readdir")
	return os.ReadDir(path)
}

func (f *osFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	f.log.add("walk")
	return filepath.WalkDir(root, fn)
}

func (f *osFS) RemoveAll(path string) error {
	f.log.add("remove:" + filepath.Base(path))
	if f.removeErr != nil {
		return f.removeErr
	}
	return os.RemoveAll(path)
}

func (f *osFS) Exists(path string) (bool, error) {
	f.log.add("exists:" + filepath.Base(path))
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// fakeDeliverer records Send calls and fails with err when set. onSend
// runs inside Send before it returns.
type fakeDeliverer struct {
	log    *callLog
	err    error
	onSend func(filePath string)
	mu     sync.Mutex
	sent   []string
	closes int
}

func (d *fakeDeliverer) Send(ctx context.Context, recipient, filePath, caption string) error {
	d.mu.Lock()
	d.sent = append(d.sent, filePath)
	d.mu.Unlock()
	d.log.add("send")
	if d.onSend != nil {
		d.onSend(filePath)
	}
	if filePath == "" {
		return domain.ErrNoTarget
	}
	return d.err
}

func (d *fakeDeliverer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

func (d *fakeDeliverer) Sent() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.sent...)
}

func (d *fakeDeliverer) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

type logEntry struct {
	level string
	msg   string
}

// recordingLogger captures level and message of each entry.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg})
}

func (l *recordingLogger) Debug(msg string, fields ...ports.Field) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, fields ...ports.Field)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, fields ...ports.Field)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, fields ...ports.Field) { l.record("error", msg) }

func (l *recordingLogger) count(level, msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			n++
		}
	}
	return n
}

// chanObserver forwards loop states to a channel.
type chanObserver struct {
	states   chan LoopState
	mu       sync.Mutex
	cleanups []CleanupResult
}

func newChanObserver() *chanObserver {
	return &chanObserver{states: make(chan LoopState, 64)}
}

func (o *chanObserver) OnLoopState(previous, current LoopState) {
	select {
	case o.states <- current:
	default:
	}
}

func (o *chanObserver) OnDelivery(result DeliveryResult) {}

func (o *chanObserver) OnCleanup(result CleanupResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cleanups = append(o.cleanups, result)
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
