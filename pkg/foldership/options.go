package foldership

import (
	"github.com/bft-labs/foldership/internal/ports"
	"github.com/bft-labs/foldership/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Deliverer sends one file to a recipient. Close is called once when the
// watch loop exits.
type Deliverer = ports.Deliverer

// FileSystem abstracts the directory operations of the watch loop.
type FileSystem = ports.FileSystem

// Option configures optional behavior of Foldership.
type Option func(*options)

type options struct {
	httpClient   HTTPClient
	logger       log.Logger
	deliverer    Deliverer
	fs           FileSystem
	eventHandler EventHandler
}

// WithHTTPClient sets the client used by the Telegram deliverer.
// If not provided, a client with Config.HTTPTimeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDeliverer replaces the Telegram deliverer. Config.Token is then
// not required.
func WithDeliverer(d Deliverer) Option {
	return func(o *options) {
		o.deliverer = d
	}
}

// WithFileSystem replaces the host file system.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEventHandler sets a handler for lifecycle, loop, delivery and
// cleanup events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
