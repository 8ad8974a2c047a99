// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
//   - [Deliverer]: hands a located file to the notification recipient
//   - [FileSystem]: directory listing, traversal and removal
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters under internal/adapters provide the concrete implementations.
package ports
