// Package log provides the logging abstraction used by foldership components.
//
// Components log through the Logger interface so that an embedding
// application can route output into its own logging stack. Two
// implementations ship with the package: a zerolog adapter and a no-op
// logger for tests.
//
// # Usage
//
//	logger, err := log.New(log.Options{Level: "debug", Format: "json"})
//
// or wrap an existing zerolog logger:
//
//	logger := log.NewZerologAdapterWithLogger(zl)
//
// Fields are attached with the typed helpers:
//
//	logger.Info("delivered", log.String("path", p), log.Duration("took", d))
package log
