// Package foldership provides an embeddable folder watcher that delivers
// files dropped into a directory to a Telegram chat.
//
// Each cycle lists the watched root, takes the first entry as the sub-unit
// to process, sends the first file found beneath the root as a photo, and
// removes the sub-unit whether or not the send succeeded. Cycles run one at
// a time with a short sleep in between.
//
// # Basic Usage
//
//	cfg := foldership.Config{
//	    Root:   "/srv/inbox",
//	    ChatID: "-1001234567890",
//	    Token:  os.Getenv("API_TOKEN"),
//	}
//
//	f, err := foldership.New(cfg, foldership.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := f.Start(ctx); err != nil {
//	    return err
//	}
//	defer f.Stop()
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for defaults) and
// pass it via [WithEventHandler]. Events are called synchronously from the
// loop goroutine and should return quickly.
//
// # Dependency Injection
//
// [WithDeliverer] replaces the Telegram client and [WithFileSystem] the host
// file system, which is how the package is tested.
//
// # Lifecycle States
//
// An instance is in one of [StateStopped], [StateStarting], [StateRunning],
// [StateStopping] or [StateCrashed]. The loop inside a running instance
// reports [LoopIdle], [LoopProcessing], [LoopSleeping] or [LoopStopped].
package foldership
