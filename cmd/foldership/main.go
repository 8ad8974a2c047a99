package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/foldership/internal/cliconfig"
	"github.com/bft-labs/foldership/pkg/foldership"
	"github.com/bft-labs/foldership/pkg/log"
)

const helpDescription = `
Watch a drop folder and forward what lands in it to a Telegram chat.

Each cycle takes the first entry of the folder, sends the first file found
under the folder as a photo, then removes that entry whether or not the
send succeeded. Configure via file, env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  foldership --folder-path /srv/inbox --chat-id -100123 --api-token <token>
  foldership --config $HOME/.foldership/config.toml --once
  foldership test-notify --chat-id -100123 --api-token <token>
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:          "foldership",
		Short:        "Forward files dropped into a folder to a Telegram chat",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			return run(cfg, logger)
		},
	}
	root.AddCommand(newTestNotifyCmd(&cfg, &cfgPath))

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.foldership/config.toml)")
	pf.StringVar(&cfg.ChatID, "chat-id", cfg.ChatID, "Telegram chat that receives the files")
	pf.StringVar(&cfg.Token, "api-token", cfg.Token, "Telegram bot token")
	pf.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "Bot API base URL (override only for testing)")
	if err := pf.MarkHidden("api-url"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to hide api-url flag: %v\n", err)
	}
	pf.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per Bot API request")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")

	f := root.Flags()
	f.StringVar(&cfg.Root, "folder-path", cfg.Root, "folder to watch")
	f.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "sleep between cycles")
	f.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "how long Stop waits for an in-flight delivery")
	f.BoolVar(&cfg.WatchEvents, "watch-events", cfg.WatchEvents, "wake early on file system events")
	f.StringVar(&cfg.LockFile, "lock-file", cfg.LockFile, "single-instance lock file (default: derived from folder path)")
	f.BoolVar(&cfg.NoLock, "no-lock", cfg.NoLock, "do not take the single-instance lock")
	f.StringVar(&cfg.StatusAddr, "status-addr", cfg.StatusAddr, "serve /healthz and /status on this address")
	f.BoolVar(&cfg.Once, "once", cfg.Once, "run a single cycle and exit")

	if err := root.Execute(); err != nil {
		fallback, _ := log.New(log.Options{})
		fallback.Error("foldership", log.Err(err))
		os.Exit(1)
	}
}

// loadConfig layers the config file and environment under explicitly set
// flags.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s not found", cfgPath)
	}

	return cliconfig.ApplyEnvConfig(cfg, changed)
}

func newLogger(cfg cliconfig.Config) (*log.ZerologAdapter, error) {
	return log.New(log.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

func run(cfg cliconfig.Config, logger *log.ZerologAdapter) error {
	logCfg := cfg
	if logCfg.Token != "" {
		logCfg.Token = "*****"
	}
	logger.Info("configuration", log.Any("config", logCfg))

	f, err := foldership.New(foldership.Config{
		Root:            cfg.Root,
		ChatID:          cfg.ChatID,
		Token:           cfg.Token,
		APIURL:          cfg.APIURL,
		PollInterval:    cfg.PollInterval,
		HTTPTimeout:     cfg.HTTPTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		WatchEvents:     cfg.WatchEvents,
		LockFile:        cfg.LockFile,
		DisableLock:     cfg.NoLock,
		StatusAddr:      cfg.StatusAddr,
		Once:            cfg.Once,
	}, foldership.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create foldership: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := f.Start(ctx); err != nil {
		return fmt.Errorf("start foldership: %w", err)
	}

	select {
	case sig := <-sigCh:
		logger.Info("received signal, stopping", log.String("signal", sig.String()))
	case <-f.Done():
		if f.Status() == foldership.StateCrashed {
			return errors.New("watch loop crashed")
		}
	}

	if err := f.Stop(); err != nil && !errors.Is(err, foldership.ErrNotRunning) {
		return fmt.Errorf("stop foldership: %w", err)
	}
	return nil
}
