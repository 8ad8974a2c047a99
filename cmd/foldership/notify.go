package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/bft-labs/foldership/internal/adapters/telegram"
	"github.com/bft-labs/foldership/internal/cliconfig"
	"github.com/bft-labs/foldership/pkg/log"
)

// newTestNotifyCmd checks the token with getMe and posts a text message to
// the configured chat.
func newTestNotifyCmd(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:          "test-notify",
		Short:        "Verify the bot token and send a test message to the chat",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath); err != nil {
				return err
			}
			if cfg.Token == "" || cfg.ChatID == "" {
				return errors.New("api-token and chat-id are required")
			}
			logger, err := newLogger(*cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
			defer cancel()

			bot := telegram.NewBot(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIURL, cfg.Token, logger)
			defer bot.Close()

			me, err := bot.GetMe(ctx)
			if err != nil {
				return fmt.Errorf("getMe: %w", err)
			}
			logger.Info("bot authenticated", log.String("username", me.Username), log.Int64("id", me.ID))

			text := fmt.Sprintf("✅ foldership %s is connected as @%s", html.EscapeString(getVersion()), html.EscapeString(me.Username))
			if err := bot.SendMessage(ctx, cfg.ChatID, text); err != nil {
				return fmt.Errorf("sendMessage: %w", err)
			}
			logger.Info("test message sent", log.String("chat_id", cfg.ChatID))
			return nil
		},
	}
}
