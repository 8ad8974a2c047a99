// Package telegram implements ports.Deliverer on the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bft-labs/foldership/internal/domain"
	"github.com/bft-labs/foldership/internal/ports"
)

// DefaultAPIURL is the public Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

const parseModeHTML = "HTML"

// APIError is returned when the Bot API rejects a request.
type APIError struct {
	Method      string
	StatusCode  int
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: status %d: %s", e.Method, e.StatusCode, e.Description)
}

// User is the subset of the Bot API User object returned by getMe.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// apiResponse is the envelope shared by every Bot API method.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// Bot implements ports.Deliverer by sending photos to a chat.
type Bot struct {
	client    ports.HTTPClient
	apiURL    string
	token     string
	logger    ports.Logger
	closeOnce sync.Once
}

// NewBot creates a Bot that calls apiURL with the given token.
// An empty apiURL selects DefaultAPIURL.
func NewBot(client ports.HTTPClient, apiURL, token string, logger ports.Logger) *Bot {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Bot{
		client: client,
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		logger: logger,
	}
}

// Send uploads filePath as a photo to chatID with an HTML caption.
func (b *Bot) Send(ctx context.Context, chatID, filePath, caption string) error {
	if filePath == "" {
		return domain.ErrNoTarget
	}

	// Opening a pipe with no writer blocks, so only regular files are read.
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", domain.ErrNoTarget, filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := []struct{ name, value string }{
		{"chat_id", chatID},
		{"caption", caption},
		{"parse_mode", parseModeHTML},
	}
	for _, fld := range fields {
		if err := writer.WriteField(fld.name, fld.value); err != nil {
			return fmt.Errorf("write %s field: %w", fld.name, err)
		}
	}

	photoPart, err := writer.CreateFormFile("photo", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("create photo field: %w", err)
	}
	if _, err := io.Copy(photoPart, f); err != nil {
		return fmt.Errorf("write photo data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart: %w", err)
	}

	_, err = b.call(ctx, "sendPhoto", writer.FormDataContentType(), &body)
	return err
}

// SendMessage posts a plain HTML text message to chatID.
func (b *Bot) SendMessage(ctx context.Context, chatID, text string) error {
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", parseModeHTML)

	_, err := b.call(ctx, "sendMessage", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	return err
}

// GetMe returns the bot account identified by the token.
func (b *Bot) GetMe(ctx context.Context) (User, error) {
	var u User
	raw, err := b.call(ctx, "getMe", "", nil)
	if err != nil {
		return u, err
	}
	if err := json.Unmarshal(raw, &u); err != nil {
		return u, fmt.Errorf("decode getMe result: %w", err)
	}
	return u, nil
}

// Close releases idle connections held by the HTTP client. Safe to call
// more than once.
func (b *Bot) Close() error {
	b.closeOnce.Do(func() {
		if c, ok := b.client.(interface{ CloseIdleConnections() }); ok {
			c.CloseIdleConnections()
		}
		b.logger.Debug("telegram session closed")
	})
	return nil
}

func (b *Bot) call(ctx context.Context, method, contentType string, body io.Reader) (json.RawMessage, error) {
	httpMethod := http.MethodPost
	if body == nil {
		httpMethod = http.MethodGet
	}

	endpoint := b.apiURL + "/bot" + b.token + "/" + method
	req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", redact(err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram %s: %w", method, redact(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, &APIError{Method: method, StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(respBody))}
		}
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}

	if resp.StatusCode/100 != 2 || !envelope.OK {
		return nil, &APIError{
			Method:      method,
			StatusCode:  resp.StatusCode,
			Code:        envelope.ErrorCode,
			Description: envelope.Description,
		}
	}

	return envelope.Result, nil
}

// redact strips the request URL, which embeds the bot token, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
