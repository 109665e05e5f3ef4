package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adminconsole/internal/logger"
)

// ErrAborted marks a request whose caller context was cancelled.
var ErrAborted = errors.New("request aborted")

// ErrNoBaseURL is returned when a call does not name the service it targets.
var ErrNoBaseURL = errors.New("base URL is required")

// Error is a failure reported by a remote service, either through a non-2xx
// status or an envelope with success=false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsAborted reports whether err came from a cancelled request.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}

// TokenSource yields the bearer token of the current session, or "".
type TokenSource interface {
	Token() string
}

type Options struct {
	Method  string
	Data    any
	Body    io.Reader
	Headers map[string]string
	BaseURL string
	NoAuth  bool
}

type Client struct {
	httpClient *http.Client
	tokens     TokenSource
}

func NewClient(tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// NewClientWithHTTP lets callers supply their own transport.
func NewClientWithHTTP(tokens TokenSource, httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient, tokens: tokens}
}

// envelope fields are kept raw so that a payload with unexpected field
// types still yields its success flag and message.
type envelope struct {
	Success json.RawMessage `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message json.RawMessage `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func (e envelope) failed() bool {
	var success *bool
	if err := json.Unmarshal(e.Success, &success); err != nil || success == nil {
		return false
	}
	return !*success
}

// Call performs one request and returns the unwrapped payload.
// A 204 response yields a nil payload.
func (c *Client) Call(ctx context.Context, endpoint string, opts Options) (json.RawMessage, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body := opts.Body
	contentType := ""
	if opts.Data != nil {
		payload, err := json.Marshal(opts.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	url := strings.TrimRight(opts.BaseURL, "/") + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if !opts.NoAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("%w: %w", ErrAborted, context.Canceled)
		}
		logger.Zlog.Warn("request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	logger.Zlog.Debug("api call",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("%w: %w", ErrAborted, context.Canceled)
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return decodeResponse(resp.StatusCode, raw)
}

func decodeResponse(status int, raw []byte) (json.RawMessage, error) {
	text := strings.TrimSpace(string(raw))
	ok := status >= 200 && status < 300

	var env envelope
	isJSON := text != "" && json.Valid([]byte(text))
	if !isJSON {
		if ok && text == "" {
			return nil, nil
		}
		message := text
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", status)
		}
		return nil, &Error{Status: status, Message: message}
	}

	// Non-object payloads (bare arrays, scalars) carry no envelope.
	if !strings.HasPrefix(text, "{") {
		if !ok {
			return nil, &Error{Status: status, Message: fmt.Sprintf("Request failed with status %d", status)}
		}
		return json.RawMessage(text), nil
	}

	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !ok || env.failed() {
		return nil, &Error{Status: status, Message: errorMessage(env, status)}
	}

	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		return env.Data, nil
	}
	return json.RawMessage(text), nil
}

func errorMessage(env envelope, status int) string {
	var message string
	if err := json.Unmarshal(env.Message, &message); err == nil && message != "" {
		return message
	}
	if messages := errorList(env.Errors); len(messages) > 0 {
		return strings.Join(messages, ", ")
	}
	return fmt.Sprintf("Request failed with status %d", status)
}

// errorList keeps the string entries of errors and the message of object
// entries; anything else is skipped.
func errorList(raw json.RawMessage) []string {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	var out []string
	for _, entry := range entries {
		var text string
		if err := json.Unmarshal(entry, &text); err == nil {
			if text != "" {
				out = append(out, text)
			}
			continue
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil && obj.Message != "" {
			out = append(out, obj.Message)
		}
	}
	return out
}

// Do calls the endpoint and decodes the payload into T.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts Options) (T, error) {
	var out T
	payload, err := c.Call(ctx, endpoint, opts)
	if err != nil {
		return out, err
	}
	if len(payload) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return out, nil
}
