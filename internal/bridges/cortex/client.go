package cortex

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
)

// apiPath is prefixed to every command path.
const apiPath = "/api/v1/"

// maxReplyBytes caps how much of a controller reply is read.
const maxReplyBytes = 1 << 20

// Logger is the logging interface used by the client.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Client sends commands to one Cortex controller.
//
// It holds no per-request state and never retries.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request and reply tracing.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the controller described by cfg.
//
// Parameters:
//   - cfg: Controller connection settings
//   - opts: Optional overrides
//
// Returns:
//   - *Client: Client ready for use; no connection is made until Send
func NewClient(cfg config.ControllerConfig, opts ...Option) *Client {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}

	c := &Client{
		baseURL:  scheme + "://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the controller address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(l Logger) {
	c.logger = l
}

// Send issues one command and returns the raw reply body.
//
// Parameters:
//   - ctx: Context for cancellation
//   - cmd: The command to send
//
// Returns:
//   - string: Reply body
//   - error: ErrTransport (wrapped) on connection failure, ErrUnexpectedStatus
//     (wrapped) on a non-2xx reply
func (c *Client) Send(ctx context.Context, cmd Command) (string, error) {
	c.logDebug("controller request", "method", cmd.Method, "path", cmd.Path)

	req, err := http.NewRequestWithContext(ctx, cmd.Method, c.baseURL+apiPath+strings.TrimPrefix(cmd.Path, "/"), nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %w", ErrTransport, err)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logDebug("controller request failed", "path", cmd.Path, "error", err)
		return "", fmt.Errorf("%w: %s: %w", ErrTransport, cmd, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading reply to %s: %w", ErrTransport, cmd, err)
	}

	c.logDebug("controller reply",
		"path", cmd.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"body", string(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, cmd, resp.StatusCode)
	}

	return string(body), nil
}

func (c *Client) logDebug(msg string, keysAndValues ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keysAndValues...)
	}
}
