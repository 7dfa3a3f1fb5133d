// Package httpclient calls the key service over HTTP with resty. Request
// bodies are optionally gzipped and signed; transport failures are retried.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	easyjson "github.com/mailru/easyjson"

	"rsakeygen/configs"
	"rsakeygen/internal/api/keysdto"
	"rsakeygen/internal/compress"
	"rsakeygen/internal/retry"
	"rsakeygen/internal/signature"
)

const makeRSAKeysPath = "/api/make_rsa_keys"

var (
	// ErrBadSignature is returned when a response does not match its HashSHA256 header.
	ErrBadSignature = errors.New("response signature mismatch")
	// ErrMissingSignature is returned for a successful response without HashSHA256
	// while a key is configured.
	ErrMissingSignature = fmt.Errorf("%w: no %s header", ErrBadSignature, signature.HeaderName)
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return e.Message
}

// StatusCode lets retry decide on 429/502/503/504.
func (e *StatusError) StatusCode() int { return e.Code }

type Client struct {
	client   *resty.Client
	key      []byte
	compress bool
	realIP   string
	retry    retry.RetryConfig
}

type Option func(*Client)

// WithKey enables request signing and response verification.
func WithKey(key string) Option {
	return func(c *Client) {
		if key != "" && key != "none" {
			c.key = []byte(key)
		}
	}
}

// WithCompression gzips request bodies.
func WithCompression(on bool) Option {
	return func(c *Client) { c.compress = on }
}

// WithRealIP sets the X-Real-IP header checked by the trusted subnet middleware.
func WithRealIP(ip string) Option {
	return func(c *Client) { c.realIP = ip }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.SetTimeout(d) }
}

func WithRetry(cfg retry.RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("User-Agent", configs.UserAgent()),
		retry: retry.RetryConfig{Attempts: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MakeRSAKeys asks the server for a key pair of keySize bits.
func (c *Client) MakeRSAKeys(ctx context.Context, keySize uint, includeJWK bool) (*keysdto.KeyPairResponse, error) {
	body, err := easyjson.Marshal(keysdto.KeyPairRequest{KeySize: keySize, IncludeJWK: includeJWK})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	res, err := c.retry.Retry(ctx, func(args ...any) (any, error) {
		return c.post(ctx, args[0].([]byte))
	}, body)
	if err != nil {
		return nil, err
	}
	return res.(*keysdto.KeyPairResponse), nil
}

func (c *Client) post(ctx context.Context, payload []byte) (*keysdto.KeyPairResponse, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if c.compress {
		zipped, err := compress.Compress(payload)
		if err != nil {
			return nil, err
		}
		payload = zipped
		req.SetHeader("Content-Encoding", "gzip")
	}
	if len(c.key) > 0 {
		// подписываем байты в том виде, в каком они уйдут по сети
		req.SetHeader(signature.HeaderName, signature.Sign(payload, c.key))
	}
	if c.realIP != "" {
		req.SetHeader("X-Real-IP", c.realIP)
	}

	resp, err := req.SetBody(payload).Post(makeRSAKeysPath)
	if err != nil {
		return nil, err
	}

	if len(c.key) > 0 {
		got := resp.Header().Get(signature.HeaderName)
		switch {
		case got != "":
			if !signature.Verify(resp.Body(), c.key, got) {
				return nil, ErrBadSignature
			}
		case resp.StatusCode() == http.StatusOK:
			// без подписи ключи не принимаем
			return nil, ErrMissingSignature
		}
	}

	if resp.StatusCode() != http.StatusOK {
		var errResp keysdto.ErrorResponse
		if easyjson.Unmarshal(resp.Body(), &errResp) != nil || errResp.Error == "" {
			errResp.Error = strings.TrimSpace(string(resp.Body()))
		}
		return nil, &StatusError{Code: resp.StatusCode(), Message: errResp.Error}
	}

	var out keysdto.KeyPairResponse
	if err := easyjson.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
