package mediafire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/mfimport/internal/domain"
)

const (
	DefaultHost       = "www.mediafire.com"
	DefaultAPIVersion = "1.5"
	DefaultTimeout    = 30 * time.Second

	maxResponseBytes = 1 << 20
)

// Endpoint locates the API. BaseURL defaults to https://<Host>.
type Endpoint struct {
	BaseURL       string
	Host          string
	Version       string
	TokenVersion  int
	ForceRelative bool
	Timeout       time.Duration
}

func (e Endpoint) withDefaults() Endpoint {
	if e.Host == "" {
		e.Host = DefaultHost
	}
	if e.BaseURL == "" {
		e.BaseURL = "https://" + e.Host
	}
	if e.Version == "" {
		e.Version = DefaultAPIVersion
	}
	if e.TokenVersion != 1 {
		e.TokenVersion = 2
	}
	if e.Timeout <= 0 {
		e.Timeout = DefaultTimeout
	}
	return e
}

// Dispatcher issues API calls one HTTP GET at a time per caller and owns the
// auth attached to each. In v2 mode callers that find no free token wait in a
// FIFO queue; every completed call hands its token to at most one waiter.
type Dispatcher struct {
	endpoint   Endpoint
	baseURL    *url.URL
	httpClient *http.Client
	pool       *TokenPool
	logger     *zap.Logger

	mu      sync.Mutex
	static  string
	waiters []*pendingRequest
}

type pendingRequest struct {
	// ready receives the handed-over token, or nil to fall back to the
	// static token after a reset.
	ready chan *domain.SessionToken
}

func NewDispatcher(endpoint Endpoint, pool *TokenPool, httpClient *http.Client, logger *zap.Logger) (*Dispatcher, error) {
	endpoint = endpoint.withDefaults()

	parsed, err := url.Parse(strings.TrimRight(endpoint.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}
	if pool == nil {
		pool = NewTokenPool(DefaultPoolSize)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		endpoint:   endpoint,
		baseURL:    parsed,
		httpClient: httpClient,
		pool:       pool,
		logger:     logger,
	}, nil
}

func (d *Dispatcher) Pool() *TokenPool {
	return d.pool
}

func (d *Dispatcher) TokenVersion() int {
	return d.endpoint.TokenVersion
}

func (d *Dispatcher) StaticToken() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.static
}

func (d *Dispatcher) SetStaticToken(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.static = token
}

// Reset empties the pool, installs a new static token and releases every
// waiter to the static token.
func (d *Dispatcher) Reset(static string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.static = static
	d.pool.Reset()
	for _, waiter := range d.waiters {
		waiter.ready <- nil
	}
	d.waiters = nil
}

// Call performs one API call. On a logical or HTTP error the returned
// envelope is the parsed body when there was one.
func (d *Dispatcher) Call(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	query.Set("response_format", "json")

	token, static, err := d.acquire(ctx, path)
	if err != nil {
		return nil, err
	}

	endpoint := d.endpointURL(path)
	var target string
	if token != nil {
		canonical := CanonicalURL(endpoint, query, token.Token, d.baseURL.Host, d.endpoint.ForceRelative)
		signature := RequestSignature(token.Secret, token.IssuedAt, canonical)
		query.Set("session_token", token.Token)
		target = endpoint + "?" + encodeSorted(query) + "&signature=" + signature
	} else {
		if static != "" {
			query.Set("session_token", static)
		}
		target = endpoint + "?" + encodeSorted(query)
	}

	env, err := d.do(ctx, path, target)
	d.finish(token, env)
	return env, err
}

func (d *Dispatcher) endpointURL(path string) string {
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".php")
	return d.baseURL.String() + "/api/" + d.endpoint.Version + "/" + path + ".php"
}

func (d *Dispatcher) acquire(ctx context.Context, path string) (*domain.SessionToken, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	d.mu.Lock()
	if d.endpoint.TokenVersion < 2 {
		static := d.static
		d.mu.Unlock()
		return nil, static, nil
	}
	if len(d.waiters) == 0 {
		if token := d.pool.Checkout(); token != nil {
			d.mu.Unlock()
			return token, "", nil
		}
	}
	if !d.pool.Received() {
		static := d.static
		d.mu.Unlock()
		return nil, static, nil
	}

	waiter := &pendingRequest{ready: make(chan *domain.SessionToken, 1)}
	d.waiters = append(d.waiters, waiter)
	queued := len(d.waiters)
	d.mu.Unlock()

	d.logger.Debug("waiting for session token", zap.String("path", path), zap.Int("queued", queued))

	select {
	case token := <-waiter.ready:
		if token == nil {
			return nil, d.StaticToken(), nil
		}
		return token, "", nil
	case <-ctx.Done():
		d.mu.Lock()
		removed := d.removeWaiter(waiter)
		d.mu.Unlock()
		if !removed {
			// A token was handed over before the waiter was abandoned.
			if token := <-waiter.ready; token != nil {
				d.finish(token, nil)
			}
		}
		return nil, "", ctx.Err()
	}
}

func (d *Dispatcher) removeWaiter(waiter *pendingRequest) bool {
	for i, queued := range d.waiters {
		if queued == waiter {
			d.waiters = append(d.waiters[:i], d.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// finish returns the used token to the pool, admits a newly issued one and
// wakes at most one waiter.
func (d *Dispatcher) finish(token *domain.SessionToken, env *Envelope) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token != nil {
		if env.RotatesKey() {
			d.pool.RotateSecret(token)
		} else {
			d.pool.Release(token)
		}
	}

	if d.endpoint.TokenVersion >= 2 && !env.RotatesKey() {
		if value, secret, issuedAt, ok := env.IssuedToken(); ok {
			kept := d.pool.Admit(&domain.SessionToken{Token: value, Secret: secret, IssuedAt: issuedAt})
			d.logger.Debug("session token issued", zap.Bool("kept", kept), zap.Int("pool_size", d.pool.Len()))
		}
	}

	d.drainOne()
}

func (d *Dispatcher) drainOne() {
	if len(d.waiters) == 0 {
		return
	}
	token := d.pool.Checkout()
	if token == nil {
		return
	}
	waiter := d.waiters[0]
	d.waiters = d.waiters[1:]
	waiter.ready <- token
}

func (d *Dispatcher) do(ctx context.Context, path, target string) (*Envelope, error) {
	reqCtx, cancel := context.WithTimeout(ctx, d.endpoint.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", path, err)
	}

	started := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, d.transportError(ctx, reqCtx, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, d.transportError(ctx, reqCtx, path, err)
	}

	d.logger.Debug("api call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	env, parseErr := parseEnvelope(body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Path: path, HTTPStatus: resp.StatusCode}
		if parseErr == nil {
			apiErr.Code = env.Error.Int()
			apiErr.Message = env.Message
			apiErr.Envelope = env
		} else {
			apiErr.Raw = strings.TrimSpace(string(body))
		}
		return env, apiErr
	}
	if parseErr != nil {
		return nil, &DecodeError{Status: resp.StatusCode, Raw: strings.TrimSpace(string(body)), Err: parseErr}
	}
	if env.Failed() {
		return env, &APIError{
			Path:       path,
			HTTPStatus: resp.StatusCode,
			Code:       env.Error.Int(),
			Message:    env.Message,
			Envelope:   env,
		}
	}
	return env, nil
}

func (d *Dispatcher) transportError(ctx, reqCtx context.Context, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("call %s: %w", path, ctxErr)
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("call %s after %s: %w", path, d.endpoint.Timeout, ErrRequestTimeout)
	}
	return &NetworkError{Path: path, Err: err}
}
