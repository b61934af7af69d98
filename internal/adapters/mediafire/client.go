package mediafire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/mfimport/internal/domain"
)

const DefaultRenewInterval = 8 * time.Minute

const (
	pathLogin       = "user/get_session_token"
	pathRenew       = "user/renew_session_token"
	pathActionToken = "user/get_action_token"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrMissingAppID   = errors.New("application id is required")
	ErrNoSessionToken = errors.New("login response missing session token")
)

type Config struct {
	AppID         string
	AppKey        string
	Endpoint      Endpoint
	PoolSize      int
	RenewInterval time.Duration
}

// Client is one MediaFire session: the dispatcher with its token pool, the
// v1 renewal loop and the action-token future. A Client is safe for
// concurrent use; Close stops its background work.
type Client struct {
	appID         string
	appKey        string
	renewInterval time.Duration
	dispatcher    *Dispatcher
	logger        *zap.Logger

	lifecycle context.Context
	stop      context.CancelFunc
	wg        sync.WaitGroup

	mu          sync.Mutex
	loggedIn    bool
	renewCancel context.CancelFunc
	renewDone   chan struct{}
	action      *actionFuture
}

type actionFuture struct {
	once  sync.Once
	done  chan struct{}
	token string
	err   error
}

func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if cfg.AppID == "" {
		return nil, ErrMissingAppID
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher, err := NewDispatcher(cfg.Endpoint, NewTokenPool(cfg.PoolSize), httpClient, logger)
	if err != nil {
		return nil, err
	}

	interval := cfg.RenewInterval
	if interval <= 0 {
		interval = DefaultRenewInterval
	}

	lifecycle, stop := context.WithCancel(context.Background())
	return &Client{
		appID:         cfg.AppID,
		appKey:        cfg.AppKey,
		renewInterval: interval,
		dispatcher:    dispatcher,
		logger:        logger,
		lifecycle:     lifecycle,
		stop:          stop,
	}, nil
}

func (c *Client) Dispatcher() *Dispatcher {
	return c.dispatcher
}

func (c *Client) Host() string {
	return c.dispatcher.endpoint.Host
}

// Login exchanges credentials for a session token. In v2 mode it then fills
// the token pool; in v1 mode it starts the renewal loop, which runs until
// Close or until ctx ends.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) error {
	if err := c.lifecycle.Err(); err != nil {
		return ErrClosed
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	c.stopRenewal()
	c.dispatcher.Reset("")
	c.mu.Lock()
	c.loggedIn = false
	c.action = &actionFuture{done: make(chan struct{})}
	c.mu.Unlock()

	params := url.Values{}
	params.Set("application_id", c.appID)
	params.Set("signature", LoginSignature(creds.Partial(), c.appID, c.appKey))
	switch creds.Kind() {
	case domain.CredentialEmail:
		params.Set("email", creds.Email)
		params.Set("password", creds.Password)
	case domain.CredentialOAuth:
		params.Set("tw_oauth_token", creds.OAuthToken)
		params.Set("tw_oauth_token_secret", creds.OAuthSecret)
	case domain.CredentialAccessToken:
		params.Set("fb_access_token", creds.AccessToken)
	}

	env, err := c.dispatcher.Call(ctx, pathLogin, params)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if env.SessionToken == "" {
		return ErrNoSessionToken
	}

	c.dispatcher.SetStaticToken(env.SessionToken)
	c.mu.Lock()
	c.loggedIn = true
	c.mu.Unlock()
	c.logger.Info("logged in", zap.String("kind", string(creds.Kind())), zap.Int("token_version", c.dispatcher.TokenVersion()))

	if c.dispatcher.TokenVersion() >= 2 {
		pool := c.dispatcher.Pool()
		if pool.Len() == 0 {
			if err := c.Replenish(ctx, pool.Capacity()); err != nil {
				c.logger.Warn("token pool replenish failed", zap.Error(err), zap.Int("pool_size", pool.Len()))
			}
		}
		return nil
	}

	c.startRenewal(ctx)
	return nil
}

// Replenish issues count upgrade calls concurrently. Each response admits at
// most one token to the pool.
func (c *Client) Replenish(ctx context.Context, count int) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			params := url.Values{}
			params.Set("token_version", "2")
			_, err := c.dispatcher.Call(gctx, pathRenew, params)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("replenish token pool: %w", err)
	}
	c.logger.Debug("token pool replenished", zap.Int("pool_size", c.dispatcher.Pool().Len()))
	return nil
}

func (c *Client) startRenewal(ctx context.Context) {
	renewCtx, cancel := context.WithCancel(c.lifecycle)
	done := make(chan struct{})

	c.mu.Lock()
	c.renewCancel = cancel
	c.renewDone = done
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)

		ticker := time.NewTicker(c.renewInterval)
		defer ticker.Stop()
		for {
			select {
			case <-renewCtx.Done():
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.renew(renewCtx)
			}
		}
	}()
}

func (c *Client) renew(ctx context.Context) {
	env, err := c.dispatcher.Call(ctx, pathRenew, nil)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("session token renewal failed", zap.Error(err))
		}
		return
	}
	if env.SessionToken != "" {
		c.dispatcher.SetStaticToken(env.SessionToken)
		c.logger.Debug("session token renewed")
	}
}

func (c *Client) stopRenewal() {
	c.mu.Lock()
	cancel, done := c.renewCancel, c.renewDone
	c.renewCancel, c.renewDone = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// ActionToken returns the upload action token of the current login. The
// first caller starts the fetch; every caller waits for the same result.
func (c *Client) ActionToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	future, loggedIn := c.action, c.loggedIn
	c.mu.Unlock()
	if future == nil || !loggedIn {
		return "", ErrNotLoggedIn
	}

	future.once.Do(func() {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			defer close(future.done)
			future.token, future.err = c.fetchActionToken(c.lifecycle)
		}()
	})

	select {
	case <-future.done:
		return future.token, future.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Client) fetchActionToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("type", "upload")
	params.Set("lifespan", strconv.Itoa(1440))

	env, err := c.dispatcher.Call(ctx, pathActionToken, params)
	if err != nil {
		return "", fmt.Errorf("get action token: %w", err)
	}
	var payload struct {
		ActionToken string `json:"action_token"`
	}
	if err := env.Decode(&payload); err != nil {
		return "", fmt.Errorf("get action token: %w", err)
	}
	if payload.ActionToken == "" {
		return "", errors.New("get action token: response missing action_token")
	}
	return payload.ActionToken, nil
}

// Close stops the renewal loop and any pending action-token fetch.
func (c *Client) Close() error {
	c.stop()
	c.stopRenewal()
	c.wg.Wait()
	return nil
}
