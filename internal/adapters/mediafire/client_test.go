package mediafire

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bnema/mfimport/internal/domain"
)

func newTestClient(t *testing.T, server *httptest.Server, tokenVersion int, renew time.Duration) *Client {
	t.Helper()

	client, err := NewClient(Config{
		AppID:  "app-42",
		AppKey: "key-secret",
		Endpoint: Endpoint{
			BaseURL:       server.URL,
			Host:          "www.mediafire.com",
			TokenVersion:  tokenVersion,
			ForceRelative: true,
			Timeout:       2 * time.Second,
		},
		PoolSize:      3,
		RenewInterval: renew,
	}, server.Client(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClientRequiresAppID(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{}, nil, nil)
	require.ErrorIs(t, err, ErrMissingAppID)
}

func TestLoginRejectsInvalidCredentialsWithoutNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 2, 0)
	err := client.Login(context.Background(), domain.Credentials{Email: "user@example.com"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Zero(t, calls.Load())
}

func TestLoginV2FillsPoolAndSignsLaterCalls(t *testing.T) {
	t.Parallel()

	var upgrades atomic.Int32
	var mu sync.Mutex
	secrets := map[string]uint64{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		switch r.URL.Path {
		case "/api/1.5/user/get_session_token.php":
			assert.Equal(t, "app-42", query.Get("application_id"))
			assert.Equal(t, "user@example.com", query.Get("email"))
			assert.Equal(t, "hunter2", query.Get("password"))
			assert.Equal(t, LoginSignature("user@example.comhunter2", "app-42", "key-secret"), query.Get("signature"))
			assert.Empty(t, query.Get("session_token"))
			_, _ = w.Write([]byte(`{"response":{"result":"Success","session_token":"static-1"}}`))
		case "/api/1.5/user/renew_session_token.php":
			assert.Equal(t, "2", query.Get("token_version"))
			// Upgrades race the first admitted token, so either token may sign.
			assert.NotEmpty(t, query.Get("session_token"))
			n := upgrades.Add(1)
			token := fmt.Sprintf("pooled-%d", n)
			mu.Lock()
			secrets[token] = uint64(1000 + n)
			mu.Unlock()
			_, _ = fmt.Fprintf(w, `{"response":{"result":"Success","session_token":%q,"secret_key":%d,"time":"1400000000.5"}}`, token, 1000+n)
		case "/api/1.5/file/get_info.php":
			token := query.Get("session_token")
			mu.Lock()
			secret, ok := secrets[token]
			mu.Unlock()
			assert.True(t, ok, "unexpected token %q", token)
			assert.Equal(t, expectedSignature(r, secret, "1400000000.5"), query.Get("signature"))
			_, _ = w.Write([]byte(`{"response":{"result":"Success","file_info":{"quickkey":"abc123","filename":"photo.png","size":"1024","hash":"AABB","privacy":"public"}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 2, 0)
	require.NoError(t, client.Login(context.Background(), domain.Credentials{Email: "user@example.com", Password: "hunter2"}))
	assert.Equal(t, int32(3), upgrades.Load())
	assert.Equal(t, 3, client.Dispatcher().Pool().Len())
	assert.Equal(t, "static-1", client.Dispatcher().StaticToken())

	info, err := client.GetFileInfo(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, domain.FileInfo{QuickKey: "abc123", Filename: "photo.png", Size: 1024, Hash: "aabb", Privacy: "public"}, info)
}

func TestLoginSucceedsWhenReplenishFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/1.5/user/get_session_token.php":
			assert.Equal(t, "tok", r.URL.Query().Get("fb_access_token"))
			_, _ = w.Write([]byte(`{"response":{"result":"Success","session_token":"static-1"}}`))
		case "/api/1.5/user/renew_session_token.php":
			_, _ = w.Write([]byte(`{"response":{"result":"Error","error":105,"message":"Session token is missing or invalid"}}`))
		case "/api/1.5/upload/instant.php":
			assert.Equal(t, "static-1", r.URL.Query().Get("session_token"))
			assert.Empty(t, r.URL.Query().Get("signature"))
			_, _ = w.Write([]byte(`{"response":{"result":"Success","quickkey":"new123"}}`))
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 2, 0)
	require.NoError(t, client.Login(context.Background(), domain.Credentials{AccessToken: "tok"}))
	assert.Equal(t, 0, client.Dispatcher().Pool().Len())

	key, err := client.InstantUpload(context.Background(), "photo.png", 1024, "ab")
	require.NoError(t, err)
	assert.Equal(t, "new123", key)
}

func TestLoginReturnsAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "otok", r.URL.Query().Get("tw_oauth_token"))
		assert.Equal(t, "osecret", r.URL.Query().Get("tw_oauth_token_secret"))
		_, _ = w.Write([]byte(`{"response":{"result":"Error","error":107,"message":"The Credentials you entered are invalid"}}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 2, 0)
	err := client.Login(context.Background(), domain.Credentials{OAuthToken: "otok", OAuthSecret: "osecret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
	assert.Equal(t, "The Credentials you entered are invalid", Message(err))

	_, err = client.ActionToken(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLoginV1RenewsStaticTokenUntilClosed(t *testing.T) {
	var renewals atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/1.5/user/get_session_token.php":
			_, _ = w.Write([]byte(`{"response":{"result":"Success","session_token":"static-0"}}`))
		case "/api/1.5/user/renew_session_token.php":
			n := renewals.Add(1)
			_, _ = fmt.Fprintf(w, `{"response":{"result":"Success","session_token":"static-%d"}}`, n)
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 1, 5*time.Millisecond)
	require.NoError(t, client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"}))
	require.Eventually(t, func() bool { return renewals.Load() >= 2 }, time.Second, time.Millisecond)
	assert.NotEqual(t, "static-0", client.Dispatcher().StaticToken())
	assert.Equal(t, 0, client.Dispatcher().Pool().Len())

	require.NoError(t, client.Close())
	stopped := renewals.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, renewals.Load())
}

func TestRenewalStopsWhenLoginContextEnds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"result":"Success","session_token":"static-0"}}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 1, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, client.Login(ctx, domain.Credentials{Email: "a@b.c", Password: "pw"}))

	client.mu.Lock()
	done := client.renewDone
	client.mu.Unlock()
	require.NotNil(t, done)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("renewal loop did not stop")
	}
}

func TestActionTokenIsFetchedOncePerLogin(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/1.5/user/get_session_token.php":
			_, _ = w.Write([]byte(`{"response":{"result":"Success","session_token":"static-0"}}`))
		case "/api/1.5/user/get_action_token.php":
			assert.Equal(t, "upload", r.URL.Query().Get("type"))
			n := fetches.Add(1)
			_, _ = fmt.Fprintf(w, `{"response":{"result":"Success","action_token":"action-%d"}}`, n)
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 1, time.Hour)
	_, err := client.ActionToken(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"}))

	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := client.ActionToken(context.Background())
			assert.NoError(t, err)
			results[i] = token
		}()
	}
	wg.Wait()

	for _, token := range results {
		assert.Equal(t, "action-1", token)
	}
	assert.Equal(t, int32(1), fetches.Load())

	require.NoError(t, client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"}))
	token, err := client.ActionToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "action-2", token)
}

func TestFileCalls(t *testing.T) {
	t.Parallel()

	var privacyCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		switch r.URL.Path {
		case "/api/1.5/upload/instant.php":
			assert.Equal(t, "photo.png", query.Get("filename"))
			assert.Equal(t, "1024", query.Get("size"))
			assert.Equal(t, "abcdef", query.Get("hash"))
			_, _ = w.Write([]byte(`{"response":{"result":"Success"}}`))
		case "/api/1.5/file/update.php":
			assert.Equal(t, "new123", query.Get("quick_key"))
			assert.Equal(t, "private", query.Get("privacy"))
			privacyCalls.Add(1)
			_, _ = w.Write([]byte(`{"response":{"result":"Success","new_key":"no"}}`))
		case "/api/1.5/file/get_info.php":
			_, _ = w.Write([]byte(`{"response":{"result":"Success","file_info":{"filename":"x.bin","size":2048,"hash":"ff"}}}`))
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, 1, time.Hour)

	key, err := client.InstantUpload(context.Background(), "photo.png", 1024, "abcdef")
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, client.SetPrivate(context.Background(), "new123"))
	assert.Equal(t, int32(1), privacyCalls.Load())

	info, err := client.GetFileInfo(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Equal(t, "zzz", info.QuickKey)
	assert.Equal(t, uint64(2048), info.Size)
}
