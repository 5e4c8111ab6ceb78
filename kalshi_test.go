package kalshi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kalshi-go/kalshi"
	"github.com/kalshi-go/kalshi/internal/kalshitest"
	"github.com/stretchr/testify/require"
)

// newTestClient starts srv with handler and returns a client pointed at it
// that carries the shared test credential.
func newTestClient(t *testing.T, handler http.Handler, options ...kalshi.Option) *kalshi.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	options = append([]kalshi.Option{
		kalshi.WithBaseURL(srv.URL),
		kalshi.WithCredential(kalshitest.Credential(t)),
		kalshi.WithTimeout(5 * time.Second),
	}, options...)

	client, err := kalshi.New(options...)
	require.NoError(t, err, "kalshi.New should succeed")
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		client, err := kalshi.New()
		require.NoError(t, err)
		require.Equal(t, kalshi.ProductionURL, client.BaseURL())
		require.False(t, client.Authenticated())
	})
	t.Run("demo", func(t *testing.T) {
		t.Parallel()
		client, err := kalshi.New(kalshi.WithDemo())
		require.NoError(t, err)
		require.Equal(t, kalshi.DemoURL, client.BaseURL())
	})
	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()
		client, err := kalshi.New(kalshi.WithBaseURL("https://example.com/"))
		require.NoError(t, err)
		require.Equal(t, "https://example.com", client.BaseURL())
	})
	t.Run("credential", func(t *testing.T) {
		t.Parallel()
		client, err := kalshi.New(kalshi.WithCredential(kalshitest.Credential(t)))
		require.NoError(t, err)
		require.True(t, client.Authenticated())
	})

	for _, bad := range []string{"ftp://example.com", "https://", "https://example.com/?x=1", "://nope"} {
		t.Run("invalid base URL "+bad, func(t *testing.T) {
			t.Parallel()
			_, err := kalshi.New(kalshi.WithBaseURL(bad))
			require.Error(t, err)
		})
	}

	t.Run("unknown scheme", func(t *testing.T) {
		t.Parallel()
		_, err := kalshi.New(kalshi.WithCredential(kalshitest.Credential(t)), kalshi.WithScheme("nope"))
		require.Error(t, err)
	})

	t.Run("caller's HTTP client is not modified", func(t *testing.T) {
		t.Parallel()
		hc := &http.Client{}
		_, err := kalshi.New(kalshi.WithHTTPClient(hc))
		require.NoError(t, err)
		require.Zero(t, hc.Timeout, "the default timeout must be applied to a copy")
	})
}

func TestClientClose(t *testing.T) {
	t.Parallel()

	cred := kalshitest.Credential(t)
	client, err := kalshi.New(kalshi.WithCredential(cred))
	require.NoError(t, err)
	require.NoError(t, client.Close())
	require.Nil(t, cred.Public(), "Close should destroy the credential")
}
