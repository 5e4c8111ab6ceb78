package kalshi_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kalshi-go/kalshi"
	"github.com/kalshi-go/kalshi/auth"
	"github.com/kalshi-go/kalshi/internal/kalshitest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type echoResponse struct {
	Method string            `json:"method"`
	Path   string            `json:"path"`
	Query  string            `json:"query"`
	Body   json.RawMessage   `json:"body"`
	Header map[string]string `json:"header"`
}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	if len(body) == 0 {
		body = []byte("null")
	}
	header := map[string]string{}
	for _, name := range []string{auth.HeaderAccessKey, auth.HeaderAccessTimestamp, auth.HeaderAccessSignature, "Content-Type", "Accept", "User-Agent"} {
		if v := r.Header.Get(name); v != "" {
			header[name] = v
		}
	}
	kalshitest.WriteJSON(w, http.StatusOK, echoResponse{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Body:   body,
		Header: header,
	})
}

func TestExecute(t *testing.T) {
	t.Parallel()

	const ts int64 = 1700000000000
	client := newTestClient(t, http.HandlerFunc(echoHandler),
		kalshi.WithClock(auth.FixedMillis(ts)),
		kalshi.WithUserAgent("kalshi-test"),
	)
	ctx := context.Background()

	t.Run("public route carries no authentication headers", func(t *testing.T) {
		t.Parallel()
		res, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteGetMarkets, kalshi.Request{})
		require.NoError(t, err)
		require.Equal(t, http.MethodGet, res.Method)
		require.Equal(t, "/trade-api/v2/markets", res.Path)
		require.NotContains(t, res.Header, auth.HeaderAccessKey)
		require.NotContains(t, res.Header, auth.HeaderAccessTimestamp)
		require.NotContains(t, res.Header, auth.HeaderAccessSignature)
		require.Equal(t, "application/json", res.Header["Accept"])
		require.Equal(t, "kalshi-test", res.Header["User-Agent"])
	})

	t.Run("authenticated route is signed", func(t *testing.T) {
		t.Parallel()
		res, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteGetBalance, kalshi.Request{})
		require.NoError(t, err)
		require.Equal(t, kalshitest.KeyID, res.Header[auth.HeaderAccessKey])
		require.Equal(t, "1700000000000", res.Header[auth.HeaderAccessTimestamp])
		require.NoError(t, auth.Verify(&kalshitest.Key().PublicKey, auth.DefaultScheme, ts, http.MethodGet, "/trade-api/v2/portfolio/balance", res.Header[auth.HeaderAccessSignature]))
	})

	t.Run("query is not part of the signature", func(t *testing.T) {
		t.Parallel()
		res, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteGetFills, kalshi.Request{
			Query: kalshi.FillsQuery{Ticker: kalshi.Ptr("KXHIGHNY-24JAN01-T60"), Limit: kalshi.Ptr(5)},
		})
		require.NoError(t, err)
		require.Equal(t, "limit=5&ticker=KXHIGHNY-24JAN01-T60", res.Query)
		require.NoError(t, auth.Verify(&kalshitest.Key().PublicKey, auth.DefaultScheme, ts, http.MethodGet, "/trade-api/v2/portfolio/fills", res.Header[auth.HeaderAccessSignature]))
	})

	t.Run("unset query fields are omitted", func(t *testing.T) {
		t.Parallel()
		res, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteGetMarkets, kalshi.Request{
			Query: kalshi.MarketsQuery{},
		})
		require.NoError(t, err)
		require.Empty(t, res.Query)
	})

	t.Run("path parameters and body", func(t *testing.T) {
		t.Parallel()
		res, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteDecreaseOrder, kalshi.Request{
			PathParams: map[string]string{"order_id": "ord/1"},
			Body:       kalshi.DecreaseOrderRequest{ReduceBy: kalshi.Ptr(int64(3))},
		})
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, res.Method)
		require.Equal(t, "/trade-api/v2/portfolio/orders/ord%2F1/decrease", res.Path)
		require.JSONEq(t, `{"reduce_by":3}`, string(res.Body))
		require.Equal(t, "application/json", res.Header["Content-Type"])
		require.NoError(t, auth.Verify(&kalshitest.Key().PublicKey, auth.DefaultScheme, ts, http.MethodPost, "/trade-api/v2/portfolio/orders/ord%2F1/decrease", res.Header[auth.HeaderAccessSignature]))
	})

	t.Run("missing path parameter", func(t *testing.T) {
		t.Parallel()
		_, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteGetOrder, kalshi.Request{})
		require.True(t, kalshi.IsKind(err, kalshi.KindSerialization), "expected serialization error, got %v", err)
	})

	t.Run("unencodable body", func(t *testing.T) {
		t.Parallel()
		_, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteCreateOrder, kalshi.Request{Body: make(chan int)})
		require.True(t, kalshi.IsKind(err, kalshi.KindSerialization), "expected serialization error, got %v", err)
	})

	t.Run("unencodable query", func(t *testing.T) {
		t.Parallel()
		_, err := kalshi.Execute[echoResponse](ctx, client, kalshi.RouteGetMarkets, kalshi.Request{Query: 42})
		require.True(t, kalshi.IsKind(err, kalshi.KindSerialization), "expected serialization error, got %v", err)
	})
}

func TestExecuteWithoutCredential(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		echoHandler(w, r)
	})
	client := newTestClient(t, srv)
	public, err := kalshi.New(kalshi.WithBaseURL(client.BaseURL()))
	require.NoError(t, err)

	_, err = kalshi.Execute[echoResponse](context.Background(), public, kalshi.RouteGetMarkets, kalshi.Request{})
	require.NoError(t, err, "public routes work without a credential")

	_, err = kalshi.Execute[echoResponse](context.Background(), public, kalshi.RouteGetBalance, kalshi.Request{})
	require.True(t, kalshi.IsKind(err, kalshi.KindCredential), "expected credential error, got %v", err)
	require.Equal(t, int32(1), calls.Load(), "nothing must be sent when signing fails")
}

func TestExecuteFreshTimestampPerCall(t *testing.T) {
	t.Parallel()

	var (
		mu         sync.Mutex
		timestamps []string
	)
	client := newTestClient(t, kalshitest.RequireSignature(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		timestamps = append(timestamps, r.Header.Get(auth.HeaderAccessTimestamp))
		mu.Unlock()
		kalshitest.WriteJSON(w, http.StatusOK, kalshi.GetBalanceResponse{Balance: 100})
	})), kalshi.WithClock(&tickingClock{ms: 1700000000000}))

	for range 3 {
		res, err := client.GetBalance(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(100), res.Balance)
	}
	require.Equal(t, []string{"1700000000001", "1700000000002", "1700000000003"}, timestamps)
}

// tickingClock advances one millisecond on every read.
type tickingClock struct {
	mu sync.Mutex
	ms int64
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ms++
	return time.UnixMilli(c.ms)
}

func TestExecuteEmptyBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	require.NoError(t, client.DeleteOrderGroup(context.Background(), "grp-1"))
}

func TestExecuteLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/balance") {
			kalshitest.WriteJSON(w, http.StatusForbidden, map[string]any{"error": map[string]string{"code": "forbidden", "message": "nope"}})
			return
		}
		echoHandler(w, r)
	}), kalshi.WithLogger(zap.New(core)))

	_, err := kalshi.Execute[echoResponse](context.Background(), client, kalshi.RouteGetMarkets, kalshi.Request{})
	require.NoError(t, err)
	_, err = client.GetBalance(context.Background())
	require.Error(t, err)

	require.Equal(t, 1, logs.FilterMessage("request completed").Len())
	failures := logs.FilterMessage("request failed").All()
	require.Len(t, failures, 1)
	require.Equal(t, string(kalshi.KindAuthRejected), failures[0].ContextMap()["kind"])

	for _, entry := range logs.All() {
		for k, v := range entry.ContextMap() {
			s, ok := v.(string)
			if !ok {
				continue
			}
			require.NotContains(t, strings.ToLower(k), "signature")
			require.NotContains(t, s, kalshitest.Key().D.String())
		}
	}
}

func TestExecuteRejectedSignature(t *testing.T) {
	t.Parallel()

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemData := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(other)})
	cred, err := auth.NewCredential(kalshitest.KeyID, pemData)
	require.NoError(t, err)

	client := newTestClient(t, kalshitest.RequireSignature(http.HandlerFunc(echoHandler)), kalshi.WithCredential(cred))
	_, err = client.GetBalance(context.Background())
	require.True(t, kalshi.IsKind(err, kalshi.KindAuthRejected), "expected auth rejected, got %v", err)

	var e *kalshi.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "authentication_error", e.Code)
	require.False(t, kalshi.IsRetryable(err))
}
