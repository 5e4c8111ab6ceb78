package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kalshi-go/kalshi/auth"
	"github.com/kalshi-go/kalshi/internal/kalshitest"
	"github.com/stretchr/testify/require"
)

func TestHeaderAssembler(t *testing.T) {
	t.Parallel()

	const ts int64 = 1700000000000
	signer, err := auth.NewSigner(kalshitest.Credential(t), auth.DefaultScheme)
	require.NoError(t, err)
	assembler := auth.NewHeaderAssembler(signer, auth.FixedMillis(ts))

	t.Run("public route", func(t *testing.T) {
		t.Parallel()
		h, err := assembler.Headers(http.MethodGet, "/trade-api/v2/markets", false)
		require.NoError(t, err)
		require.Nil(t, h, "public routes carry no authentication headers")
	})

	t.Run("authenticated route", func(t *testing.T) {
		t.Parallel()
		h, err := assembler.Headers(http.MethodGet, "/trade-api/v2/portfolio/balance", true)
		require.NoError(t, err)
		require.Equal(t, kalshitest.KeyID, h.Get(auth.HeaderAccessKey))
		require.Equal(t, strconv.FormatInt(ts, 10), h.Get(auth.HeaderAccessTimestamp))

		headerTS, err := strconv.ParseInt(h.Get(auth.HeaderAccessTimestamp), 10, 64)
		require.NoError(t, err)
		require.NoError(t, auth.Verify(&kalshitest.Key().PublicKey, auth.DefaultScheme, headerTS, http.MethodGet, "/trade-api/v2/portfolio/balance", h.Get(auth.HeaderAccessSignature)),
			"signature should verify against the timestamp carried in the header")
	})

	t.Run("no credential", func(t *testing.T) {
		t.Parallel()
		empty := auth.NewHeaderAssembler(nil, nil)

		h, err := empty.Headers(http.MethodGet, "/trade-api/v2/markets", false)
		require.NoError(t, err, "public routes work without a credential")
		require.Nil(t, h)

		_, err = empty.Headers(http.MethodGet, "/trade-api/v2/portfolio/balance", true)
		require.ErrorIs(t, err, auth.ErrCredential)
	})
}

type steppingClock struct {
	ms atomic.Int64
}

func (c *steppingClock) Now() time.Time {
	return time.UnixMilli(c.ms.Add(1))
}

func TestHeaderAssemblerFreshTimestamps(t *testing.T) {
	t.Parallel()

	signer, err := auth.NewSigner(kalshitest.Credential(t), auth.DefaultScheme)
	require.NoError(t, err)
	clock := &steppingClock{}
	clock.ms.Store(1700000000000)
	assembler := auth.NewHeaderAssembler(signer, clock)

	first, err := assembler.Envelope(http.MethodGet, "/trade-api/v2/portfolio/balance")
	require.NoError(t, err)
	second, err := assembler.Envelope(http.MethodGet, "/trade-api/v2/portfolio/balance")
	require.NoError(t, err)

	require.Equal(t, int64(1700000000001), first.Timestamp, "clock should be read exactly once per envelope")
	require.Equal(t, int64(1700000000002), second.Timestamp)
	require.NotEqual(t, first.Signature, second.Signature)
}

func TestTransport(t *testing.T) {
	t.Parallel()

	var verified atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := kalshitest.VerifyRequest(r); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		verified.Store(true)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	signer, err := auth.NewSigner(kalshitest.Credential(t), auth.DefaultScheme)
	require.NoError(t, err)
	client := auth.NewHTTPClient(signer, 5*time.Second)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/trade-api/v2/portfolio/balance?depth=3", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err, "request should succeed")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, verified.Load(), "server should have verified the signature")
	require.Empty(t, req.Header.Get(auth.HeaderAccessSignature), "the caller's request must not be modified")

	t.Run("without credential", func(t *testing.T) {
		client := &http.Client{Transport: auth.NewTransport(nil, nil)}
		_, err := client.Get(srv.URL + "/trade-api/v2/portfolio/balance")
		require.ErrorIs(t, err, auth.ErrCredential)
	})
}

func TestFixedClock(t *testing.T) {
	t.Parallel()

	at := time.Date(2023, 11, 14, 22, 13, 20, 123456789, time.UTC)
	signer, err := auth.NewSigner(kalshitest.Credential(t), auth.DefaultScheme)
	require.NoError(t, err)

	env, err := auth.NewHeaderAssembler(signer, auth.FixedClock(at)).Envelope(http.MethodGet, "/trade-api/v2/markets")
	require.NoError(t, err)
	require.Equal(t, at.UnixMilli(), env.Timestamp, "timestamps are signed at millisecond precision")
	require.Equal(t, int64(1700000000123), env.Timestamp)
}
