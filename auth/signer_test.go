package auth_test

import (
	"encoding/base64"
	"testing"

	"github.com/kalshi-go/kalshi/auth"
	"github.com/kalshi-go/kalshi/internal/kalshitest"
	"github.com/stretchr/testify/require"
)

func TestCanonicalString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		Name      string
		Timestamp int64
		Method    string
		Path      string
		Expected  string
	}{
		{Name: "basic", Timestamp: 1700000000000, Method: "GET", Path: "/markets", Expected: "1700000000000GET/markets"},
		{Name: "lower case method", Timestamp: 1700000000000, Method: "post", Path: "/trade-api/v2/portfolio/orders", Expected: "1700000000000POST/trade-api/v2/portfolio/orders"},
		{Name: "query is stripped", Timestamp: 1, Method: "GET", Path: "/trade-api/v2/markets?limit=10", Expected: "1GET/trade-api/v2/markets"},
		{Name: "escaped path is kept", Timestamp: 1, Method: "DELETE", Path: "/trade-api/v2/api_keys/a%2Fb", Expected: "1DELETE/trade-api/v2/api_keys/a%2Fb"},
	}
	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.Expected, auth.CanonicalString(tc.Timestamp, tc.Method, tc.Path))
		})
	}
}

func TestSigner(t *testing.T) {
	t.Parallel()

	const (
		ts     int64 = 1700000000000
		method       = "GET"
		path         = "/markets"
	)
	pub := &kalshitest.Key().PublicKey

	for _, scheme := range []auth.Scheme{auth.SchemeRSAPSSSHA256, auth.SchemeRSAPKCS1v15SHA256} {
		t.Run(string(scheme), func(t *testing.T) {
			t.Parallel()

			signer, err := auth.NewSigner(kalshitest.Credential(t), scheme)
			require.NoError(t, err, "NewSigner should succeed")
			require.Equal(t, scheme, signer.Scheme())

			sig, err := signer.Sign(ts, method, path)
			require.NoError(t, err, "Sign should succeed")

			raw, err := base64.StdEncoding.DecodeString(sig)
			require.NoError(t, err, "signature should be standard base64")
			require.Len(t, raw, 256, "2048-bit RSA signatures are 256 bytes")

			require.NoError(t, auth.Verify(pub, scheme, ts, method, path, sig), "signature should verify")

			t.Run("timestamp mutated", func(t *testing.T) {
				require.Error(t, auth.Verify(pub, scheme, ts+1, method, path, sig))
			})
			t.Run("method mutated", func(t *testing.T) {
				require.Error(t, auth.Verify(pub, scheme, ts, "POST", path, sig))
			})
			t.Run("path mutated", func(t *testing.T) {
				require.Error(t, auth.Verify(pub, scheme, ts, method, "/market", sig))
			})
			t.Run("query does not matter", func(t *testing.T) {
				require.NoError(t, auth.Verify(pub, scheme, ts, method, path+"?cursor=abc", sig))
			})
		})
	}

	t.Run("default scheme is RSA-PSS", func(t *testing.T) {
		t.Parallel()
		signer, err := auth.NewSigner(kalshitest.Credential(t), "")
		require.NoError(t, err)
		require.Equal(t, auth.SchemeRSAPSSSHA256, signer.Scheme())

		sig, err := signer.Sign(ts, method, path)
		require.NoError(t, err)
		require.Error(t, auth.Verify(pub, auth.SchemeRSAPKCS1v15SHA256, ts, method, path, sig), "PSS signature must not verify as PKCS#1 v1.5")
	})

	t.Run("unknown scheme", func(t *testing.T) {
		t.Parallel()
		_, err := auth.NewSigner(kalshitest.Credential(t), "hmac-sha256")
		require.ErrorIs(t, err, auth.ErrSigning)
	})

	t.Run("nil credential", func(t *testing.T) {
		t.Parallel()
		_, err := auth.NewSigner(nil, auth.DefaultScheme)
		require.ErrorIs(t, err, auth.ErrCredential)
	})

	t.Run("malformed signature", func(t *testing.T) {
		t.Parallel()
		require.Error(t, auth.Verify(pub, auth.DefaultScheme, ts, method, path, "!!not base64!!"))
	})
}
