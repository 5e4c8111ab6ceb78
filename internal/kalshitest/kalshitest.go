// Package kalshitest contains helpers shared by the tests of this module.
package kalshitest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/kalshi-go/kalshi/auth"
	"github.com/stretchr/testify/require"
)

const KeyID = "a952bcbe-ec3b-4b5b-b8f9-11dae589608c"

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
)

// Key returns an RSA key shared by every test in the process.
func Key() *rsa.PrivateKey {
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic("failed to generate RSA key: " + err.Error())
		}
		key = k
	})
	return key
}

// PKCS1PEM encodes the shared key as "RSA PRIVATE KEY".
func PKCS1PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(Key()),
	})
}

// PKCS8PEM encodes the shared key as "PRIVATE KEY".
func PKCS8PEM() []byte {
	der, err := x509.MarshalPKCS8PrivateKey(Key())
	if err != nil {
		panic("failed to marshal PKCS#8 key: " + err.Error())
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// WritePEM writes the PKCS#1 encoding of the shared key into a temporary
// file and returns its path.
func WritePEM(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kalshi.pem")
	require.NoError(t, os.WriteFile(path, PKCS1PEM(), 0o600), "writing PEM file should succeed")
	return path
}

// Credential returns a credential backed by the shared key.
func Credential(t testing.TB) *auth.Credential {
	t.Helper()
	cred, err := auth.NewCredential(KeyID, PKCS1PEM())
	require.NoError(t, err, "creating credential should succeed")
	return cred
}

// VerifyRequest checks the authentication headers of r the way the
// exchange does.
func VerifyRequest(r *http.Request) error {
	ts, err := strconv.ParseInt(r.Header.Get(auth.HeaderAccessTimestamp), 10, 64)
	if err != nil {
		return err
	}
	return auth.Verify(&Key().PublicKey, auth.DefaultScheme, ts, r.Method, r.URL.EscapedPath(), r.Header.Get(auth.HeaderAccessSignature))
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RequireSignature wraps h so that requests failing VerifyRequest are
// answered with 401 and the exchange's error body instead of reaching h.
func RequireSignature(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := VerifyRequest(r); err != nil {
			WriteJSON(w, http.StatusUnauthorized, map[string]any{
				"error": map[string]string{
					"code":    "authentication_error",
					"message": err.Error(),
				},
			})
			return
		}
		h.ServeHTTP(w, r)
	})
}
