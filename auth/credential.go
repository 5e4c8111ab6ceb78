package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

var (
	// ErrCredential is wrapped by every error caused by missing or unusable
	// credential material.
	ErrCredential = errors.New("invalid credential")

	// ErrSigning is wrapped by every error raised while producing a
	// signature from otherwise valid credential material.
	ErrSigning = errors.New("signing failed")
)

// Credential pairs an API key id with the RSA private key registered for it.
// The private key never leaves this type; callers can only sign with it
// through a Signer, or obtain the public half.
type Credential struct {
	keyID string
	key   *rsa.PrivateKey
}

// NewCredential parses a PEM encoded RSA private key (PKCS#1 or PKCS#8)
// and binds it to keyID.
func NewCredential(keyID string, pemData []byte) (*Credential, error) {
	if strings.TrimSpace(keyID) == "" {
		return nil, fmt.Errorf("%w: key id is empty", ErrCredential)
	}
	if len(pemData) == 0 {
		return nil, fmt.Errorf("%w: private key is empty", ErrCredential)
	}

	parsed, err := jwk.ParseKey(pemData, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse private key: %w", ErrCredential, err)
	}

	var raw any
	if err := jwk.Export(parsed, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to export private key: %w", ErrCredential, err)
	}

	key, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected an RSA private key, got %T", ErrCredential, raw)
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: private key failed validation: %w", ErrCredential, err)
	}

	return &Credential{keyID: keyID, key: key}, nil
}

// LoadCredential reads a PEM file from path and calls NewCredential.
func LoadCredential(path, keyID string) (*Credential, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: private key path is empty", ErrCredential)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read private key file: %w", ErrCredential, err)
	}
	defer clear(data)
	return NewCredential(keyID, data)
}

// KeyID returns the API key id.
func (c *Credential) KeyID() string {
	if c == nil {
		return ""
	}
	return c.keyID
}

// Public returns the public half of the key, or nil once the credential
// has been destroyed.
func (c *Credential) Public() *rsa.PublicKey {
	if c == nil || c.key == nil {
		return nil
	}
	pub := c.key.PublicKey
	return &pub
}

// Destroy overwrites the private key material. A destroyed credential can
// no longer sign. Destroy must not race with in-flight requests.
func (c *Credential) Destroy() {
	if c == nil || c.key == nil {
		return
	}
	zero(c.key.D)
	for _, p := range c.key.Primes {
		zero(p)
	}
	zero(c.key.Precomputed.Dp)
	zero(c.key.Precomputed.Dq)
	zero(c.key.Precomputed.Qinv)
	c.key = nil
}

func (c *Credential) String() string {
	if c == nil {
		return "auth.Credential(nil)"
	}
	return "auth.Credential(key_id=" + c.keyID + ")"
}

func (c *Credential) GoString() string {
	return c.String()
}

func (c *Credential) privateKey() (*rsa.PrivateKey, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: credential is nil", ErrCredential)
	}
	if c.key == nil {
		return nil, fmt.Errorf("%w: credential has been destroyed", ErrCredential)
	}
	return c.key, nil
}

func zero(n *big.Int) {
	if n == nil {
		return
	}
	words := n.Bits()
	clear(words)
	n.SetInt64(0)
}
