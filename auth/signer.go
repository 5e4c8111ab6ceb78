package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jws/jwsbb"
)

// Scheme names a signature algorithm. The exchange does not negotiate the
// scheme, so a Signer is pinned to exactly one.
type Scheme string

const (
	// SchemeRSAPSSSHA256 is RSA-PSS over SHA-256 with a salt as long as the
	// digest. This is the scheme the exchange verifies.
	SchemeRSAPSSSHA256 Scheme = "rsa-pss-sha256"

	// SchemeRSAPKCS1v15SHA256 is RSASSA-PKCS1-v1_5 over SHA-256. It is only
	// used when explicitly requested.
	SchemeRSAPKCS1v15SHA256 Scheme = "rsa-v1_5-sha256"

	DefaultScheme = SchemeRSAPSSSHA256
)

func (s Scheme) jwsAlgorithm() (string, error) {
	switch s {
	case SchemeRSAPSSSHA256:
		return "PS256", nil
	case SchemeRSAPKCS1v15SHA256:
		return "RS256", nil
	default:
		return "", fmt.Errorf("unsupported signature scheme %q", string(s))
	}
}

// CanonicalString builds the string that gets signed for a request:
// the decimal millisecond timestamp, the upper-cased method and the path.
// Anything from the first '?' onwards is not part of the signed path.
func CanonicalString(timestamp int64, method, path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(timestamp, 10))
	sb.WriteString(strings.ToUpper(method))
	sb.WriteString(path)
	return sb.String()
}

// Signer signs canonical request strings with a Credential.
// A Signer holds no mutable state and is safe for concurrent use.
type Signer struct {
	cred      *Credential
	scheme    Scheme
	algorithm string
}

// NewSigner creates a Signer for cred. An empty scheme selects DefaultScheme.
func NewSigner(cred *Credential, scheme Scheme) (*Signer, error) {
	if cred == nil {
		return nil, fmt.Errorf("%w: credential is nil", ErrCredential)
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	alg, err := scheme.jwsAlgorithm()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return &Signer{cred: cred, scheme: scheme, algorithm: alg}, nil
}

func (s *Signer) Scheme() Scheme {
	return s.scheme
}

func (s *Signer) KeyID() string {
	return s.cred.KeyID()
}

// Sign returns the base64 encoded signature over
// CanonicalString(timestamp, method, path).
func (s *Signer) Sign(timestamp int64, method, path string) (string, error) {
	key, err := s.cred.privateKey()
	if err != nil {
		return "", err
	}

	payload := []byte(CanonicalString(timestamp, method, path))
	signature, err := jwsbb.Sign(key, s.algorithm, payload, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign with algorithm %s: %w", ErrSigning, s.algorithm, err)
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// Verify checks a base64 encoded signature produced by Sign against the
// public key. It is the check the exchange performs on its side.
func Verify(pub *rsa.PublicKey, scheme Scheme, timestamp int64, method, path, signature string) error {
	if pub == nil {
		return fmt.Errorf("%w: public key is nil", ErrCredential)
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	alg, err := scheme.jwsAlgorithm()
	if err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	payload := []byte(CanonicalString(timestamp, method, path))
	if err := jwsbb.Verify(pub, alg, payload, raw); err != nil {
		return fmt.Errorf("cryptographic verification failed with algorithm %s: %w", alg, err)
	}
	return nil
}
