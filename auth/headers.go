package auth

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	HeaderAccessKey       = "KALSHI-ACCESS-KEY"
	HeaderAccessTimestamp = "KALSHI-ACCESS-TIMESTAMP"
	HeaderAccessSignature = "KALSHI-ACCESS-SIGNATURE"
)

// Envelope is the signed material for one request attempt. It is produced
// fresh for every attempt and never reused.
type Envelope struct {
	KeyID     string
	Timestamp int64
	Method    string
	Path      string
	Signature string
}

// Apply writes the three authentication headers into h.
func (e Envelope) Apply(h http.Header) {
	h.Set(HeaderAccessKey, e.KeyID)
	h.Set(HeaderAccessTimestamp, strconv.FormatInt(e.Timestamp, 10))
	h.Set(HeaderAccessSignature, e.Signature)
}

// HeaderAssembler produces the authentication headers for a request.
type HeaderAssembler struct {
	signer *Signer
	clock  Clock
}

// NewHeaderAssembler creates a HeaderAssembler. A nil signer is allowed and
// makes every authenticated request fail with ErrCredential, while public
// requests keep working. A nil clock selects SystemClock.
func NewHeaderAssembler(signer *Signer, clock Clock) *HeaderAssembler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &HeaderAssembler{signer: signer, clock: clock}
}

// Envelope reads the clock once and signs method and path with that
// timestamp.
func (a *HeaderAssembler) Envelope(method, path string) (Envelope, error) {
	if a == nil || a.signer == nil {
		return Envelope{}, fmt.Errorf("%w: request requires authentication but no credential is configured", ErrCredential)
	}

	ts := a.clock.Now().UnixMilli()
	signature, err := a.signer.Sign(ts, method, path)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		KeyID:     a.signer.KeyID(),
		Timestamp: ts,
		Method:    method,
		Path:      path,
		Signature: signature,
	}, nil
}

// Headers returns the authentication headers for a request, or nil when
// requiresAuth is false. Public requests never touch the credential.
func (a *HeaderAssembler) Headers(method, path string, requiresAuth bool) (http.Header, error) {
	if !requiresAuth {
		return nil, nil
	}
	env, err := a.Envelope(method, path)
	if err != nil {
		return nil, err
	}
	h := make(http.Header, 3)
	env.Apply(h)
	return h, nil
}
