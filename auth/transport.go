package auth

import (
	"fmt"
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that signs every request passing
// through it. It serves requests built by hand for endpoints that have no
// typed binding.
type Transport struct {
	// Transport is the underlying RoundTripper.
	// If nil, http.DefaultTransport is used.
	Transport http.RoundTripper

	Assembler *HeaderAssembler
}

// NewTransport creates a Transport that signs with signer.
func NewTransport(signer *Signer, clock Clock) *Transport {
	return &Transport{
		Transport: http.DefaultTransport,
		Assembler: NewHeaderAssembler(signer, clock),
	}
}

// NewHTTPClient returns an *http.Client whose requests are signed.
// A non-positive timeout leaves the client without one.
func NewHTTPClient(signer *Signer, timeout time.Duration) *http.Client {
	client := &http.Client{Transport: NewTransport(signer, nil)}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return client
}

// RoundTrip implements http.RoundTripper by signing the request before sending it.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	env, err := t.Assembler.Envelope(req.Method, req.URL.EscapedPath())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	// RoundTrippers must not modify the request they were handed
	signed := req.Clone(req.Context())
	env.Apply(signed.Header)

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return transport.RoundTrip(signed)
}
