// Package kalshi is a client for the Kalshi trading exchange REST API.
//
// A Client dispatches typed requests described by a Route, signing those
// that require authentication, and classifies every failure into one of
// a closed set of error kinds (see Kind). Typed bindings for the
// exchange's endpoints are methods on Client; anything else can be called
// through Execute with a Route of your own.
//
//	cred, err := auth.LoadCredential("kalshi.pem", keyID)
//	...
//	client, err := kalshi.New(kalshi.WithCredential(cred))
//	...
//	balance, err := client.GetBalance(ctx)
//
// A Client holds no mutable state after construction and is safe for
// concurrent use.
package kalshi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kalshi-go/kalshi/auth"
	"github.com/lestrrat-go/blackmagic"
	"go.uber.org/zap"
)

const (
	ProductionURL = "https://api.elections.kalshi.com"
	DemoURL       = "https://demo-api.kalshi.co"

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "kalshi-go"
)

// Client sends requests to the exchange.
type Client struct {
	baseURL    string
	httpClient *http.Client
	assembler  *auth.HeaderAssembler
	credential *auth.Credential
	logger     *zap.Logger
	userAgent  string
}

// New creates a Client.
func New(options ...Option) (*Client, error) {
	var (
		baseURL    = ProductionURL
		httpClient *http.Client
		timeout    time.Duration
		cred       *auth.Credential
		scheme     = auth.DefaultScheme
		clock      auth.Clock
		logger     *zap.Logger
		userAgent  = DefaultUserAgent
	)

	for _, opt := range options {
		var err error
		switch opt.Ident() {
		case identBaseURL{}:
			err = blackmagic.AssignIfCompatible(&baseURL, opt.Value())
		case identHTTPClient{}:
			err = blackmagic.AssignIfCompatible(&httpClient, opt.Value())
		case identTimeout{}:
			err = blackmagic.AssignIfCompatible(&timeout, opt.Value())
		case identCredential{}:
			err = blackmagic.AssignIfCompatible(&cred, opt.Value())
		case identScheme{}:
			err = blackmagic.AssignIfCompatible(&scheme, opt.Value())
		case identClock{}:
			err = blackmagic.AssignIfCompatible(&clock, opt.Value())
		case identLogger{}:
			err = blackmagic.AssignIfCompatible(&logger, opt.Value())
		case identUserAgent{}:
			err = blackmagic.AssignIfCompatible(&userAgent, opt.Value())
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply option %s: %w", opt.Ident(), err)
		}
	}

	base, err := ResolveBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	var hc http.Client
	if httpClient != nil {
		hc = *httpClient
	}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	if hc.Timeout <= 0 {
		hc.Timeout = DefaultTimeout
	}

	var signer *auth.Signer
	if cred != nil {
		signer, err = auth.NewSigner(cred, scheme)
		if err != nil {
			return nil, fmt.Errorf("failed to create signer: %w", err)
		}
	}
	if clock == nil {
		clock = auth.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    base,
		httpClient: &hc,
		assembler:  auth.NewHeaderAssembler(signer, clock),
		credential: cred,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// ResolveBaseURL validates a base URL and strips any trailing slash.
// "demo" and "production" name the two public environments.
func ResolveBaseURL(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "demo":
		return DemoURL, nil
	case "", "prod", "production":
		return ProductionURL, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("base URL %q must not carry a query or fragment", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// BaseURL returns the scheme and host requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticated reports whether the client can call authenticated routes.
func (c *Client) Authenticated() bool {
	return c.credential != nil
}

// Close destroys the credential the client was created with. The client
// must not be used afterwards.
func (c *Client) Close() error {
	c.credential.Destroy()
	return nil
}
