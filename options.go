package kalshi

import (
	"net/http"
	"time"

	"github.com/kalshi-go/kalshi/auth"
	"github.com/lestrrat-go/option"
	"go.uber.org/zap"
)

type Option = option.Interface

type identBaseURL struct{}

func (identBaseURL) String() string { return "WithBaseURL" }

type identHTTPClient struct{}

func (identHTTPClient) String() string { return "WithHTTPClient" }

type identTimeout struct{}

func (identTimeout) String() string { return "WithTimeout" }

type identCredential struct{}

func (identCredential) String() string { return "WithCredential" }

type identScheme struct{}

func (identScheme) String() string { return "WithScheme" }

type identClock struct{}

func (identClock) String() string { return "WithClock" }

type identLogger struct{}

func (identLogger) String() string { return "WithLogger" }

type identUserAgent struct{}

func (identUserAgent) String() string { return "WithUserAgent" }

// WithBaseURL sets the scheme and host requests are sent to.
// Defaults to ProductionURL.
func WithBaseURL(u string) Option {
	return option.New(identBaseURL{}, u)
}

// WithDemo points the client at the demo environment.
func WithDemo() Option {
	return WithBaseURL(DemoURL)
}

// WithHTTPClient sets the HTTP client used to send requests. The client
// is copied; if it has no timeout, DefaultTimeout is applied to the copy.
func WithHTTPClient(cl *http.Client) Option {
	return option.New(identHTTPClient{}, cl)
}

// WithTimeout bounds every request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return option.New(identTimeout{}, d)
}

// WithCredential enables authenticated routes. Without it only public
// routes can be called.
func WithCredential(cred *auth.Credential) Option {
	return option.New(identCredential{}, cred)
}

// WithScheme overrides the signature scheme. Only needed for testing
// against servers that verify something other than auth.DefaultScheme.
func WithScheme(s auth.Scheme) Option {
	return option.New(identScheme{}, s)
}

// WithClock sets the clock used for request timestamps.
func WithClock(c auth.Clock) Option {
	return option.New(identClock{}, c)
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return option.New(identLogger{}, l)
}

func WithUserAgent(ua string) Option {
	return option.New(identUserAgent{}, ua)
}
