package kalshi

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kalshi-go/kalshi/auth"
)

// Kind tags every error returned by this package. The set is closed:
// every failure carries exactly one of these.
type Kind string

const (
	// KindCredential: key id or private key missing or unusable.
	KindCredential Kind = "credential"
	// KindSigning: the signature could not be produced.
	KindSigning Kind = "signing"
	// KindNetwork: no HTTP status was obtained (DNS, TLS, connection, timeout, cancellation).
	KindNetwork Kind = "network"
	// KindAuthRejected: HTTP 401 or 403.
	KindAuthRejected Kind = "auth_rejected"
	// KindRateLimited: HTTP 429.
	KindRateLimited Kind = "rate_limited"
	// KindClient: any other 4xx.
	KindClient Kind = "client"
	// KindServer: 5xx.
	KindServer Kind = "server"
	// KindSerialization: the request could not be encoded or a success
	// response did not match the expected shape.
	KindSerialization Kind = "serialization"
)

// Error is the single error type returned by Client operations.
type Error struct {
	Kind Kind
	// Op identifies the route, e.g. "GET /trade-api/v2/markets".
	Op string

	// StatusCode is zero when no response was received.
	StatusCode int
	// Code, Message and Details come from the exchange's structured error
	// body. When the body could not be parsed they are empty and Body holds
	// the raw payload.
	Code    string
	Message string
	Details string
	Body    string

	// Timeout is set for KindNetwork errors caused by a deadline.
	Timeout bool
	// RetryAfter is the server supplied delay for KindRateLimited, if any.
	RetryAfter time.Duration

	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("kalshi: ")
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		sb.WriteString(" (HTTP ")
		sb.WriteString(strconv.Itoa(e.StatusCode))
		sb.WriteString(")")
	}
	if e.Timeout {
		sb.WriteString(" timeout")
	}
	switch {
	case e.Code != "" || e.Message != "":
		sb.WriteString(": ")
		if e.Code != "" {
			sb.WriteString(e.Code)
			if e.Message != "" {
				sb.WriteString(": ")
			}
		}
		sb.WriteString(e.Message)
	case e.Err != nil:
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	case e.Body != "":
		sb.WriteString(": ")
		sb.WriteString(truncate(e.Body, 256))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of err. Errors from the auth package that were
// never routed through a Client are mapped as well. Any other non-nil error
// reports KindNetwork, the only kind that does not require a response.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, auth.ErrCredential):
		return KindCredential
	case errors.Is(err, auth.ErrSigning):
		return KindSigning
	}
	return KindNetwork
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsTimeout reports whether err is a network failure caused by a deadline.
func IsTimeout(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindNetwork && e.Timeout
	}
	return false
}

// IsRetryable reports whether repeating the same call may succeed.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindRateLimited, KindServer:
		return true
	case KindNetwork:
		// a caller cancelling is not going to improve on retry
		return !errors.Is(e.Err, context.Canceled)
	default:
		return false
	}
}

// RetryAfter returns the server requested delay carried by err, or zero.
func RetryAfter(err error) time.Duration {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAfter
	}
	return 0
}

func classifyLocal(op string, err error) *Error {
	switch {
	case errors.Is(err, auth.ErrCredential):
		return newError(KindCredential, op, err)
	case errors.Is(err, auth.ErrSigning):
		return newError(KindSigning, op, err)
	default:
		return newError(KindSerialization, op, err)
	}
}

// classifyTransport maps a failure that produced no HTTP response.
func classifyTransport(op string, err error) *Error {
	e := newError(KindNetwork, op, err)
	switch {
	case errors.Is(err, auth.ErrCredential):
		e.Kind = KindCredential
	case errors.Is(err, auth.ErrSigning):
		e.Kind = KindSigning
	case errors.Is(err, context.DeadlineExceeded):
		e.Timeout = true
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			e.Timeout = true
		}
	}
	return e
}

// isTLSFailure is used for logging only. TLS failures are network errors.
func isTLSFailure(err error) bool {
	var (
		recordErr   tls.RecordHeaderError
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

type remoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

type errorPayload struct {
	Nested *remoteError `json:"error"`
	remoteError
}

// classifyStatus maps a non-2xx response.
func classifyStatus(op string, status int, header http.Header, body []byte) *Error {
	e := &Error{Op: op, StatusCode: status}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuthRejected
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(header.Get("Retry-After"), time.Now())
	case status >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindClient
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		remote := payload.remoteError
		if payload.Nested != nil {
			remote = *payload.Nested
		}
		e.Code = remote.Code
		e.Message = remote.Message
		e.Details = remote.Details
	}
	if e.Code == "" && e.Message == "" {
		e.Body = string(body)
		if e.Body == "" {
			e.Body = http.StatusText(status)
		}
	}
	return e
}

func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func serializationError(op, what string, err error) *Error {
	return newError(KindSerialization, op, fmt.Errorf("failed to %s: %w", what, err))
}
