package kalshi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kalshi-go/kalshi/internal/query"
	"go.uber.org/zap"
)

// Request carries the per-call inputs of Execute.
type Request struct {
	// PathParams fills the placeholders of the route's path template.
	PathParams map[string]string
	// Query is a struct with `url` tags, url.Values or map[string]string.
	// Unset fields are not sent.
	Query any
	// Body is encoded as JSON when non-nil.
	Body any

	cursor string
}

// Execute sends one request for route and decodes a successful response
// into R. A success response with an empty body yields the zero R.
//
// Execute never retries; see the retry package for that. Each call reads
// the clock once and signs with a fresh timestamp.
func Execute[R any](ctx context.Context, c *Client, route Route, req Request) (R, error) {
	var result R

	data, err := c.dispatch(ctx, route, req)
	if err != nil {
		return result, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(data, &result); err != nil {
		var zero R
		e := serializationError(route.String(), fmt.Sprintf("decode response into %T", result), err)
		e.Body = truncate(string(data), 1024)
		c.logFailure(route, e, 0)
		return zero, e
	}
	return result, nil
}

func (c *Client) dispatch(ctx context.Context, route Route, req Request) ([]byte, error) {
	op := route.String()

	path, err := route.Expand(req.PathParams)
	if err != nil {
		return nil, c.logFailure(route, serializationError(op, "expand path", err), 0)
	}

	values, err := query.Encode(req.Query)
	if err != nil {
		return nil, c.logFailure(route, serializationError(op, "encode query", err), 0)
	}
	if req.cursor != "" {
		values.Set(CursorParam, req.cursor)
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, c.logFailure(route, serializationError(op, "encode request body", err), 0)
		}
		body = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(values) > 0 {
		target += "?" + values.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, route.Method(), target, body)
	if err != nil {
		return nil, c.logFailure(route, serializationError(op, "build request", err), 0)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	authHeaders, err := c.assembler.Headers(route.Method(), httpReq.URL.EscapedPath(), route.RequiresAuth())
	if err != nil {
		return nil, c.logFailure(route, classifyLocal(op, err), 0)
	}
	for k, vs := range authHeaders {
		httpReq.Header[k] = vs
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.logFailure(route, classifyTransport(op, err), time.Since(start))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.logFailure(route, classifyTransport(op, fmt.Errorf("failed to read response body: %w", err)), time.Since(start))
	}
	latency := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.logFailure(route, classifyStatus(op, resp.StatusCode, resp.Header, data), latency)
	}

	c.logger.Debug("request completed",
		zap.String("method", route.Method()),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
	)
	return data, nil
}

func (c *Client) logFailure(route Route, e *Error, latency time.Duration) *Error {
	fields := []zap.Field{
		zap.String("method", route.Method()),
		zap.String("path", route.Path()),
		zap.String("kind", string(e.Kind)),
	}
	if e.StatusCode != 0 {
		fields = append(fields, zap.Int("status", e.StatusCode))
	}
	if latency > 0 {
		fields = append(fields, zap.Duration("latency", latency))
	}
	if e.Timeout {
		fields = append(fields, zap.Bool("timeout", true))
	}
	if e.Kind == KindNetwork && isTLSFailure(e.Err) {
		fields = append(fields, zap.Bool("tls", true))
	}
	fields = append(fields, zap.Error(e))
	c.logger.Warn("request failed", fields...)
	return e
}
