package kalshi_test

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/kalshi-go/kalshi"
	"github.com/kalshi-go/kalshi/internal/kalshitest"
	"github.com/stretchr/testify/require"
)

// pagedServer serves markets from pages keyed by the incoming cursor and
// records every query it receives.
type pagedServer struct {
	mu      sync.Mutex
	pages   map[string]string
	queries []url.Values
}

func (s *pagedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query())
	s.mu.Unlock()

	body, ok := s.pages[r.URL.Query().Get(kalshi.CursorParam)]
	if !ok {
		kalshitest.WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": map[string]string{"code": "internal_server_error", "message": "boom"}})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (s *pagedServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

func tickers(markets []kalshi.Market) []string {
	var out []string
	for _, m := range markets {
		out = append(out, m.Ticker)
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	newServer := func() *pagedServer {
		return &pagedServer{pages: map[string]string{
			"":  `{"markets":[{"ticker":"a"},{"ticker":"b"}],"cursor":"x"}`,
			"x": `{"markets":[{"ticker":"c"}],"cursor":null}`,
		}}
	}

	t.Run("follows the cursor until it is empty", func(t *testing.T) {
		t.Parallel()

		srv := newServer()
		client := newTestClient(t, srv)

		markets, err := kalshi.Collect(client.Markets(context.Background(), kalshi.MarketsQuery{
			Status: kalshi.Ptr("open"),
			Limit:  kalshi.Ptr(2),
		}))
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, tickers(markets))

		queries := srv.Queries()
		require.Len(t, queries, 2, "exactly two requests should be made")
		require.Equal(t, url.Values{"status": {"open"}, "limit": {"2"}}, queries[0])
		require.Equal(t, url.Values{"status": {"open"}, "limit": {"2"}, "cursor": {"x"}}, queries[1])
	})

	t.Run("nothing is fetched until iteration", func(t *testing.T) {
		t.Parallel()

		srv := newServer()
		client := newTestClient(t, srv)

		seq := client.Markets(context.Background(), kalshi.MarketsQuery{})
		require.Empty(t, srv.Queries())

		first, err := kalshi.Collect(seq)
		require.NoError(t, err)
		second, err := kalshi.Collect(seq)
		require.NoError(t, err)
		require.Equal(t, tickers(first), tickers(second), "ranging again restarts from the first page")
		require.Len(t, srv.Queries(), 4)
	})

	t.Run("early stop does not fetch further pages", func(t *testing.T) {
		t.Parallel()

		srv := newServer()
		client := newTestClient(t, srv)

		var got []string
		for m, err := range client.Markets(context.Background(), kalshi.MarketsQuery{}) {
			require.NoError(t, err)
			got = append(got, m.Ticker)
			if len(got) == 2 {
				break
			}
		}
		require.Equal(t, []string{"a", "b"}, got)
		require.Len(t, srv.Queries(), 1)
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		srv := newServer()
		client := newTestClient(t, srv)

		markets, err := kalshi.Collect(kalshi.Limit(client.Markets(context.Background(), kalshi.MarketsQuery{}), 1))
		require.NoError(t, err)
		require.Equal(t, []string{"a"}, tickers(markets))
		require.Len(t, srv.Queries(), 1)

		markets, err = kalshi.Collect(kalshi.Limit(client.Markets(context.Background(), kalshi.MarketsQuery{}), 0))
		require.NoError(t, err)
		require.Empty(t, markets)
		require.Len(t, srv.Queries(), 1, "a zero limit fetches nothing")
	})

	t.Run("error after items", func(t *testing.T) {
		t.Parallel()

		srv := &pagedServer{pages: map[string]string{
			"": `{"markets":[{"ticker":"a"},{"ticker":"b"}],"cursor":"missing"}`,
		}}
		client := newTestClient(t, srv)

		markets, err := kalshi.Collect(client.Markets(context.Background(), kalshi.MarketsQuery{}))
		require.True(t, kalshi.IsKind(err, kalshi.KindServer), "expected server error, got %v", err)
		require.Equal(t, []string{"a", "b"}, tickers(markets), "items of earlier pages are delivered before the error")
		require.Len(t, srv.Queries(), 2)
	})

	t.Run("pages", func(t *testing.T) {
		t.Parallel()

		srv := newServer()
		client := newTestClient(t, srv)

		var cursors []string
		for page, err := range kalshi.Pages[kalshi.GetMarketsResponse, kalshi.Market](context.Background(), client, kalshi.RouteGetMarkets, kalshi.Request{}) {
			require.NoError(t, err)
			cursors = append(cursors, page.NextCursor())
		}
		require.Equal(t, []string{"x", ""}, cursors)
	})

	t.Run("starts from a caller supplied cursor", func(t *testing.T) {
		t.Parallel()

		srv := newServer()
		client := newTestClient(t, srv)

		markets, err := kalshi.Collect(client.Markets(context.Background(), kalshi.MarketsQuery{Cursor: kalshi.Ptr("x")}))
		require.NoError(t, err)
		require.Equal(t, []string{"c"}, tickers(markets))
		require.Len(t, srv.Queries(), 1)
	})
}
