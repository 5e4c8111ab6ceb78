package query_test

import (
	"net/url"
	"testing"

	"github.com/kalshi-go/kalshi/internal/query"
	"github.com/stretchr/testify/require"
)

type status string

func (s status) String() string { return string(s) }

type marketsQuery struct {
	Limit        *int     `url:"limit,omitempty"`
	Cursor       *string  `url:"cursor,omitempty"`
	EventTicker  *string  `url:"event_ticker,omitempty"`
	Status       *status  `url:"status,omitempty"`
	Tickers      []string `url:"tickers,omitempty"`
	WithNested   *bool    `url:"with_nested_markets,omitempty"`
	MinCloseTS   *int64   `url:"min_close_ts,omitempty"`
	SeriesTicker string   `url:"series_ticker,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func TestEncode(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		Name     string
		Input    any
		Expected string
		Error    bool
	}{
		{Name: "nil", Input: nil, Expected: ""},
		{Name: "nil pointer", Input: (*marketsQuery)(nil), Expected: ""},
		{Name: "all unset", Input: marketsQuery{}, Expected: ""},
		{
			Name:     "only set fields are sent",
			Input:    marketsQuery{Limit: ptr(100), EventTicker: ptr("KXHIGHNY-24JAN01")},
			Expected: "event_ticker=KXHIGHNY-24JAN01&limit=100",
		},
		{
			Name:     "pointer to struct",
			Input:    &marketsQuery{Status: ptr(status("open")), WithNested: ptr(false)},
			Expected: "status=open&with_nested_markets=false",
		},
		{
			Name:     "slices are comma separated",
			Input:    marketsQuery{Tickers: []string{"A", "B", "C"}},
			Expected: "tickers=A%2CB%2CC",
		},
		{
			Name:     "empty string pointer is omitted",
			Input:    marketsQuery{Cursor: ptr(""), MinCloseTS: ptr(int64(1700000000))},
			Expected: "min_close_ts=1700000000",
		},
		{Name: "plain string field", Input: marketsQuery{SeriesTicker: "KXHIGHNY"}, Expected: "series_ticker=KXHIGHNY"},
		{Name: "url.Values passthrough", Input: url.Values{"b": {"2"}, "a": {"1"}}, Expected: "a=1&b=2"},
		{Name: "string map", Input: map[string]string{"depth": "10", "empty": ""}, Expected: "depth=10"},
		{Name: "not a struct", Input: 42, Error: true},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			values, err := query.Encode(tc.Input)
			if tc.Error {
				require.Error(t, err, "Encode should fail")
				return
			}
			require.NoError(t, err, "Encode should succeed")
			require.Equal(t, tc.Expected, values.Encode())
		})
	}
}
