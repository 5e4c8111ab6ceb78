package kalshi

import (
	"context"
	"iter"
	"time"
)

type AssociatedEvent struct {
	Ticker        string   `json:"ticker"`
	IsYesOnly     bool     `json:"is_yes_only"`
	SizeMax       *int64   `json:"size_max,omitempty"`
	SizeMin       *int64   `json:"size_min,omitempty"`
	ActiveQuoters []string `json:"active_quoters"`
}

// MultivariateCollection describes how markets of several events can be
// combined into a single multivariate contract.
type MultivariateCollection struct {
	CollectionTicker       string            `json:"collection_ticker"`
	SeriesTicker           string            `json:"series_ticker"`
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	OpenDate               time.Time         `json:"open_date"`
	CloseDate              time.Time         `json:"close_date"`
	AssociatedEvents       []AssociatedEvent `json:"associated_events"`
	AssociatedEventTickers []string          `json:"associated_event_tickers"`
	IsOrdered              bool              `json:"is_ordered"`
	IsSingleMarketPerEvent bool              `json:"is_single_market_per_event"`
	IsAllYes               bool              `json:"is_all_yes"`
	SizeMin                int64             `json:"size_min"`
	SizeMax                int64             `json:"size_max"`
	FunctionalDescription  string            `json:"functional_description"`
}

type MultivariateCollectionsQuery struct {
	Limit                 *int    `url:"limit,omitempty"`
	Cursor                *string `url:"cursor,omitempty"`
	Status                *string `url:"status,omitempty"`
	AssociatedEventTicker *string `url:"associated_event_ticker,omitempty"`
	SeriesTicker          *string `url:"series_ticker,omitempty"`
}

type GetMultivariateCollectionsResponse struct {
	Cursor      string                   `json:"cursor"`
	Collections []MultivariateCollection `json:"multivariate_contracts"`
}

func (r GetMultivariateCollectionsResponse) PageItems() []MultivariateCollection {
	return r.Collections
}

func (r GetMultivariateCollectionsResponse) NextCursor() string { return r.Cursor }

type GetMultivariateCollectionResponse struct {
	Collection MultivariateCollection `json:"multivariate_contract"`
}

func (c *Client) GetMultivariateCollections(ctx context.Context, q MultivariateCollectionsQuery) (GetMultivariateCollectionsResponse, error) {
	return Execute[GetMultivariateCollectionsResponse](ctx, c, RouteGetMultivariateCollections, Request{Query: q})
}

func (c *Client) MultivariateCollections(ctx context.Context, q MultivariateCollectionsQuery) iter.Seq2[MultivariateCollection, error] {
	return Paginate[GetMultivariateCollectionsResponse, MultivariateCollection](ctx, c, RouteGetMultivariateCollections, Request{Query: q})
}

func (c *Client) GetMultivariateCollection(ctx context.Context, collectionTicker string) (GetMultivariateCollectionResponse, error) {
	return Execute[GetMultivariateCollectionResponse](ctx, c, RouteGetMultivariateCollection, Request{
		PathParams: map[string]string{"collection_ticker": collectionTicker},
	})
}
