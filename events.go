package kalshi

import (
	"context"
	"encoding/json"
	"iter"
	"time"
)

type Event struct {
	EventTicker          string     `json:"event_ticker"`
	SeriesTicker         string     `json:"series_ticker"`
	Title                string     `json:"title"`
	SubTitle             string     `json:"sub_title,omitempty"`
	CollateralReturnType string     `json:"collateral_return_type,omitempty"`
	MutuallyExclusive    bool       `json:"mutually_exclusive"`
	Category             string     `json:"category,omitempty"`
	StrikeDate           *time.Time `json:"strike_date,omitempty"`
	StrikePeriod         string     `json:"strike_period,omitempty"`
	AvailableOnBrokers   bool       `json:"available_on_brokers"`
	// Markets is only populated when requested with WithNestedMarkets.
	Markets []Market `json:"markets,omitempty"`
}

type EventsQuery struct {
	Limit             *int    `url:"limit,omitempty"`
	Cursor            *string `url:"cursor,omitempty"`
	Status            *string `url:"status,omitempty"`
	SeriesTicker      *string `url:"series_ticker,omitempty"`
	MinCloseTS        *int64  `url:"min_close_ts,omitempty"`
	WithNestedMarkets *bool   `url:"with_nested_markets,omitempty"`
}

type GetEventsResponse struct {
	Cursor string  `json:"cursor"`
	Events []Event `json:"events"`
}

func (r GetEventsResponse) PageItems() []Event { return r.Events }
func (r GetEventsResponse) NextCursor() string { return r.Cursor }

type GetEventResponse struct {
	Event   Event    `json:"event"`
	Markets []Market `json:"markets"`
}

type SettlementSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type GetEventMetadataResponse struct {
	ImageURL          string             `json:"image_url,omitempty"`
	SettlementSources []SettlementSource `json:"settlement_sources"`
	Competition       string             `json:"competition,omitempty"`
	CompetitionScope  string             `json:"competition_scope,omitempty"`
}

func (c *Client) GetEvents(ctx context.Context, q EventsQuery) (GetEventsResponse, error) {
	return Execute[GetEventsResponse](ctx, c, RouteGetEvents, Request{Query: q})
}

func (c *Client) Events(ctx context.Context, q EventsQuery) iter.Seq2[Event, error] {
	return Paginate[GetEventsResponse, Event](ctx, c, RouteGetEvents, Request{Query: q})
}

func (c *Client) GetEvent(ctx context.Context, eventTicker string) (GetEventResponse, error) {
	return Execute[GetEventResponse](ctx, c, RouteGetEvent, Request{
		PathParams: map[string]string{"event_ticker": eventTicker},
	})
}

func (c *Client) GetEventMetadata(ctx context.Context, eventTicker string) (GetEventMetadataResponse, error) {
	return Execute[GetEventMetadataResponse](ctx, c, RouteGetEventMetadata, Request{
		PathParams: map[string]string{"event_ticker": eventTicker},
	})
}

type Series struct {
	Ticker                 string             `json:"ticker"`
	Frequency              string             `json:"frequency"`
	Title                  string             `json:"title"`
	Category               string             `json:"category"`
	Tags                   []string           `json:"tags,omitempty"`
	SettlementSources      []SettlementSource `json:"settlement_sources,omitempty"`
	ContractURL            string             `json:"contract_url,omitempty"`
	ContractTermsURL       string             `json:"contract_terms_url,omitempty"`
	FeeType                string             `json:"fee_type"`
	FeeMultiplier          float64            `json:"fee_multiplier"`
	AdditionalProhibitions []string           `json:"additional_prohibitions,omitempty"`
	ProductMetadata        json.RawMessage    `json:"product_metadata,omitempty"`
}

type SeriesQuery struct {
	Category *string `url:"category,omitempty"`
	Tags     *string `url:"tags,omitempty"`
}

type GetSeriesListResponse struct {
	Series []Series `json:"series"`
}

type GetSeriesResponse struct {
	Series Series `json:"series"`
}

func (c *Client) GetSeriesList(ctx context.Context, q SeriesQuery) (GetSeriesListResponse, error) {
	return Execute[GetSeriesListResponse](ctx, c, RouteGetSeriesList, Request{Query: q})
}

func (c *Client) GetSeries(ctx context.Context, seriesTicker string) (GetSeriesResponse, error) {
	return Execute[GetSeriesResponse](ctx, c, RouteGetSeries, Request{
		PathParams: map[string]string{"series_ticker": seriesTicker},
	})
}
