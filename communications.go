package kalshi

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

type GetCommunicationsIDResponse struct {
	CommunicationsID string `json:"communications_id"`
}

type RFQ struct {
	ID                   string           `json:"id"`
	CreatorID            string           `json:"creator_id"`
	CreatorUserID        string           `json:"creator_user_id,omitempty"`
	MarketTicker         string           `json:"market_ticker"`
	Contracts            *int64           `json:"contracts,omitempty"`
	TargetCostCentiCents *int64           `json:"target_cost_centi_cents,omitempty"`
	RestRemainder        bool             `json:"rest_remainder"`
	MVECollectionTicker  string           `json:"mve_collection_ticker,omitempty"`
	MVESelectedLegs      []MVESelectedLeg `json:"mve_selected_legs,omitempty"`
	Status               string           `json:"status"`
	CancellationReason   string           `json:"cancellation_reason,omitempty"`
	CreatedTS            time.Time        `json:"created_ts"`
	UpdatedTS            *time.Time       `json:"updated_ts,omitempty"`
	CancelledTS          *time.Time       `json:"cancelled_ts,omitempty"`
}

type RFQsQuery struct {
	Limit        *int    `url:"limit,omitempty"`
	Cursor       *string `url:"cursor,omitempty"`
	EventTicker  *string `url:"event_ticker,omitempty"`
	MarketTicker *string `url:"market_ticker,omitempty"`
	Status       *string `url:"status,omitempty"`
	CreatorID    *string `url:"creator_user_id,omitempty"`
}

type GetRFQsResponse struct {
	Cursor string `json:"cursor"`
	RFQs   []RFQ  `json:"rfqs"`
}

func (r GetRFQsResponse) PageItems() []RFQ   { return r.RFQs }
func (r GetRFQsResponse) NextCursor() string { return r.Cursor }

type GetRFQResponse struct {
	RFQ RFQ `json:"rfq"`
}

// CreateRFQRequest takes one of Contracts and TargetCostCentiCents.
type CreateRFQRequest struct {
	MarketTicker         string `json:"market_ticker"`
	RestRemainder        bool   `json:"rest_remainder"`
	Contracts            *int64 `json:"contracts,omitempty"`
	TargetCostCentiCents *int64 `json:"target_cost_centi_cents,omitempty"`
	ReplaceExisting      *bool  `json:"replace_existing,omitempty"`
	SubtraderID          string `json:"subtrader_id,omitempty"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type Quote struct {
	ID                      string     `json:"id"`
	RFQID                   string     `json:"rfq_id"`
	CreatorID               string     `json:"creator_id"`
	RFQCreatorID            string     `json:"rfq_creator_id"`
	MarketTicker            string     `json:"market_ticker"`
	Contracts               int64      `json:"contracts"`
	YesBid                  int64      `json:"yes_bid"`
	NoBid                   int64      `json:"no_bid"`
	Status                  string     `json:"status"`
	AcceptedSide            Side       `json:"accepted_side,omitempty"`
	RestRemainder           bool       `json:"rest_remainder"`
	CancellationReason      string     `json:"cancellation_reason,omitempty"`
	CreatorUserID           string     `json:"creator_user_id,omitempty"`
	RFQCreatorUserID        string     `json:"rfq_creator_user_id,omitempty"`
	RFQTargetCostCentiCents *int64     `json:"rfq_target_cost_centi_cents,omitempty"`
	RFQCreatorOrderID       string     `json:"rfq_creator_order_id,omitempty"`
	CreatorOrderID          string     `json:"creator_order_id,omitempty"`
	CreatedTS               time.Time  `json:"created_ts"`
	UpdatedTS               time.Time  `json:"updated_ts"`
	AcceptedTS              *time.Time `json:"accepted_ts,omitempty"`
	ConfirmedTS             *time.Time `json:"confirmed_ts,omitempty"`
	ExecutedTS              *time.Time `json:"executed_ts,omitempty"`
	CancelledTS             *time.Time `json:"cancelled_ts,omitempty"`
	ExpiredTS               *time.Time `json:"expired_ts,omitempty"`
}

type QuotesQuery struct {
	Limit              *int    `url:"limit,omitempty"`
	Cursor             *string `url:"cursor,omitempty"`
	EventTicker        *string `url:"event_ticker,omitempty"`
	MarketTicker       *string `url:"market_ticker,omitempty"`
	Status             *string `url:"status,omitempty"`
	QuoteCreatorUserID *string `url:"quote_creator_user_id,omitempty"`
	RFQCreatorUserID   *string `url:"rfq_creator_user_id,omitempty"`
	RFQID              *string `url:"rfq_id,omitempty"`
}

type GetQuotesResponse struct {
	Cursor string  `json:"cursor"`
	Quotes []Quote `json:"quotes"`
}

func (r GetQuotesResponse) PageItems() []Quote { return r.Quotes }
func (r GetQuotesResponse) NextCursor() string { return r.Cursor }

type GetQuoteResponse struct {
	Quote Quote `json:"quote"`
}

// CreateQuoteRequest answers an RFQ. Bids are in dollars.
type CreateQuoteRequest struct {
	RFQID         string          `json:"rfq_id"`
	YesBid        decimal.Decimal `json:"yes_bid"`
	NoBid         decimal.Decimal `json:"no_bid"`
	RestRemainder bool            `json:"rest_remainder"`
}

type AcceptQuoteRequest struct {
	AcceptedSide Side `json:"accepted_side"`
}

func (c *Client) GetCommunicationsID(ctx context.Context) (GetCommunicationsIDResponse, error) {
	return Execute[GetCommunicationsIDResponse](ctx, c, RouteGetCommunicationsID, Request{})
}

func (c *Client) GetRFQs(ctx context.Context, q RFQsQuery) (GetRFQsResponse, error) {
	return Execute[GetRFQsResponse](ctx, c, RouteGetRFQs, Request{Query: q})
}

func (c *Client) RFQs(ctx context.Context, q RFQsQuery) iter.Seq2[RFQ, error] {
	return Paginate[GetRFQsResponse, RFQ](ctx, c, RouteGetRFQs, Request{Query: q})
}

func (c *Client) GetRFQ(ctx context.Context, rfqID string) (GetRFQResponse, error) {
	return Execute[GetRFQResponse](ctx, c, RouteGetRFQ, Request{
		PathParams: map[string]string{"rfq_id": rfqID},
	})
}

func (c *Client) CreateRFQ(ctx context.Context, req CreateRFQRequest) (CreatedResponse, error) {
	return Execute[CreatedResponse](ctx, c, RouteCreateRFQ, Request{Body: req})
}

func (c *Client) DeleteRFQ(ctx context.Context, rfqID string) error {
	_, err := Execute[Empty](ctx, c, RouteDeleteRFQ, Request{
		PathParams: map[string]string{"rfq_id": rfqID},
	})
	return err
}

func (c *Client) GetQuotes(ctx context.Context, q QuotesQuery) (GetQuotesResponse, error) {
	return Execute[GetQuotesResponse](ctx, c, RouteGetQuotes, Request{Query: q})
}

func (c *Client) Quotes(ctx context.Context, q QuotesQuery) iter.Seq2[Quote, error] {
	return Paginate[GetQuotesResponse, Quote](ctx, c, RouteGetQuotes, Request{Query: q})
}

func (c *Client) GetQuote(ctx context.Context, quoteID string) (GetQuoteResponse, error) {
	return Execute[GetQuoteResponse](ctx, c, RouteGetQuote, Request{
		PathParams: map[string]string{"quote_id": quoteID},
	})
}

func (c *Client) CreateQuote(ctx context.Context, req CreateQuoteRequest) (CreatedResponse, error) {
	return Execute[CreatedResponse](ctx, c, RouteCreateQuote, Request{Body: req})
}

func (c *Client) DeleteQuote(ctx context.Context, quoteID string) error {
	_, err := Execute[Empty](ctx, c, RouteDeleteQuote, Request{
		PathParams: map[string]string{"quote_id": quoteID},
	})
	return err
}

// AcceptQuote accepts a quote on one side. The quoter then has to confirm
// it with ConfirmQuote before it executes.
func (c *Client) AcceptQuote(ctx context.Context, quoteID string, side Side) error {
	_, err := Execute[Empty](ctx, c, RouteAcceptQuote, Request{
		PathParams: map[string]string{"quote_id": quoteID},
		Body:       AcceptQuoteRequest{AcceptedSide: side},
	})
	return err
}

func (c *Client) ConfirmQuote(ctx context.Context, quoteID string) error {
	_, err := Execute[Empty](ctx, c, RouteConfirmQuote, Request{
		PathParams: map[string]string{"quote_id": quoteID},
	})
	return err
}
