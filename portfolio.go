package kalshi

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// GetBalanceResponse reports amounts in cents.
type GetBalanceResponse struct {
	Balance        int64 `json:"balance"`
	PortfolioValue int64 `json:"portfolio_value"`
	UpdatedTS      int64 `json:"updated_ts"`
}

type PositionsQuery struct {
	Limit            *int    `url:"limit,omitempty"`
	Cursor           *string `url:"cursor,omitempty"`
	CountFilter      *string `url:"count_filter,omitempty"`
	SettlementStatus *string `url:"settlement_status,omitempty"`
	Ticker           *string `url:"ticker,omitempty"`
	EventTicker      *string `url:"event_ticker,omitempty"`
}

type MarketPosition struct {
	Ticker            string `json:"ticker"`
	Position          int64  `json:"position"`
	MarketExposure    int64  `json:"market_exposure"`
	RealizedPnL       int64  `json:"realized_pnl"`
	FeesPaid          int64  `json:"fees_paid"`
	RestingOrderCount int64  `json:"resting_orders_count"`
	TotalTraded       int64  `json:"total_traded"`
}

type EventPosition struct {
	EventTicker       string `json:"event_ticker"`
	EventExposure     int64  `json:"event_exposure"`
	RealizedPnL       int64  `json:"realized_pnl"`
	FeesPaid          int64  `json:"fees_paid"`
	RestingOrderCount int64  `json:"resting_order_count"`
	TotalCost         int64  `json:"total_cost"`
}

type GetPositionsResponse struct {
	Cursor          string           `json:"cursor"`
	MarketPositions []MarketPosition `json:"market_positions"`
	EventPositions  []EventPosition  `json:"event_positions"`
}

// PageItems returns the market positions. Event positions are only
// reachable through GetPositions.
func (r GetPositionsResponse) PageItems() []MarketPosition { return r.MarketPositions }
func (r GetPositionsResponse) NextCursor() string          { return r.Cursor }

type FillsQuery struct {
	Limit   *int    `url:"limit,omitempty"`
	Cursor  *string `url:"cursor,omitempty"`
	Ticker  *string `url:"ticker,omitempty"`
	OrderID *string `url:"order_id,omitempty"`
	MinTS   *int64  `url:"min_ts,omitempty"`
	MaxTS   *int64  `url:"max_ts,omitempty"`
}

type Fill struct {
	FillID          string           `json:"fill_id"`
	TradeID         string           `json:"trade_id"`
	OrderID         string           `json:"order_id"`
	ClientOrderID   string           `json:"client_order_id,omitempty"`
	Ticker          string           `json:"ticker"`
	MarketTicker    string           `json:"market_ticker"`
	Side            Side             `json:"side"`
	Action          Action           `json:"action"`
	Count           int64            `json:"count"`
	Price           float64          `json:"price"`
	YesPrice        int64            `json:"yes_price"`
	NoPrice         int64            `json:"no_price"`
	YesPriceDollars *decimal.Decimal `json:"yes_price_fixed,omitempty"`
	NoPriceDollars  *decimal.Decimal `json:"no_price_fixed,omitempty"`
	IsTaker         bool             `json:"is_taker"`
	CreatedTime     time.Time        `json:"created_time"`
	TS              int64            `json:"ts"`
}

type GetFillsResponse struct {
	Cursor string `json:"cursor"`
	Fills  []Fill `json:"fills"`
}

func (r GetFillsResponse) PageItems() []Fill  { return r.Fills }
func (r GetFillsResponse) NextCursor() string { return r.Cursor }

type SettlementsQuery struct {
	Limit       *int    `url:"limit,omitempty"`
	Cursor      *string `url:"cursor,omitempty"`
	Ticker      *string `url:"ticker,omitempty"`
	EventTicker *string `url:"event_ticker,omitempty"`
	MinTS       *int64  `url:"min_ts,omitempty"`
	MaxTS       *int64  `url:"max_ts,omitempty"`
}

type Settlement struct {
	Ticker       string           `json:"ticker"`
	MarketResult string           `json:"market_result"`
	YesCount     int64            `json:"yes_count"`
	YesTotalCost int64            `json:"yes_total_cost"`
	NoCount      int64            `json:"no_count"`
	NoTotalCost  int64            `json:"no_total_cost"`
	Revenue      int64            `json:"revenue"`
	SettledTime  time.Time        `json:"settled_time"`
	FeeCost      *decimal.Decimal `json:"fee_cost,omitempty"`
	Value        int64            `json:"value"`
}

type GetSettlementsResponse struct {
	Cursor      string       `json:"cursor"`
	Settlements []Settlement `json:"settlements"`
}

func (r GetSettlementsResponse) PageItems() []Settlement { return r.Settlements }
func (r GetSettlementsResponse) NextCursor() string      { return r.Cursor }

type GetTotalRestingOrderValueResponse struct {
	TotalRestingOrderValue int64 `json:"total_resting_order_value"`
}

// GetBalance returns the available balance and portfolio value in cents.
func (c *Client) GetBalance(ctx context.Context) (GetBalanceResponse, error) {
	return Execute[GetBalanceResponse](ctx, c, RouteGetBalance, Request{})
}

func (c *Client) GetPositions(ctx context.Context, q PositionsQuery) (GetPositionsResponse, error) {
	return Execute[GetPositionsResponse](ctx, c, RouteGetPositions, Request{Query: q})
}

func (c *Client) Positions(ctx context.Context, q PositionsQuery) iter.Seq2[MarketPosition, error] {
	return Paginate[GetPositionsResponse, MarketPosition](ctx, c, RouteGetPositions, Request{Query: q})
}

func (c *Client) GetFills(ctx context.Context, q FillsQuery) (GetFillsResponse, error) {
	return Execute[GetFillsResponse](ctx, c, RouteGetFills, Request{Query: q})
}

func (c *Client) Fills(ctx context.Context, q FillsQuery) iter.Seq2[Fill, error] {
	return Paginate[GetFillsResponse, Fill](ctx, c, RouteGetFills, Request{Query: q})
}

func (c *Client) GetSettlements(ctx context.Context, q SettlementsQuery) (GetSettlementsResponse, error) {
	return Execute[GetSettlementsResponse](ctx, c, RouteGetSettlements, Request{Query: q})
}

func (c *Client) Settlements(ctx context.Context, q SettlementsQuery) iter.Seq2[Settlement, error] {
	return Paginate[GetSettlementsResponse, Settlement](ctx, c, RouteGetSettlements, Request{Query: q})
}

// GetTotalRestingOrderValue is only available to FCM members.
func (c *Client) GetTotalRestingOrderValue(ctx context.Context) (GetTotalRestingOrderValueResponse, error) {
	return Execute[GetTotalRestingOrderValueResponse](ctx, c, RouteGetTotalRestingOrderValue, Request{})
}
