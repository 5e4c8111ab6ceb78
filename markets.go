package kalshi

import (
	"context"
	"iter"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// MaxOrderbookDepth is the deepest order book the exchange serves.
const MaxOrderbookDepth = 100

type Market struct {
	Ticker                  string            `json:"ticker"`
	EventTicker             string            `json:"event_ticker"`
	MarketType              string            `json:"market_type"`
	Title                   string            `json:"title"`
	Subtitle                string            `json:"subtitle"`
	YesSubTitle             string            `json:"yes_sub_title"`
	NoSubTitle              string            `json:"no_sub_title"`
	OpenTime                time.Time         `json:"open_time"`
	CloseTime               time.Time         `json:"close_time"`
	ExpectedExpirationTime  *time.Time        `json:"expected_expiration_time,omitempty"`
	ExpirationTime          *time.Time        `json:"expiration_time,omitempty"`
	LatestExpirationTime    time.Time         `json:"latest_expiration_time"`
	SettlementTimerSeconds  int64             `json:"settlement_timer_seconds"`
	Status                  string            `json:"status"`
	ResponsePriceUnits      string            `json:"response_price_units"`
	NotionalValue           int64             `json:"notional_value"`
	NotionalValueDollars    decimal.Decimal   `json:"notional_value_dollars"`
	YesBid                  int64             `json:"yes_bid"`
	YesBidDollars           decimal.Decimal   `json:"yes_bid_dollars"`
	YesAsk                  int64             `json:"yes_ask"`
	YesAskDollars           decimal.Decimal   `json:"yes_ask_dollars"`
	NoBid                   int64             `json:"no_bid"`
	NoBidDollars            decimal.Decimal   `json:"no_bid_dollars"`
	NoAsk                   int64             `json:"no_ask"`
	NoAskDollars            decimal.Decimal   `json:"no_ask_dollars"`
	LastPrice               int64             `json:"last_price"`
	LastPriceDollars        decimal.Decimal   `json:"last_price_dollars"`
	PreviousYesBid          int64             `json:"previous_yes_bid"`
	PreviousYesBidDollars   decimal.Decimal   `json:"previous_yes_bid_dollars"`
	PreviousYesAsk          int64             `json:"previous_yes_ask"`
	PreviousYesAskDollars   decimal.Decimal   `json:"previous_yes_ask_dollars"`
	PreviousPrice           int64             `json:"previous_price"`
	PreviousPriceDollars    decimal.Decimal   `json:"previous_price_dollars"`
	Volume                  int64             `json:"volume"`
	Volume24h               int64             `json:"volume_24h"`
	Liquidity               int64             `json:"liquidity"`
	LiquidityDollars        decimal.Decimal   `json:"liquidity_dollars"`
	OpenInterest            int64             `json:"open_interest"`
	CanCloseEarly           bool              `json:"can_close_early"`
	Result                  string            `json:"result"`
	ExpirationValue         string            `json:"expiration_value"`
	SettlementValue         *int64            `json:"settlement_value,omitempty"`
	SettlementValueDollars  *decimal.Decimal  `json:"settlement_value_dollars,omitempty"`
	Category                string            `json:"category"`
	RiskLimitCents          int64             `json:"risk_limit_cents"`
	StrikeType              string            `json:"strike_type,omitempty"`
	FloorStrike             *float64          `json:"floor_strike,omitempty"`
	CapStrike               *float64          `json:"cap_strike,omitempty"`
	FunctionalStrike        string            `json:"functional_strike,omitempty"`
	CustomStrike            map[string]string `json:"custom_strike,omitempty"`
	RulesPrimary            string            `json:"rules_primary"`
	RulesSecondary          string            `json:"rules_secondary"`
	TickSize                int64             `json:"tick_size"`
	PriceLevelStructure     string            `json:"price_level_structure"`
	PriceRanges             []PriceRange      `json:"price_ranges"`
	FeeWaiverExpirationTime *time.Time        `json:"fee_waiver_expiration_time,omitempty"`
	MVECollectionTicker     string            `json:"mve_collection_ticker,omitempty"`
	MVESelectedLegs         []MVESelectedLeg  `json:"mve_selected_legs,omitempty"`
	PrimaryParticipantKey   string            `json:"primary_participant_key,omitempty"`
}

type PriceRange struct {
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Step  decimal.Decimal `json:"step"`
}

// MVESelectedLeg is a leg of a market that belongs to a multivariate
// event collection.
type MVESelectedLeg struct {
	EventTicker  string `json:"event_ticker"`
	MarketTicker string `json:"market_ticker"`
	Side         Side   `json:"side"`
}

// MarketsQuery filters GetMarkets. Every field is optional.
type MarketsQuery struct {
	Limit        *int    `url:"limit,omitempty"`
	Cursor       *string `url:"cursor,omitempty"`
	EventTicker  *string `url:"event_ticker,omitempty"`
	SeriesTicker *string `url:"series_ticker,omitempty"`
	MaxCloseTS   *int64  `url:"max_close_ts,omitempty"`
	MinCloseTS   *int64  `url:"min_close_ts,omitempty"`
	// Status takes one or more of unopened, open, closed and settled.
	Status  *string  `url:"status,omitempty"`
	Tickers []string `url:"tickers,omitempty"`
}

type GetMarketsResponse struct {
	Cursor  string   `json:"cursor"`
	Markets []Market `json:"markets"`
}

func (r GetMarketsResponse) PageItems() []Market { return r.Markets }
func (r GetMarketsResponse) NextCursor() string  { return r.Cursor }

type GetMarketResponse struct {
	Market Market `json:"market"`
}

type Orderbook struct {
	Yes        []PriceLevel  `json:"yes"`
	YesDollars []DollarLevel `json:"yes_dollars"`
	No         []PriceLevel  `json:"no"`
	NoDollars  []DollarLevel `json:"no_dollars"`
}

type GetMarketOrderbookResponse struct {
	Orderbook Orderbook `json:"orderbook"`
}

type CandlesticksQuery struct {
	StartTS int64 `url:"start_ts"`
	EndTS   int64 `url:"end_ts"`
	// PeriodInterval is the candle length in minutes: 1, 60 or 1440.
	PeriodInterval int `url:"period_interval"`
}

type PriceStats struct {
	Open            *int64           `json:"open"`
	OpenDollars     *decimal.Decimal `json:"open_dollars"`
	Close           *int64           `json:"close"`
	CloseDollars    *decimal.Decimal `json:"close_dollars"`
	High            *int64           `json:"high"`
	HighDollars     *decimal.Decimal `json:"high_dollars"`
	Low             *int64           `json:"low"`
	LowDollars      *decimal.Decimal `json:"low_dollars"`
	Min             *int64           `json:"min"`
	MinDollars      *decimal.Decimal `json:"min_dollars"`
	Max             *int64           `json:"max"`
	MaxDollars      *decimal.Decimal `json:"max_dollars"`
	Mean            *int64           `json:"mean"`
	MeanDollars     *decimal.Decimal `json:"mean_dollars"`
	Previous        *int64           `json:"previous"`
	PreviousDollars *decimal.Decimal `json:"previous_dollars"`
}

type SideOHLC struct {
	Open         int64           `json:"open"`
	OpenDollars  decimal.Decimal `json:"open_dollars"`
	High         int64           `json:"high"`
	HighDollars  decimal.Decimal `json:"high_dollars"`
	Low          int64           `json:"low"`
	LowDollars   decimal.Decimal `json:"low_dollars"`
	Close        int64           `json:"close"`
	CloseDollars decimal.Decimal `json:"close_dollars"`
}

type Candlestick struct {
	EndPeriodTS  int64      `json:"end_period_ts"`
	OpenInterest *int64     `json:"open_interest"`
	Volume       int64      `json:"volume"`
	Price        PriceStats `json:"price"`
	YesAsk       SideOHLC   `json:"yes_ask"`
	YesBid       SideOHLC   `json:"yes_bid"`
	NoAsk        *SideOHLC  `json:"no_ask,omitempty"`
	NoBid        *SideOHLC  `json:"no_bid,omitempty"`
}

type GetMarketCandlesticksResponse struct {
	MarketTicker       string        `json:"market_ticker"`
	MarketCandlesticks []Candlestick `json:"market_candlesticks"`
}

type Trade struct {
	TradeID         string          `json:"trade_id"`
	Ticker          string          `json:"ticker"`
	Count           int64           `json:"count"`
	CreatedTime     time.Time       `json:"created_time"`
	Price           float64         `json:"price"`
	YesPrice        int64           `json:"yes_price"`
	YesPriceDollars decimal.Decimal `json:"yes_price_dollars"`
	NoPrice         int64           `json:"no_price"`
	NoPriceDollars  decimal.Decimal `json:"no_price_dollars"`
	TakerSide       Side            `json:"taker_side"`
}

type TradesQuery struct {
	Limit  *int    `url:"limit,omitempty"`
	Cursor *string `url:"cursor,omitempty"`
	Ticker *string `url:"ticker,omitempty"`
	MinTS  *int64  `url:"min_ts,omitempty"`
	MaxTS  *int64  `url:"max_ts,omitempty"`
}

type GetTradesResponse struct {
	Cursor string  `json:"cursor"`
	Trades []Trade `json:"trades"`
}

func (r GetTradesResponse) PageItems() []Trade { return r.Trades }
func (r GetTradesResponse) NextCursor() string { return r.Cursor }

// GetMarkets returns one page of markets.
func (c *Client) GetMarkets(ctx context.Context, q MarketsQuery) (GetMarketsResponse, error) {
	return Execute[GetMarketsResponse](ctx, c, RouteGetMarkets, Request{Query: q})
}

// Markets iterates over every market matching q, fetching pages lazily.
func (c *Client) Markets(ctx context.Context, q MarketsQuery) iter.Seq2[Market, error] {
	return Paginate[GetMarketsResponse, Market](ctx, c, RouteGetMarkets, Request{Query: q})
}

func (c *Client) GetMarket(ctx context.Context, ticker string) (GetMarketResponse, error) {
	return Execute[GetMarketResponse](ctx, c, RouteGetMarket, Request{
		PathParams: map[string]string{"ticker": ticker},
	})
}

// GetMarketOrderbook returns the order book of a market. A depth of zero
// or less returns the full book; larger depths are capped at
// MaxOrderbookDepth.
func (c *Client) GetMarketOrderbook(ctx context.Context, ticker string, depth int) (GetMarketOrderbookResponse, error) {
	var q map[string]string
	if depth > 0 {
		q = map[string]string{"depth": strconv.Itoa(min(depth, MaxOrderbookDepth))}
	}
	return Execute[GetMarketOrderbookResponse](ctx, c, RouteGetMarketOrderbook, Request{
		PathParams: map[string]string{"ticker": ticker},
		Query:      q,
	})
}

func (c *Client) GetMarketCandlesticks(ctx context.Context, seriesTicker, ticker string, q CandlesticksQuery) (GetMarketCandlesticksResponse, error) {
	return Execute[GetMarketCandlesticksResponse](ctx, c, RouteGetMarketCandlesticks, Request{
		PathParams: map[string]string{"series_ticker": seriesTicker, "ticker": ticker},
		Query:      q,
	})
}

// GetTrades returns one page of public trades.
func (c *Client) GetTrades(ctx context.Context, q TradesQuery) (GetTradesResponse, error) {
	return Execute[GetTradesResponse](ctx, c, RouteGetTrades, Request{Query: q})
}

func (c *Client) Trades(ctx context.Context, q TradesQuery) iter.Seq2[Trade, error] {
	return Paginate[GetTradesResponse, Trade](ctx, c, RouteGetTrades, Request{Query: q})
}
