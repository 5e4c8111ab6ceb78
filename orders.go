package kalshi

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"
)

type TimeInForce string

const (
	TimeInForceFillOrKill        TimeInForce = "fill_or_kill"
	TimeInForceGoodTillCanceled  TimeInForce = "good_till_canceled"
	TimeInForceImmediateOrCancel TimeInForce = "immediate_or_cancel"
)

type Order struct {
	OrderID                 string           `json:"order_id"`
	UserID                  string           `json:"user_id"`
	ClientOrderID           string           `json:"client_order_id"`
	Ticker                  string           `json:"ticker"`
	Side                    Side             `json:"side"`
	Action                  Action           `json:"action"`
	Type                    OrderType        `json:"type"`
	Status                  string           `json:"status"`
	YesPrice                *int64           `json:"yes_price,omitempty"`
	NoPrice                 *int64           `json:"no_price,omitempty"`
	YesPriceDollars         *decimal.Decimal `json:"yes_price_dollars,omitempty"`
	NoPriceDollars          *decimal.Decimal `json:"no_price_dollars,omitempty"`
	FillCount               int64            `json:"fill_count"`
	RemainingCount          int64            `json:"remaining_count"`
	InitialCount            int64            `json:"initial_count"`
	TakerFees               int64            `json:"taker_fees"`
	MakerFees               int64            `json:"maker_fees"`
	TakerFillCost           int64            `json:"taker_fill_cost"`
	MakerFillCost           int64            `json:"maker_fill_cost"`
	TakerFillCostDollars    *decimal.Decimal `json:"taker_fill_cost_dollars,omitempty"`
	MakerFillCostDollars    *decimal.Decimal `json:"maker_fill_cost_dollars,omitempty"`
	TakerFeesDollars        *decimal.Decimal `json:"taker_fees_dollars,omitempty"`
	MakerFeesDollars        *decimal.Decimal `json:"maker_fees_dollars,omitempty"`
	QueuePosition           *int64           `json:"queue_position,omitempty"`
	ExpirationTime          *time.Time       `json:"expiration_time,omitempty"`
	CreatedTime             *time.Time       `json:"created_time,omitempty"`
	LastUpdateTime          *time.Time       `json:"last_update_time,omitempty"`
	SelfTradePreventionType string           `json:"self_trade_prevention_type,omitempty"`
	OrderGroupID            string           `json:"order_group_id,omitempty"`
	CancelOrderOnPause      bool             `json:"cancel_order_on_pause,omitempty"`
}

// OrderError is the per-order failure reported by batch endpoints.
type OrderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Service string `json:"service,omitempty"`
}

type OrdersQuery struct {
	Limit       *int    `url:"limit,omitempty"`
	Cursor      *string `url:"cursor,omitempty"`
	Ticker      *string `url:"ticker,omitempty"`
	EventTicker *string `url:"event_ticker,omitempty"`
	MinTS       *int64  `url:"min_ts,omitempty"`
	MaxTS       *int64  `url:"max_ts,omitempty"`
	// Status is one of resting, canceled or executed.
	Status *string `url:"status,omitempty"`
}

type GetOrdersResponse struct {
	Cursor string  `json:"cursor"`
	Orders []Order `json:"orders"`
}

func (r GetOrdersResponse) PageItems() []Order { return r.Orders }
func (r GetOrdersResponse) NextCursor() string { return r.Cursor }

type OrderResponse struct {
	Order Order `json:"order"`
}

// CreateOrderRequest places an order. Exactly one of the yes/no price
// fields should be set for limit orders.
type CreateOrderRequest struct {
	Ticker                  string           `json:"ticker"`
	Side                    Side             `json:"side"`
	Action                  Action           `json:"action"`
	Count                   int64            `json:"count"`
	ClientOrderID           string           `json:"client_order_id,omitempty"`
	Type                    OrderType        `json:"type,omitempty"`
	YesPrice                *int64           `json:"yes_price,omitempty"`
	NoPrice                 *int64           `json:"no_price,omitempty"`
	YesPriceDollars         *decimal.Decimal `json:"yes_price_dollars,omitempty"`
	NoPriceDollars          *decimal.Decimal `json:"no_price_dollars,omitempty"`
	ExpirationTS            *int64           `json:"expiration_ts,omitempty"`
	TimeInForce             TimeInForce      `json:"time_in_force,omitempty"`
	BuyMaxCost              *int64           `json:"buy_max_cost,omitempty"`
	PostOnly                *bool            `json:"post_only,omitempty"`
	ReduceOnly              *bool            `json:"reduce_only,omitempty"`
	SelfTradePreventionType string           `json:"self_trade_prevention_type,omitempty"`
	OrderGroupID            string           `json:"order_group_id,omitempty"`
	CancelOrderOnPause      *bool            `json:"cancel_order_on_pause,omitempty"`
}

type AmendOrderRequest struct {
	Ticker               string           `json:"ticker"`
	Side                 Side             `json:"side"`
	Action               Action           `json:"action"`
	ClientOrderID        string           `json:"client_order_id"`
	UpdatedClientOrderID string           `json:"updated_client_order_id"`
	YesPrice             *int64           `json:"yes_price,omitempty"`
	NoPrice              *int64           `json:"no_price,omitempty"`
	YesPriceDollars      *decimal.Decimal `json:"yes_price_dollars,omitempty"`
	NoPriceDollars       *decimal.Decimal `json:"no_price_dollars,omitempty"`
	Count                *int64           `json:"count,omitempty"`
}

type AmendOrderResponse struct {
	OldOrder Order `json:"old_order"`
	Order    Order `json:"order"`
}

// DecreaseOrderRequest takes exactly one of ReduceBy and ReduceTo.
type DecreaseOrderRequest struct {
	ReduceBy *int64 `json:"reduce_by,omitempty"`
	ReduceTo *int64 `json:"reduce_to,omitempty"`
}

type CancelOrderResponse struct {
	Order     Order `json:"order"`
	ReducedBy int64 `json:"reduced_by"`
}

type BatchCreateOrdersRequest struct {
	Orders []CreateOrderRequest `json:"orders"`
}

type BatchOrderResult struct {
	ClientOrderID string      `json:"client_order_id,omitempty"`
	Order         *Order      `json:"order,omitempty"`
	Error         *OrderError `json:"error,omitempty"`
}

type BatchCreateOrdersResponse struct {
	Orders []BatchOrderResult `json:"orders"`
}

type BatchCancelOrdersRequest struct {
	IDs []string `json:"ids"`
}

type BatchCancelResult struct {
	OrderID   string      `json:"order_id"`
	ReducedBy int64       `json:"reduced_by"`
	Order     *Order      `json:"order,omitempty"`
	Error     *OrderError `json:"error,omitempty"`
}

type BatchCancelOrdersResponse struct {
	Orders []BatchCancelResult `json:"orders"`
}

type QueuePosition struct {
	OrderID       string `json:"order_id"`
	MarketTicker  string `json:"market_ticker"`
	QueuePosition int64  `json:"queue_position"`
}

type QueuePositionsQuery struct {
	MarketTickers []string `url:"market_tickers,omitempty"`
	EventTicker   *string  `url:"event_ticker,omitempty"`
}

type GetQueuePositionsResponse struct {
	QueuePositions []QueuePosition `json:"queue_positions"`
}

type GetOrderQueuePositionResponse struct {
	QueuePosition int64 `json:"queue_position"`
}

type OrderGroup struct {
	ID                  string `json:"id"`
	IsAutoCancelEnabled bool   `json:"is_auto_cancel_enabled"`
}

type GetOrderGroupsResponse struct {
	OrderGroups []OrderGroup `json:"order_groups"`
}

type GetOrderGroupResponse struct {
	IsAutoCancelEnabled bool     `json:"is_auto_cancel_enabled"`
	Orders              []string `json:"orders"`
}

type CreateOrderGroupRequest struct {
	ContractsLimit int64 `json:"contracts_limit"`
}

type CreateOrderGroupResponse struct {
	OrderGroupID string `json:"order_group_id"`
}

func (c *Client) GetOrders(ctx context.Context, q OrdersQuery) (GetOrdersResponse, error) {
	return Execute[GetOrdersResponse](ctx, c, RouteGetOrders, Request{Query: q})
}

func (c *Client) Orders(ctx context.Context, q OrdersQuery) iter.Seq2[Order, error] {
	return Paginate[GetOrdersResponse, Order](ctx, c, RouteGetOrders, Request{Query: q})
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (OrderResponse, error) {
	return Execute[OrderResponse](ctx, c, RouteGetOrder, Request{
		PathParams: map[string]string{"order_id": orderID},
	})
}

// CreateOrder places a single order. The call is not idempotent unless
// ClientOrderID is set; retrying it blindly can place the order twice.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	return Execute[OrderResponse](ctx, c, RouteCreateOrder, Request{Body: req})
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (CancelOrderResponse, error) {
	return Execute[CancelOrderResponse](ctx, c, RouteCancelOrder, Request{
		PathParams: map[string]string{"order_id": orderID},
	})
}

func (c *Client) AmendOrder(ctx context.Context, orderID string, req AmendOrderRequest) (AmendOrderResponse, error) {
	return Execute[AmendOrderResponse](ctx, c, RouteAmendOrder, Request{
		PathParams: map[string]string{"order_id": orderID},
		Body:       req,
	})
}

func (c *Client) DecreaseOrder(ctx context.Context, orderID string, req DecreaseOrderRequest) (OrderResponse, error) {
	return Execute[OrderResponse](ctx, c, RouteDecreaseOrder, Request{
		PathParams: map[string]string{"order_id": orderID},
		Body:       req,
	})
}

func (c *Client) BatchCreateOrders(ctx context.Context, req BatchCreateOrdersRequest) (BatchCreateOrdersResponse, error) {
	return Execute[BatchCreateOrdersResponse](ctx, c, RouteBatchCreateOrders, Request{Body: req})
}

func (c *Client) BatchCancelOrders(ctx context.Context, orderIDs []string) (BatchCancelOrdersResponse, error) {
	return Execute[BatchCancelOrdersResponse](ctx, c, RouteBatchCancelOrders, Request{
		Body: BatchCancelOrdersRequest{IDs: orderIDs},
	})
}

func (c *Client) GetQueuePositions(ctx context.Context, q QueuePositionsQuery) (GetQueuePositionsResponse, error) {
	return Execute[GetQueuePositionsResponse](ctx, c, RouteGetQueuePositions, Request{Query: q})
}

func (c *Client) GetOrderQueuePosition(ctx context.Context, orderID string) (GetOrderQueuePositionResponse, error) {
	return Execute[GetOrderQueuePositionResponse](ctx, c, RouteGetOrderQueuePosition, Request{
		PathParams: map[string]string{"order_id": orderID},
	})
}

func (c *Client) GetOrderGroups(ctx context.Context) (GetOrderGroupsResponse, error) {
	return Execute[GetOrderGroupsResponse](ctx, c, RouteGetOrderGroups, Request{})
}

func (c *Client) GetOrderGroup(ctx context.Context, orderGroupID string) (GetOrderGroupResponse, error) {
	return Execute[GetOrderGroupResponse](ctx, c, RouteGetOrderGroup, Request{
		PathParams: map[string]string{"order_group_id": orderGroupID},
	})
}

// CreateOrderGroup creates a group whose orders are all canceled once
// ContractsLimit contracts have been filled across them.
func (c *Client) CreateOrderGroup(ctx context.Context, req CreateOrderGroupRequest) (CreateOrderGroupResponse, error) {
	return Execute[CreateOrderGroupResponse](ctx, c, RouteCreateOrderGroup, Request{Body: req})
}

func (c *Client) DeleteOrderGroup(ctx context.Context, orderGroupID string) error {
	_, err := Execute[Empty](ctx, c, RouteDeleteOrderGroup, Request{
		PathParams: map[string]string{"order_group_id": orderGroupID},
	})
	return err
}

// ResetOrderGroup resets the filled contract count of a group to zero.
func (c *Client) ResetOrderGroup(ctx context.Context, orderGroupID string) error {
	_, err := Execute[Empty](ctx, c, RouteResetOrderGroup, Request{
		PathParams: map[string]string{"order_group_id": orderGroupID},
	})
	return err
}
