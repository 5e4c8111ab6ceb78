package kalshi

import "net/http"

// Exchange
var (
	RouteGetExchangeStatus        = Public(http.MethodGet, "/exchange/status")
	RouteGetExchangeSchedule      = Public(http.MethodGet, "/exchange/schedule")
	RouteGetExchangeAnnouncements = Public(http.MethodGet, "/exchange/announcements")
	RouteGetUserDataTimestamp     = Public(http.MethodGet, "/exchange/user_data_timestamp")
)

// Markets
var (
	RouteGetMarkets            = Public(http.MethodGet, "/markets")
	RouteGetMarket             = Public(http.MethodGet, "/markets/{ticker}")
	RouteGetTrades             = Public(http.MethodGet, "/markets/trades")
	RouteGetMarketOrderbook    = Public(http.MethodGet, "/markets/{ticker}/orderbook")
	RouteGetMarketCandlesticks = Public(http.MethodGet, "/series/{series_ticker}/markets/{ticker}/candlesticks")
)

// Events
var (
	RouteGetEvents        = Public(http.MethodGet, "/events")
	RouteGetEvent         = Public(http.MethodGet, "/events/{event_ticker}")
	RouteGetEventMetadata = Public(http.MethodGet, "/events/{event_ticker}/metadata")
)

// Series
var (
	RouteGetSeriesList = Public(http.MethodGet, "/series")
	RouteGetSeries     = Public(http.MethodGet, "/series/{series_ticker}")
)

// Milestones
var (
	RouteGetMilestones = Public(http.MethodGet, "/milestones")
	RouteGetMilestone  = Public(http.MethodGet, "/milestones/{milestone_id}")
)

// Multivariate event collections
var (
	RouteGetMultivariateCollections = Public(http.MethodGet, "/multivariate_event_collections")
	RouteGetMultivariateCollection  = Public(http.MethodGet, "/multivariate_event_collections/{collection_ticker}")
)

// Structured targets
var (
	RouteGetStructuredTargets = Public(http.MethodGet, "/structured_targets")
	RouteGetStructuredTarget  = Public(http.MethodGet, "/structured_targets/{structured_target_id}")
)

// Portfolio
var (
	RouteGetBalance                = Private(http.MethodGet, "/portfolio/balance")
	RouteGetPositions              = Private(http.MethodGet, "/portfolio/positions")
	RouteGetFills                  = Private(http.MethodGet, "/portfolio/fills")
	RouteGetSettlements            = Private(http.MethodGet, "/portfolio/settlements")
	RouteGetTotalRestingOrderValue = Private(http.MethodGet, "/portfolio/summary/total_resting_order_value")
	RouteGetOrders                 = Private(http.MethodGet, "/portfolio/orders")
	RouteGetOrder                  = Private(http.MethodGet, "/portfolio/orders/{order_id}")
	RouteCreateOrder               = Private(http.MethodPost, "/portfolio/orders")
	RouteCancelOrder               = Private(http.MethodDelete, "/portfolio/orders/{order_id}")
	RouteAmendOrder                = Private(http.MethodPost, "/portfolio/orders/{order_id}/amend")
	RouteDecreaseOrder             = Private(http.MethodPost, "/portfolio/orders/{order_id}/decrease")
	RouteBatchCreateOrders         = Private(http.MethodPost, "/portfolio/orders/batched")
	RouteBatchCancelOrders         = Private(http.MethodDelete, "/portfolio/orders/batched")
	RouteGetQueuePositions         = Private(http.MethodGet, "/portfolio/orders/queue_positions")
	RouteGetOrderQueuePosition     = Private(http.MethodGet, "/portfolio/orders/{order_id}/queue_position")
	RouteGetOrderGroups            = Private(http.MethodGet, "/portfolio/order_groups")
	RouteGetOrderGroup             = Private(http.MethodGet, "/portfolio/order_groups/{order_group_id}")
	RouteCreateOrderGroup          = Private(http.MethodPost, "/portfolio/order_groups/create")
	RouteDeleteOrderGroup          = Private(http.MethodDelete, "/portfolio/order_groups/{order_group_id}")
	RouteResetOrderGroup           = Private(http.MethodPut, "/portfolio/order_groups/{order_group_id}/reset")
)

// API keys
var (
	RouteGetAPIKeys     = Private(http.MethodGet, "/api_keys")
	RouteGenerateAPIKey = Private(http.MethodPost, "/api_keys/generate")
	RouteDeleteAPIKey   = Private(http.MethodDelete, "/api_keys/{api_key}")
)

// Communications
var (
	RouteGetCommunicationsID = Private(http.MethodGet, "/communications/id")
	RouteGetRFQs             = Private(http.MethodGet, "/communications/rfqs")
	RouteGetRFQ              = Private(http.MethodGet, "/communications/rfqs/{rfq_id}")
	RouteCreateRFQ           = Private(http.MethodPost, "/communications/rfqs")
	RouteDeleteRFQ           = Private(http.MethodDelete, "/communications/rfqs/{rfq_id}")
	RouteGetQuotes           = Private(http.MethodGet, "/communications/quotes")
	RouteGetQuote            = Private(http.MethodGet, "/communications/quotes/{quote_id}")
	RouteCreateQuote         = Private(http.MethodPost, "/communications/quotes")
	RouteDeleteQuote         = Private(http.MethodDelete, "/communications/quotes/{quote_id}")
	RouteAcceptQuote         = Private(http.MethodPut, "/communications/quotes/{quote_id}/accept")
	RouteConfirmQuote        = Private(http.MethodPut, "/communications/quotes/{quote_id}/confirm")
)
