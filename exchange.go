package kalshi

import (
	"context"
	"time"
)

type ExchangeStatus struct {
	ExchangeActive              bool       `json:"exchange_active"`
	TradingActive               bool       `json:"trading_active"`
	ExchangeEstimatedResumeTime *time.Time `json:"exchange_estimated_resume_time,omitempty"`
}

type DaySchedule struct {
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// StandardHours is a weekly trading schedule in effect between StartTime
// and EndTime. Open and close times are wall clock times in US Eastern.
type StandardHours struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Monday    []DaySchedule `json:"monday"`
	Tuesday   []DaySchedule `json:"tuesday"`
	Wednesday []DaySchedule `json:"wednesday"`
	Thursday  []DaySchedule `json:"thursday"`
	Friday    []DaySchedule `json:"friday"`
	Saturday  []DaySchedule `json:"saturday"`
	Sunday    []DaySchedule `json:"sunday"`
}

type MaintenanceWindow struct {
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

type Schedule struct {
	MaintenanceWindows []MaintenanceWindow `json:"maintenance_windows"`
	StandardHours      []StandardHours     `json:"standard_hours"`
}

type GetExchangeScheduleResponse struct {
	Schedule Schedule `json:"schedule"`
}

type Announcement struct {
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	DeliveryTime time.Time `json:"delivery_time"`
	Status       string    `json:"status"`
}

type GetExchangeAnnouncementsResponse struct {
	Announcements []Announcement `json:"announcements"`
}

type GetUserDataTimestampResponse struct {
	AsOfTime time.Time `json:"as_of_time"`
}

func (c *Client) GetExchangeStatus(ctx context.Context) (ExchangeStatus, error) {
	return Execute[ExchangeStatus](ctx, c, RouteGetExchangeStatus, Request{})
}

func (c *Client) GetExchangeSchedule(ctx context.Context) (GetExchangeScheduleResponse, error) {
	return Execute[GetExchangeScheduleResponse](ctx, c, RouteGetExchangeSchedule, Request{})
}

func (c *Client) GetExchangeAnnouncements(ctx context.Context) (GetExchangeAnnouncementsResponse, error) {
	return Execute[GetExchangeAnnouncementsResponse](ctx, c, RouteGetExchangeAnnouncements, Request{})
}

// GetUserDataTimestamp reports how fresh the portfolio endpoints' data is.
func (c *Client) GetUserDataTimestamp(ctx context.Context) (GetUserDataTimestampResponse, error) {
	return Execute[GetUserDataTimestampResponse](ctx, c, RouteGetUserDataTimestamp, Request{})
}
