package kalshi

import (
	"context"
	"encoding/json"
	"iter"
	"time"
)

type Milestone struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Category            string          `json:"category"`
	Type                string          `json:"type"`
	StartDate           *time.Time      `json:"start_date,omitempty"`
	EndDate             *time.Time      `json:"end_date,omitempty"`
	NotificationMessage string          `json:"notification_message,omitempty"`
	PrimaryEventTickers []string        `json:"primary_event_tickers,omitempty"`
	RelatedEventTickers []string        `json:"related_event_tickers,omitempty"`
	Details             json.RawMessage `json:"details,omitempty"`
	SourceID            string          `json:"source_id,omitempty"`
	LastUpdatedTS       *time.Time      `json:"last_updated_ts,omitempty"`
}

type MilestonesQuery struct {
	// Limit is required by the exchange.
	Limit            int     `url:"limit"`
	Cursor           *string `url:"cursor,omitempty"`
	Category         *string `url:"category,omitempty"`
	Type             *string `url:"type,omitempty"`
	MinimumStartDate *string `url:"minimum_start_date,omitempty"`
}

type GetMilestonesResponse struct {
	Cursor     string      `json:"cursor"`
	Milestones []Milestone `json:"milestones"`
}

func (r GetMilestonesResponse) PageItems() []Milestone { return r.Milestones }
func (r GetMilestonesResponse) NextCursor() string     { return r.Cursor }

type GetMilestoneResponse struct {
	Milestone Milestone `json:"milestone"`
}

func (c *Client) GetMilestones(ctx context.Context, q MilestonesQuery) (GetMilestonesResponse, error) {
	return Execute[GetMilestonesResponse](ctx, c, RouteGetMilestones, Request{Query: q})
}

func (c *Client) Milestones(ctx context.Context, q MilestonesQuery) iter.Seq2[Milestone, error] {
	return Paginate[GetMilestonesResponse, Milestone](ctx, c, RouteGetMilestones, Request{Query: q})
}

func (c *Client) GetMilestone(ctx context.Context, id string) (GetMilestoneResponse, error) {
	return Execute[GetMilestoneResponse](ctx, c, RouteGetMilestone, Request{
		PathParams: map[string]string{"milestone_id": id},
	})
}
