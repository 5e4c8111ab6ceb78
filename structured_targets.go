package kalshi

import (
	"context"
	"encoding/json"
	"iter"
	"time"
)

type StructuredTarget struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Details       json.RawMessage `json:"details,omitempty"`
	SourceID      string          `json:"source_id,omitempty"`
	LastUpdatedTS time.Time       `json:"last_updated_ts"`
}

type StructuredTargetsQuery struct {
	Limit       *int    `url:"page_size,omitempty"`
	Cursor      *string `url:"cursor,omitempty"`
	Type        *string `url:"type,omitempty"`
	Competition *string `url:"competition,omitempty"`
}

type GetStructuredTargetsResponse struct {
	Cursor            string             `json:"cursor"`
	StructuredTargets []StructuredTarget `json:"structured_targets"`
}

func (r GetStructuredTargetsResponse) PageItems() []StructuredTarget { return r.StructuredTargets }
func (r GetStructuredTargetsResponse) NextCursor() string            { return r.Cursor }

type GetStructuredTargetResponse struct {
	StructuredTarget StructuredTarget `json:"structured_target"`
}

func (c *Client) GetStructuredTargets(ctx context.Context, q StructuredTargetsQuery) (GetStructuredTargetsResponse, error) {
	return Execute[GetStructuredTargetsResponse](ctx, c, RouteGetStructuredTargets, Request{Query: q})
}

func (c *Client) StructuredTargets(ctx context.Context, q StructuredTargetsQuery) iter.Seq2[StructuredTarget, error] {
	return Paginate[GetStructuredTargetsResponse, StructuredTarget](ctx, c, RouteGetStructuredTargets, Request{Query: q})
}

func (c *Client) GetStructuredTarget(ctx context.Context, id string) (GetStructuredTargetResponse, error) {
	return Execute[GetStructuredTargetResponse](ctx, c, RouteGetStructuredTarget, Request{
		PathParams: map[string]string{"structured_target_id": id},
	})
}
