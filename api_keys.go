package kalshi

import "context"

type APIKey struct {
	APIKeyID string   `json:"api_key_id"`
	Name     string   `json:"name"`
	Scopes   []string `json:"scopes,omitempty"`
}

type GetAPIKeysResponse struct {
	APIKeys []APIKey `json:"api_keys"`
}

type GenerateAPIKeyRequest struct {
	Name string `json:"name"`
}

// GenerateAPIKeyResponse carries the only copy of the new private key the
// exchange will ever hand out.
type GenerateAPIKeyResponse struct {
	APIKeyID   string `json:"api_key_id"`
	PrivateKey string `json:"private_key"`
}

func (c *Client) GetAPIKeys(ctx context.Context) (GetAPIKeysResponse, error) {
	return Execute[GetAPIKeysResponse](ctx, c, RouteGetAPIKeys, Request{})
}

func (c *Client) GenerateAPIKey(ctx context.Context, req GenerateAPIKeyRequest) (GenerateAPIKeyResponse, error) {
	return Execute[GenerateAPIKeyResponse](ctx, c, RouteGenerateAPIKey, Request{Body: req})
}

func (c *Client) DeleteAPIKey(ctx context.Context, apiKeyID string) error {
	_, err := Execute[Empty](ctx, c, RouteDeleteAPIKey, Request{
		PathParams: map[string]string{"api_key": apiKeyID},
	})
	return err
}
