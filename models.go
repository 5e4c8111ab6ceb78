package kalshi

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ptr returns a pointer to v. Optional query and request fields are
// pointers; Ptr makes setting them a one-liner.
func Ptr[T any](v T) *T {
	return &v
}

// Empty is the response type of endpoints that return nothing of interest.
type Empty struct{}

// Side is the contract side of an order or position.
type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

// Action is the direction of an order.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// PriceLevel is one level of an order book quoted in cents.
type PriceLevel struct {
	Price    int64
	Quantity int64
}

func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode price level: %w", err)
	}
	l.Price, l.Quantity = pair[0], pair[1]
	return nil
}

func (l PriceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{l.Price, l.Quantity})
}

// DollarLevel is one level of an order book quoted in dollars.
type DollarLevel struct {
	Price    decimal.Decimal
	Quantity int64
}

func (l *DollarLevel) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode dollar level: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("failed to decode dollar level: expected 2 elements, got %d", len(pair))
	}
	if err := l.Price.UnmarshalJSON(pair[0]); err != nil {
		return fmt.Errorf("failed to decode dollar level price: %w", err)
	}
	if err := json.Unmarshal(pair[1], &l.Quantity); err != nil {
		return fmt.Errorf("failed to decode dollar level quantity: %w", err)
	}
	return nil
}

func (l DollarLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Price.String(), l.Quantity})
}
