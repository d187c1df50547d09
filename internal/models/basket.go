package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Basket maps a product key to its line item, as kept by the page shell.
// Lines stay raw JSON so fields the BFF never reads survive untouched.
type Basket map[string]json.RawMessage

// Items returns the line items ordered by key. The order carries no meaning
// for the shop API; sorting only keeps request bodies stable.
func (b Basket) Items() []json.RawMessage {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		items = append(items, b[k])
	}
	return items
}

func (b Basket) IsEmpty() bool {
	return len(b.Items()) == 0
}

// MarshalJSON renders a nil basket as {} so that the empty basket has a
// single representation.
func (b Basket) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]json.RawMessage(b))
}

// BasketFromItems keys the shop's basket lines by product id.
func BasketFromItems(items []json.RawMessage) (Basket, error) {
	b := make(Basket, len(items))
	for _, item := range items {
		var line BasketLine
		if err := json.Unmarshal(item, &line); err != nil {
			return nil, fmt.Errorf("decode basket line: %w", err)
		}
		b[strconv.Itoa(line.ID)] = item
	}
	return b, nil
}

// BasketLine is the body of a basket add or remove call.
type BasketLine struct {
	ID    int `json:"id"`
	Count int `json:"count"`
}
