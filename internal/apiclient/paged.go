package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Paged is the list envelope used by the restaurant and post services.
type Paged[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// DecodeItems reads either a bare array or an object with an items field.
func DecodeItems[T any](payload json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}

	var page Paged[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("failed to decode paged list: %w", err)
	}
	if page.Items == nil {
		return []T{}, nil
	}
	return page.Items, nil
}
