// Package codec converts list-valued fields (genres, tags, exercises) to and
// from the JSON text columns they are stored in.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeList encodes a string list as a JSON array. A nil list encodes as "[]".
func EncodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(data), nil
}

// DecodeList decodes a JSON array column. Empty or NULL-ish columns decode to
// an empty, non-nil list.
func DecodeList(column string) ([]string, error) {
	trimmed := strings.TrimSpace(column)
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("decoding list %q: %w", column, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
