package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// encodeOrder serializes an order as a JSON array of ids.
func encodeOrder(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeOrder parses a stored order. It accepts a JSON array of strings or a
// comma-delimited list. Empty ids are skipped; ids in a comma list are
// trimmed, JSON ids are kept verbatim.
func decodeOrder(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var ids []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
	} else {
		if strings.ContainsAny(raw, "{}\"") {
			return nil, fmt.Errorf("decode order: unrecognized value %.20q", raw)
		}
		ids = strings.Split(raw, ",")
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}
	}

	out := ids[:0]
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
