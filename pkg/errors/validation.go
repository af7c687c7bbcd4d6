package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxScopeLength = 200
	maxCardLength  = 64
)

// ValidateScope validates a scope key (e.g. "dashboard" or "funnel:<uuid>").
//
// Scope keys become part of persisted storage keys, so the rules are strict:
//   - No empty keys
//   - Maximum length of 200 characters
//   - No control characters or whitespace
func ValidateScope(scope string) error {
	if scope == "" {
		return New(ErrCodeInvalidScope, "scope cannot be empty")
	}

	if len(scope) > maxScopeLength {
		return New(ErrCodeInvalidScope, "scope too long (max %d characters)", maxScopeLength)
	}

	for _, r := range scope {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScope, "scope contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidScope, "scope cannot contain whitespace")
		}
	}

	return nil
}

// cardIDRegex matches card identifiers: lowercase words joined by - or _.
var cardIDRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9_-]*[a-z0-9])?$`)

// ValidateCardID validates a single card identifier.
func ValidateCardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCard, "card id cannot be empty")
	}
	if len(id) > maxCardLength {
		return New(ErrCodeInvalidCard, "card id too long (max %d characters)", maxCardLength)
	}
	if !cardIDRegex.MatchString(id) {
		return New(ErrCodeInvalidCard, "invalid card id: %q", id)
	}
	return nil
}

// ValidateOrder validates every id of an order and rejects duplicates.
func ValidateOrder(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if err := ValidateCardID(id); err != nil {
			return err
		}
		if seen[id] {
			return New(ErrCodeInvalidCard, "duplicate card id: %q", id)
		}
		seen[id] = true
	}
	return nil
}

// ValidateView validates a view name against the known set.
func ValidateView(view string, known []string) error {
	view = strings.TrimSpace(view)
	if view == "" {
		return New(ErrCodeInvalidView, "view cannot be empty")
	}
	for _, k := range known {
		if k == view {
			return nil
		}
	}
	return New(ErrCodeInvalidView, "unknown view %q (known: %s)", view, strings.Join(known, ", "))
}
