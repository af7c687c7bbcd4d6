package errors

import (
	"strings"
	"testing"
)

func TestValidateScope(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"dashboard", "dashboard", false},
		{"funnel instance", "funnel:6f1c1f7e-4b0e-4a53-9f5e-2d3c1f0b7a10", false},
		{"tenant prefixed", "user:42:dashboard", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 201), true},
		{"space", "my dashboard", true},
		{"tab", "dash\tboard", true},
		{"null byte", "dash\x00board", true},
		{"newline", "dash\nboard", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScope(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScope(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScope) {
				t.Errorf("ValidateScope(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidScope)
			}
		})
	}
}

func TestValidateCardID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tasks", false},
		{"dash", "lead-sources", false},
		{"underscore", "lead_sources", false},
		{"digits", "q4", false},
		{"single char", "a", false},

		{"empty", "", true},
		{"uppercase", "Tasks", true},
		{"trailing dash", "tasks-", true},
		{"comma", "a,b", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCardID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	if err := ValidateOrder([]string{"a", "b", "c"}); err != nil {
		t.Errorf("ValidateOrder() unexpected error: %v", err)
	}
	if err := ValidateOrder(nil); err != nil {
		t.Errorf("ValidateOrder(nil) unexpected error: %v", err)
	}
	if err := ValidateOrder([]string{"a", "b", "a"}); err == nil {
		t.Error("ValidateOrder() should reject duplicates")
	}
	if err := ValidateOrder([]string{"a", ""}); err == nil {
		t.Error("ValidateOrder() should reject empty ids")
	}
}

func TestValidateView(t *testing.T) {
	known := []string{"dashboard", "funnel"}

	if err := ValidateView("funnel", known); err != nil {
		t.Errorf("ValidateView(funnel) unexpected error: %v", err)
	}
	if err := ValidateView("  dashboard ", known); err != nil {
		t.Errorf("ValidateView should trim whitespace: %v", err)
	}

	err := ValidateView("courses", known)
	if !Is(err, ErrCodeInvalidView) {
		t.Errorf("ValidateView(courses) code = %v, want %v", GetCode(err), ErrCodeInvalidView)
	}
	if !strings.Contains(err.Error(), "dashboard, funnel") {
		t.Errorf("error should list known views: %v", err)
	}

	if err := ValidateView("", known); err == nil {
		t.Error("ValidateView(\"\") should fail")
	}
}
