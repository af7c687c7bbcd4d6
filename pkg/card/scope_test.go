package card

import (
	"testing"

	"github.com/matzehuels/opsboard/pkg/errors"
)

func TestScopeFor(t *testing.T) {
	const id = "6f1c1f7e-4b0e-4a53-9f5e-2d3c1f0b7a10"

	tests := []struct {
		name     string
		view     string
		ctx      Context
		want     string
		wantCode errors.Code
	}{
		{name: "dashboard", view: "dashboard", want: "dashboard"},
		{name: "funnel", view: "funnel", ctx: Context{}.WithEntity(EntityFunnel, id), want: "funnel:" + id},
		{name: "funnel uppercase id", view: "funnel", ctx: Context{}.WithEntity(EntityFunnel, "6F1C1F7E-4B0E-4A53-9F5E-2D3C1F0B7A10"), want: "funnel:" + id},
		{name: "funnel missing id", view: "funnel", wantCode: errors.ErrCodeInvalidScope},
		{name: "funnel bad id", view: "funnel", ctx: Context{}.WithEntity(EntityFunnel, "nope"), wantCode: errors.ErrCodeInvalidScope},
		{name: "unknown view", view: "courses", wantCode: errors.ErrCodeInvalidView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScopeFor(tt.view, tt.ctx)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ScopeFor() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ScopeFor() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ScopeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
