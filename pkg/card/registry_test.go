package card

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/opsboard/pkg/errors"
)

func TestDashboardVisibility(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want []string
	}{
		{
			name: "no roles",
			ctx:  Context{},
			want: []string{"tasks", "funnel", "courses", "links", "quizzes"},
		},
		{
			name: "ops",
			ctx:  NewContext([]string{"ops"}, nil),
			want: []string{"tasks", "funnel", "courses", "links", "credentials", "quizzes"},
		},
		{
			name: "admin with surveys",
			ctx:  NewContext([]string{"Admin"}, []string{" surveys "}),
			want: []string{"tasks", "funnel", "courses", "links", "credentials", "quizzes", "surveys", "team"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDs(Dashboard().Visible(tt.ctx))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Visible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCardsKeepsHidden(t *testing.T) {
	cards := Funnel().Cards(Context{})
	if len(cards) != len(Funnel().Defs) {
		t.Fatalf("Cards() returned %d descriptors, want %d", len(cards), len(Funnel().Defs))
	}
	for _, c := range cards {
		if c.ID == "forecast" && c.Visible {
			t.Error("forecast should be hidden without the forecast category")
		}
	}
	if got := VisibleIDs(cards); strings.Contains(strings.Join(got, ","), "forecast") {
		t.Errorf("VisibleIDs() = %v, should not include forecast", got)
	}
}

func TestCardsIsPure(t *testing.T) {
	reg := Dashboard()
	admin := NewContext([]string{"admin"}, nil)

	first := IDs(reg.Visible(admin))
	_ = reg.Visible(Context{})
	second := IDs(reg.Visible(admin))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Visible() not pure: %v then %v", first, second)
	}
}

func TestCardsDefaultSize(t *testing.T) {
	reg := Registry{View: "x", Defs: []Definition{{ID: "a"}}}
	cards := reg.Cards(Context{})
	if cards[0].Size != SizeFull {
		t.Errorf("Size = %q, want %q", cards[0].Size, SizeFull)
	}
	if !cards[0].Visible {
		t.Error("nil predicate should mean visible")
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d := Descriptor{ID: "tasks", Title: "Tasks"}
	if err := d.Draw(&buf); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if buf.String() != "Tasks\n" {
		t.Errorf("Draw() wrote %q", buf.String())
	}

	buf.Reset()
	d.Render = func(w io.Writer) error {
		_, err := io.WriteString(w, "custom")
		return err
	}
	if err := d.Draw(&buf); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if buf.String() != "custom" {
		t.Errorf("Draw() wrote %q, want thunk output", buf.String())
	}
}

func TestParseSize(t *testing.T) {
	if ParseSize("HALF") != SizeHalf {
		t.Error("ParseSize(HALF) should be half")
	}
	if ParseSize("wide") != SizeFull {
		t.Error("ParseSize(unknown) should fall back to full")
	}
}

func TestLookup(t *testing.T) {
	reg, ok := Lookup("Funnel")
	if !ok || reg.View != ViewFunnel {
		t.Errorf("Lookup(Funnel) = %v, %v", reg.View, ok)
	}
	if _, ok := Lookup("courses"); ok {
		t.Error("Lookup(courses) should fail")
	}
	if got := Views(); !reflect.DeepEqual(got, []string{"dashboard", "funnel"}) {
		t.Errorf("Views() = %v", got)
	}
}

func TestContextWithEntity(t *testing.T) {
	base := Context{Entity: map[string]string{"a": "1"}}
	next := base.WithEntity("b", "2")

	if base.Value("b") != "" {
		t.Error("WithEntity should not mutate the receiver")
	}
	if next.Value("a") != "1" || next.Value("b") != "2" {
		t.Errorf("WithEntity() entity = %v", next.Entity)
	}
}

func TestResolve(t *testing.T) {
	if reg, err := Resolve(" dashboard"); err != nil || reg.View != ViewDashboard {
		t.Errorf("Resolve(dashboard) = %v, %v", reg.View, err)
	}
	_, err := Resolve("courses")
	if !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("Resolve(courses) error = %v, want INVALID_VIEW", err)
	}
}
