package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/blockpad/internal/input/key"
)

func TestDefaultKeymapParses(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default keymap invalid: %v", err)
	}
}

func TestRegistryLookupDefaults(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Default()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		ev   key.Event
		want string
	}{
		{key.NewSpecialEvent(key.KeyEnter, key.ModNone), "split-block"},
		{key.NewSpecialEvent(key.KeyEnter, key.ModShift), "soft-newline"},
		{key.NewRuneEvent('b', key.ModCtrl), "bold"},
		{key.NewRuneEvent('B', key.ModCtrl), "bold"},
		{key.NewRuneEvent('i', key.ModCtrl), "italic"},
		{key.NewRuneEvent('u', key.ModCtrl), "underline"},
		{key.NewRuneEvent('j', key.ModCtrl), "code"},
		{key.NewRuneEvent('z', key.ModCtrl), "undo"},
		{key.NewRuneEvent('z', key.ModCtrl|key.ModShift), "redo"},
		{key.NewSpecialEvent(key.KeyBackspace, key.ModNone), "backspace"},
		{key.NewRuneEvent('s', key.ModCtrl), "save"},
	}

	for _, tt := range tests {
		t.Run(tt.ev.Spec(), func(t *testing.T) {
			b, ok := r.Lookup(tt.ev)
			if !ok {
				t.Fatalf("expected binding for %s", tt.ev)
			}
			if b.Command != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Command)
			}
		})
	}

	for _, ev := range []key.Event{
		key.NewRuneEvent('a', key.ModNone),
		key.NewRuneEvent('#', key.ModNone),
		key.NewSpecialEvent(key.KeyEscape, key.ModNone),
	} {
		if b, ok := r.Lookup(ev); ok {
			t.Errorf("unexpected binding %q for %s", b.Command, ev)
		}
	}
}

func TestUserKeymapOverrides(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Default()); err != nil {
		t.Fatal(err)
	}

	user := FromMap("user", map[string]string{
		"<C-b>":  "italic",
		"Ctrl+S": "",
		"Ctrl+K": "strikethrough",
	}).WithPriority(10).WithSource("user")
	if err := r.Register(user); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if b, _ := r.Lookup(key.MustParse("Ctrl+B")); b.Command != "italic" {
		t.Errorf("expected user override, got %q", b.Command)
	}
	if _, ok := r.Lookup(key.MustParse("Ctrl+S")); ok {
		t.Error("expected Ctrl+S to be unbound")
	}
	if b, _ := r.Lookup(key.MustParse("Ctrl+K")); b.Command != "strikethrough" {
		t.Errorf("expected new binding, got %q", b.Command)
	}

	r.Unregister("user")
	if b, _ := r.Lookup(key.MustParse("Ctrl+B")); b.Command != "bold" {
		t.Errorf("expected default after unregister, got %q", b.Command)
	}
}

func TestLaterRegistrationWinsTies(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewKeymap("a").Add("Ctrl+X", "first"))
	_ = r.Register(NewKeymap("b").Add("Ctrl+X", "second"))

	if b, _ := r.Lookup(key.MustParse("Ctrl+X")); b.Command != "second" {
		t.Errorf("expected later keymap to win, got %q", b.Command)
	}

	// Re-registering replaces and moves the keymap to the end.
	_ = r.Register(NewKeymap("a").Add("Ctrl+X", "again"))
	if b, _ := r.Lookup(key.MustParse("Ctrl+X")); b.Command != "again" {
		t.Errorf("expected replaced keymap to win, got %q", b.Command)
	}
	if stats := r.Stats(); stats.Keymaps != 2 || stats.Chords != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, ErrNilKeymap) {
		t.Errorf("expected ErrNilKeymap, got %v", err)
	}
	if err := r.Register(NewKeymap("bad").Add("Hyper+x", "nope")); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
	if err := NewKeymap("empty").Add("", "x").Validate(); err == nil {
		t.Error("expected error for empty keys")
	}
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory(Default().Bindings)
	if len(groups) == 0 || groups[0].Name != "Blocks" {
		t.Fatalf("expected Blocks first, got %+v", groups)
	}
	total := 0
	for _, g := range groups {
		total += len(g.Bindings)
	}
	if total != len(Default().Bindings) {
		t.Errorf("grouping lost bindings: %d != %d", total, len(Default().Bindings))
	}
}

func TestAllBindingsHidesUnbound(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewKeymap("a").Add("Ctrl+X", "cut").Add("Ctrl+C", "copy"))
	_ = r.Register(NewKeymap("b").WithPriority(1).Add("Ctrl+X", ""))

	all := r.AllBindings()
	if len(all) != 1 || all[0].Command != "copy" {
		t.Errorf("expected only copy, got %+v", all)
	}
}
