package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModNone)},
		{"#", NewRuneEvent('#', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"Shift+Enter", NewSpecialEvent(KeyEnter, ModShift)},
		{"<S-CR>", NewSpecialEvent(KeyEnter, ModShift)},
		{"Ctrl+B", NewRuneEvent('b', ModCtrl)},
		{"ctrl+b", NewRuneEvent('b', ModCtrl)},
		{"<C-b>", NewRuneEvent('b', ModCtrl)},
		{"Ctrl+Shift+Z", NewRuneEvent('z', ModCtrl|ModShift)},
		{"<C-S-z>", NewRuneEvent('z', ModCtrl|ModShift)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
		{"<C-->", NewRuneEvent('-', ModCtrl)},
		{"BS", NewSpecialEvent(KeyBackspace, ModNone)},
		{"<Del>", NewSpecialEvent(KeyDelete, ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Cmd+s", NewRuneEvent('s', ModMeta)},
		{"  Tab  ", NewSpecialEvent(KeyTab, ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"NotAKey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q): expected %v, got %v", tt.spec, tt.want, err)
		}
	}
}

func TestSpecRoundTrip(t *testing.T) {
	specs := []string{"a", "Enter", "Shift+Enter", "Ctrl+b", "Ctrl+Shift+z", "Space", "Alt+Left", "Backspace"}

	for _, spec := range specs {
		ev := MustParse(spec)
		if ev.Spec() != spec {
			t.Errorf("Spec() = %q, want %q", ev.Spec(), spec)
		}
		again, err := Parse(ev.Spec())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", ev.Spec(), err)
		}
		if again != ev {
			t.Errorf("round trip of %q changed the event: %+v != %+v", spec, again, ev)
		}
	}
}

func TestNormalizeSpec(t *testing.T) {
	got, err := NormalizeSpec("<C-B>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Ctrl+b" {
		t.Errorf("expected Ctrl+b, got %q", got)
	}
}

func TestEventClassification(t *testing.T) {
	if !NewRuneEvent('A', ModShift).IsChar() {
		t.Error("Shift+A should be a character")
	}
	if NewRuneEvent('b', ModCtrl).IsChar() {
		t.Error("Ctrl+b should not be a character")
	}
	if NewRuneEvent('\t', ModNone).IsChar() {
		t.Error("control characters are not printable")
	}
	if !NewSpecialEvent(KeyEnter, ModShift).IsModified() {
		t.Error("Shift+Enter should be modified")
	}
	if !NewRuneEvent('B', ModCtrl).Matches(MustParse("Ctrl+B")) {
		t.Error("upper-case Ctrl chord should match")
	}
	if NewRuneEvent('a', ModShift).Normalize().Modifiers != ModNone {
		t.Error("plain characters should drop Shift")
	}
}

func TestModifier(t *testing.T) {
	m := ModCtrl.With(ModShift)
	if m.String() != "Ctrl+Shift" {
		t.Errorf("expected Ctrl+Shift, got %q", m.String())
	}
	if m.Without(ModShift) != ModCtrl {
		t.Error("Without failed")
	}
	if ModifierFromName("option") != ModAlt {
		t.Error("option should map to Alt")
	}
	if ModifierFromName("hyper") != ModNone {
		t.Error("unknown modifier should be ModNone")
	}
}

func TestKeyNames(t *testing.T) {
	if KeyFromName("PgDn") != KeyPageDown {
		t.Error("PgDn should map to PageDown")
	}
	if KeyEnter.String() != "Enter" {
		t.Errorf("expected Enter, got %q", KeyEnter.String())
	}
	if !KeyLeft.IsNavigation() || KeyEnter.IsNavigation() {
		t.Error("navigation classification wrong")
	}
	if KeyRune.IsSpecial() || !KeyTab.IsSpecial() {
		t.Error("special classification wrong")
	}
}
