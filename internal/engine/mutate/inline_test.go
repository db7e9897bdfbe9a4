package mutate

import (
	"testing"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

func TestToggleInlineWrap(t *testing.T) {
	res, ok := ToggleInline(selection.Select("bold me", 0, 4), "**")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "**bold** me" {
		t.Errorf("text = %q, want %q", res.Text, "**bold** me")
	}
	if res.Start != 2 || res.End != 6 {
		t.Errorf("selection = (%d, %d), want (2, 6)", res.Start, res.End)
	}
	if got := res.Text[res.Start:res.End]; got != "bold" {
		t.Errorf("selected = %q, want %q", got, "bold")
	}
}

func TestToggleInlineWrapCaret(t *testing.T) {
	res, ok := ToggleInline(selection.Caret("ab", 1), "*")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "a**b" {
		t.Errorf("text = %q, want %q", res.Text, "a**b")
	}
	if res.Start != 2 || res.End != 2 {
		t.Errorf("caret = (%d, %d), want (2, 2)", res.Start, res.End)
	}
}

func TestToggleInlineUnwrapInside(t *testing.T) {
	// Selection includes the markers themselves.
	res, ok := ToggleInline(selection.Select("**bold** me", 0, 8), "**")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "bold me" {
		t.Errorf("text = %q, want %q", res.Text, "bold me")
	}
	if res.Start != 0 || res.End != 4 {
		t.Errorf("selection = (%d, %d), want (0, 4)", res.Start, res.End)
	}
}

func TestToggleInlineUnwrapOutside(t *testing.T) {
	// Selection covers only the text between the markers.
	res, ok := ToggleInline(selection.Select("say ~~word~~ now", 6, 10), "~~")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "say word now" {
		t.Errorf("text = %q, want %q", res.Text, "say word now")
	}
	if res.Start != 4 || res.End != 8 {
		t.Errorf("selection = (%d, %d), want (4, 8)", res.Start, res.End)
	}
	if got := res.Text[res.Start:res.End]; got != "word" {
		t.Errorf("selected = %q, want %q", got, "word")
	}
}

// Wrapping and then toggling again on the resulting selection restores
// the original text and bounds.
func TestToggleInlineRoundTrip(t *testing.T) {
	for _, marker := range []string{"**", "*", "`", "~~"} {
		t.Run(marker, func(t *testing.T) {
			orig := selection.Select("pick me up", 5, 7)

			wrapped, ok := ToggleInline(orig, marker)
			if !ok {
				t.Fatal("wrap did not apply")
			}
			back, ok := ToggleInline(wrapped.State(), marker)
			if !ok {
				t.Fatal("unwrap did not apply")
			}

			if back.Text != orig.Text {
				t.Errorf("text = %q, want %q", back.Text, orig.Text)
			}
			if back.Start != orig.Start || back.End != orig.End {
				t.Errorf("selection = (%d, %d), want (%d, %d)", back.Start, back.End, orig.Start, orig.End)
			}
		})
	}
}

// A selection shorter than two markers must not be treated as wrapped
// even though the marker is both its prefix and suffix.
func TestToggleInlineMarkerOnlySelectionWraps(t *testing.T) {
	res, ok := ToggleInline(selection.Select("*", 0, 1), "*")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "***" {
		t.Errorf("text = %q, want %q", res.Text, "***")
	}
	if res.Start != 1 || res.End != 2 {
		t.Errorf("selection = (%d, %d), want (1, 2)", res.Start, res.End)
	}
}

func TestToggleInlineEmptyMarker(t *testing.T) {
	if _, ok := ToggleInline(selection.Caret("x", 0), ""); ok {
		t.Error("empty marker should not apply")
	}
}

func TestInsertLinkCaret(t *testing.T) {
	res, ok := InsertLink(selection.Caret("go  docs", 3))
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "go []() docs" {
		t.Errorf("text = %q, want %q", res.Text, "go []() docs")
	}
	// Caret sits between the brackets.
	if res.Start != 4 || res.End != 4 {
		t.Errorf("caret = (%d, %d), want (4, 4)", res.Start, res.End)
	}
}

func TestInsertLinkWrapsSelection(t *testing.T) {
	res, ok := InsertLink(selection.Select("go docs", 3, 7))
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "go [docs]()" {
		t.Errorf("text = %q, want %q", res.Text, "go [docs]()")
	}
	// Caret sits inside the parentheses, ready for the URL.
	if res.Start != 10 || res.End != 10 {
		t.Errorf("caret = (%d, %d), want (10, 10)", res.Start, res.End)
	}
	if res.Text[res.Start-1] != '(' || res.Text[res.Start] != ')' {
		t.Errorf("caret not inside parentheses in %q", res.Text)
	}
}
