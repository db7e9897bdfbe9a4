package mutate

import (
	"testing"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

func TestToggleBlockPrefixApply(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		start    int
		end      int
		prefix   string
		wantText string
	}{
		{"plain line gains heading", "Title", 0, 0, "# ", "# Title"},
		{"bullet replaced by heading", "- item", 3, 3, "# ", "# item"},
		{"heading replaced by deeper heading", "# Title", 0, 0, "## ", "## Title"},
		{"task replaced by quote", "- [x] done", 0, 0, "> ", "> done"},
		{"ordered replaced by bullet", "3. item", 0, 0, "- ", "- item"},
		{"quote replaced by heading", "> aside", 0, 0, "### ", "### aside"},
		{"indentation preserved", "  - x", 0, 0, "# ", "  # x"},
		{"empty buffer gains prefix", "", 0, 0, "# ", "# "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := ToggleBlockPrefix(selection.Select(tt.text, tt.start, tt.end), tt.prefix)
			if !ok {
				t.Fatal("did not apply")
			}
			if res.Text != tt.wantText {
				t.Errorf("text = %q, want %q", res.Text, tt.wantText)
			}
			if res.Start != 0 || res.End != len(tt.wantText) {
				t.Errorf("selection = (%d, %d), want (0, %d)", res.Start, res.End, len(tt.wantText))
			}
		})
	}
}

func TestToggleBlockPrefixOff(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Caret("# Title", 3), "# ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "Title" {
		t.Errorf("text = %q, want %q", res.Text, "Title")
	}
	if res.Start != 0 || res.End != 5 {
		t.Errorf("selection = (%d, %d), want (0, 5)", res.Start, res.End)
	}
}

// Toggling a prefix onto an already differently-prefixed line swaps the
// prefix instead of stacking a second one.
func TestToggleBlockPrefixNeverStacks(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Caret("# Title", 0), "## ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "## Title" {
		t.Errorf("text = %q, want %q", res.Text, "## Title")
	}

	res, ok = ToggleBlockPrefix(res.State(), "# ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "# Title" {
		t.Errorf("text = %q, want %q", res.Text, "# Title")
	}
}

func TestToggleBlockPrefixMultiLine(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Select("a\nb", 0, 3), "> ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "> a\n> b" {
		t.Errorf("text = %q, want %q", res.Text, "> a\n> b")
	}
	if res.Start != 0 || res.End != 7 {
		t.Errorf("selection = (%d, %d), want (0, 7)", res.Start, res.End)
	}
}

// A partial selection expands to whole lines.
func TestToggleBlockPrefixExpandsToLines(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Select("aaa\nbbb", 2, 5), "- ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "- aaa\n- bbb" {
		t.Errorf("text = %q, want %q", res.Text, "- aaa\n- bbb")
	}
	if res.Start != 0 || res.End != 11 {
		t.Errorf("selection = (%d, %d), want (0, 11)", res.Start, res.End)
	}
}

// When some spanned lines carry the prefix and some do not, the toggle
// applies it to all of them.
func TestToggleBlockPrefixMixedLines(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Select("# a\nb", 0, 5), "# ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "# a\n# b" {
		t.Errorf("text = %q, want %q", res.Text, "# a\n# b")
	}
}

func TestToggleBlockPrefixOffMultiLine(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Select("> a\n> b", 0, 7), "> ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "a\nb" {
		t.Errorf("text = %q, want %q", res.Text, "a\nb")
	}
	if res.Start != 0 || res.End != 3 {
		t.Errorf("selection = (%d, %d), want (0, 3)", res.Start, res.End)
	}
}

func TestToggleBlockPrefixEmptyLineInBlock(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Select("a\n\nb", 0, 4), "> ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "> a\n> \n> b" {
		t.Errorf("text = %q, want %q", res.Text, "> a\n> \n> b")
	}
}

// Only the lines touched by the selection are rewritten.
func TestToggleBlockPrefixLeavesOtherLines(t *testing.T) {
	res, ok := ToggleBlockPrefix(selection.Caret("one\ntwo\nthree", 5), "## ")
	if !ok {
		t.Fatal("did not apply")
	}
	if res.Text != "one\n## two\nthree" {
		t.Errorf("text = %q, want %q", res.Text, "one\n## two\nthree")
	}
	if res.Start != 4 || res.End != 10 {
		t.Errorf("selection = (%d, %d), want (4, 10)", res.Start, res.End)
	}
}

func TestToggleBlockPrefixEmptyPrefix(t *testing.T) {
	if _, ok := ToggleBlockPrefix(selection.Caret("x", 0), ""); ok {
		t.Error("empty prefix should not apply")
	}
}
