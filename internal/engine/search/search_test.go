package search

import (
	"testing"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

func TestFindForward(t *testing.T) {
	tests := []struct {
		name      string
		st        selection.State
		query     string
		wantStart int
		wantEnd   int
	}{
		{"from buffer start", selection.Caret("one two one", 0), "one", 0, 3},
		{"after first occurrence", selection.Caret("one two one", 3), "one", 8, 11},
		{"case insensitive", selection.Caret("Hello World", 0), "world", 6, 11},
		{"from active selection end", selection.Select("one two one", 0, 3), "one", 8, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := Find(tt.st, tt.query, false)
			if !ok {
				t.Fatal("no match")
			}
			if span.Start != tt.wantStart || span.End != tt.wantEnd {
				t.Errorf("span = (%d, %d), want (%d, %d)", span.Start, span.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// A forward search from the end of the buffer wraps around and finds an
// occurrence at the very start.
func TestFindForwardWrapsAround(t *testing.T) {
	text := "ABC sits at the start"
	span, ok := Find(selection.Caret(text, len(text)), "abc", false)
	if !ok {
		t.Fatal("no match after wraparound")
	}
	if span.Start != 0 || span.End != 3 {
		t.Errorf("span = (%d, %d), want (0, 3)", span.Start, span.End)
	}
}

func TestFindBackward(t *testing.T) {
	span, ok := Find(selection.Caret("one two one", 11), "one", true)
	if !ok {
		t.Fatal("no match")
	}
	if span.Start != 8 || span.End != 11 {
		t.Errorf("span = (%d, %d), want (8, 11)", span.Start, span.End)
	}

	// From the start of the second occurrence, the previous one is found.
	span, ok = Find(selection.Select("one two one", 8, 11), "one", true)
	if !ok {
		t.Fatal("no match")
	}
	if span.Start != 0 || span.End != 3 {
		t.Errorf("span = (%d, %d), want (0, 3)", span.Start, span.End)
	}
}

func TestFindBackwardWrapsAround(t *testing.T) {
	span, ok := Find(selection.Caret("tail match", 0), "match", true)
	if !ok {
		t.Fatal("no match after wraparound")
	}
	if span.Start != 5 || span.End != 10 {
		t.Errorf("span = (%d, %d), want (5, 10)", span.Start, span.End)
	}
}

func TestFindNoMatch(t *testing.T) {
	if _, ok := Find(selection.Caret("haystack", 0), "needle", false); ok {
		t.Error("should report no match")
	}
	if _, ok := Find(selection.Caret("haystack", 0), "needle", true); ok {
		t.Error("should report no match in reverse")
	}
}

func TestFindEmptyQuery(t *testing.T) {
	if _, ok := Find(selection.Caret("text", 0), "", false); ok {
		t.Error("empty query should not match")
	}
}

// Queries are literal text: regex metacharacters have no meaning.
func TestFindQuotesMetacharacters(t *testing.T) {
	span, ok := Find(selection.Caret("abc a.c", 0), "a.c", false)
	if !ok {
		t.Fatal("no match")
	}
	if span.Start != 4 || span.End != 7 {
		t.Errorf("span = (%d, %d), want (4, 7)", span.Start, span.End)
	}
}

func TestReplaceOneSubstitutesMatchingSelection(t *testing.T) {
	st := selection.Select("say Hello now", 4, 9)
	out, status := ReplaceOne(st, "hello", "hi")

	if status != Replaced {
		t.Fatalf("status = %v, want Replaced", status)
	}
	if out.Text != "say hi now" {
		t.Errorf("text = %q, want %q", out.Text, "say hi now")
	}
	// No further occurrence: caret rests after the replacement.
	if out.Start != 6 || out.End != 6 {
		t.Errorf("selection = (%d, %d), want (6, 6)", out.Start, out.End)
	}
}

func TestReplaceOneQueuesNextMatch(t *testing.T) {
	st := selection.Select("aa bb aa", 0, 2)
	out, status := ReplaceOne(st, "aa", "xx")

	if status != Replaced {
		t.Fatalf("status = %v, want Replaced", status)
	}
	if out.Text != "xx bb aa" {
		t.Errorf("text = %q, want %q", out.Text, "xx bb aa")
	}
	if out.Start != 6 || out.End != 8 {
		t.Errorf("selection = (%d, %d), want (6, 8)", out.Start, out.End)
	}
	if out.Selected() != "aa" {
		t.Errorf("selected = %q, want next occurrence", out.Selected())
	}
}

// When the selection does not equal the query the call only finds,
// never replaces.
func TestReplaceOneFindsWithoutReplacing(t *testing.T) {
	st := selection.Caret("foo bar", 0)
	out, status := ReplaceOne(st, "bar", "qux")

	if status != Found {
		t.Fatalf("status = %v, want Found", status)
	}
	if out.Text != "foo bar" {
		t.Errorf("text = %q, want unchanged", out.Text)
	}
	if out.Start != 4 || out.End != 7 {
		t.Errorf("selection = (%d, %d), want (4, 7)", out.Start, out.End)
	}
}

func TestReplaceOneNoMatch(t *testing.T) {
	st := selection.Caret("foo", 0)
	out, status := ReplaceOne(st, "zzz", "x")

	if status != NoMatch {
		t.Fatalf("status = %v, want NoMatch", status)
	}
	if !out.Equal(st) {
		t.Error("state must be unchanged on no match")
	}
}

func TestReplaceAll(t *testing.T) {
	out, n := ReplaceAll(selection.Caret("banana", 0), "a", "b")
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if out.Text != "bbnbnb" {
		t.Errorf("text = %q, want %q", out.Text, "bbnbnb")
	}
}

func TestReplaceAllCaseInsensitive(t *testing.T) {
	out, n := ReplaceAll(selection.Caret("Apple and apple", 0), "apple", "pear")
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if out.Text != "pear and pear" {
		t.Errorf("text = %q, want %q", out.Text, "pear and pear")
	}
}

func TestReplaceAllLiteralQuery(t *testing.T) {
	out, n := ReplaceAll(selection.Caret("1+1=2", 0), "1+1", "two")
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if out.Text != "two=2" {
		t.Errorf("text = %q, want %q", out.Text, "two=2")
	}
}

func TestReplaceAllLiteralReplacement(t *testing.T) {
	out, n := ReplaceAll(selection.Caret("cost", 0), "cost", "$1")
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if out.Text != "$1" {
		t.Errorf("text = %q, want %q (replacement must not expand)", out.Text, "$1")
	}
}

// Zero replacements is a reported outcome, not an error.
func TestReplaceAllNoMatches(t *testing.T) {
	st := selection.Caret("unchanged", 3)
	out, n := ReplaceAll(st, "zzz", "x")
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
	if !out.Equal(st) {
		t.Error("state must be unchanged when nothing matches")
	}
}

func TestReplaceAllClampsSelection(t *testing.T) {
	out, n := ReplaceAll(selection.Select("aaaa", 0, 4), "aaaa", "")
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if out.Text != "" {
		t.Errorf("text = %q, want empty", out.Text)
	}
	if out.Start != 0 || out.End != 0 {
		t.Errorf("selection = (%d, %d), want (0, 0)", out.Start, out.End)
	}
}

func TestReplaceStatusString(t *testing.T) {
	tests := []struct {
		status ReplaceStatus
		want   string
	}{
		{NoMatch, "no match"},
		{Found, "found"},
		{Replaced, "replaced"},
		{ReplaceStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
