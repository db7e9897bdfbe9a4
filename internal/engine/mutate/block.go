package mutate

import (
	"strings"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

// ToggleBlockPrefix toggles a structural line prefix (such as "# ",
// "> ", or "- ") across every line spanned by the selection, from the
// start of the first touched line to the end of the last. When every
// spanned line already begins with the exact prefix it is stripped from
// each (toggle off). Otherwise each line first has any recognized
// structural prefix removed and then the target prepended after its
// indentation, so prefixes never stack. The new selection covers the
// rewritten block exactly. An empty prefix does not apply.
func ToggleBlockPrefix(st selection.State, prefix string) (Result, bool) {
	if prefix == "" {
		return Result{}, false
	}

	blockStart := st.LineStart(st.Start)
	blockEnd := st.LineEnd(st.End)
	lines := strings.Split(st.Text[blockStart:blockEnd], "\n")

	allPrefixed := true
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			allPrefixed = false
			break
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if allPrefixed {
			out[i] = line[len(prefix):]
			continue
		}
		indent, rest := stripLinePrefix(line)
		out[i] = indent + prefix + rest
	}

	block := strings.Join(out, "\n")
	return Result{
		Text:     st.Text[:blockStart] + block + st.Text[blockEnd:],
		Start:    blockStart,
		End:      blockStart + len(block),
		Consumed: true,
	}, true
}
