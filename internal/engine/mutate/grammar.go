package mutate

import "regexp"

// Line-prefix grammar shared by list continuation and block-prefix
// toggling. Every pattern captures leading indentation as group 1;
// list continuation additionally relies on the inner groups.
var (
	// taskRe: indent, list marker, gap, checkbox state, trailing whitespace.
	taskRe = regexp.MustCompile(`^([ \t]*)([-*])([ \t]+)\[([ x])\]([ \t]+)`)

	// orderedRe: indent, numeral, trailing whitespace.
	orderedRe = regexp.MustCompile(`^([ \t]*)([0-9]+)\.([ \t]+)`)

	// unorderedRe: indent, list marker, trailing whitespace.
	unorderedRe = regexp.MustCompile(`^([ \t]*)([-*])([ \t]+)`)

	// headingRe and quoteRe participate only in block-prefix stripping.
	headingRe = regexp.MustCompile(`^([ \t]*)(#{1,6})([ \t]+)`)
	quoteRe   = regexp.MustCompile(`^([ \t]*)>([ \t]+)`)
)

// blockPrefixRes lists every structural prefix the block toggle strips
// before applying a new one. Task items must precede plain bullets so
// the checkbox is stripped together with its marker.
var blockPrefixRes = []*regexp.Regexp{taskRe, headingRe, quoteRe, orderedRe, unorderedRe}

// stripLinePrefix removes one recognized structural prefix from the
// line, preserving leading indentation.
func stripLinePrefix(line string) (indent, rest string) {
	for _, re := range blockPrefixRes {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], line[len(m[0]):]
		}
	}
	return "", line
}
