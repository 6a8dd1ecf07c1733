package text

import (
	"regexp"
	"strings"
)

// Generation backends occasionally ignore the plain-text instruction and
// prefix their answer with a lead-in clause. Both patterns are anchored so a
// legitimate sentence mentioning "here is" mid-text is left alone.
var (
	rewrittenPreamble = regexp.MustCompile(`(?i)^Here is your rewritten text.*?:\s*`)
	genericPreamble   = regexp.MustCompile(`(?i)^Here is.*?:\s*`)
	whitespaceRuns    = regexp.MustCompile(`\s+`)
)

// CleanPlainText normalizes raw generation-backend output into a single line
// of plain text. It trims surrounding whitespace, removes markdown emphasis
// and inline-code markers, collapses line breaks and whitespace runs to
// single spaces, and strips leading "Here is ...:" preambles.
//
// The function is idempotent: applying it twice yields the same result as
// applying it once. Line breaks collapse before preamble stripping so a
// preamble wrapped across lines is caught on the first pass, and preambles
// are stripped to a fixpoint so stacked lead-ins cannot leave a fresh one
// at the front. Output never contains newline characters, "**", or "`".
func CleanPlainText(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "**", "")
	cleaned = strings.ReplaceAll(cleaned, "`", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	for {
		next := rewrittenPreamble.ReplaceAllString(cleaned, "")
		next = genericPreamble.ReplaceAllString(next, "")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return strings.TrimSpace(cleaned)
}
