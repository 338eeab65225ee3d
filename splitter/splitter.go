// Package splitter partitions a policy document into paragraphs along
// its hierarchical numbering scheme. Chinese privacy policies number
// their clauses with dotted decimals ("1.", "1.1"), parenthesized
// ordinals ("（一）", "(1)") or Chinese ordinal markers ("一、"); the
// detected numbering depth decides the split granularity.
package splitter

import (
	"regexp"
	"strings"
)

// detectPrefixRunes bounds how much of the document the depth detector
// inspects. Deep sub-numbering appearing only late in a document (for
// example inside an appendix) should not drag the whole split down to
// that granularity.
const detectPrefixRunes = 1000

// depthPatterns match the numbering styles considered during depth
// detection. Only the dotted-decimal style can signal a depth above 1.
var depthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(?:\.\d+)*[、.．]?`),
	regexp.MustCompile(`\([一二三四五六七八九十\d]+\)`),
	regexp.MustCompile(`（[一二三四五六七八九十\d]+）`),
	regexp.MustCompile(`[一二三四五六七八九十]+、`),
}

// DetectDepth returns the numbering depth to split the document at:
// the maximum dot-separated depth observed in the leading portion of
// the text, minimum 1. "1." is depth 1, "1.1" depth 2, "1.1.1" depth 3.
func DetectDepth(text string) int {
	runes := []rune(text)
	if len(runes) > detectPrefixRunes {
		runes = runes[:detectPrefixRunes]
	}
	sample := string(runes)

	depth := 1
	for _, re := range depthPatterns {
		for _, m := range re.FindAllString(sample, -1) {
			// Trailing terminator dots are not separators.
			m = strings.TrimRight(m, "、.．")
			if d := strings.Count(m, ".") + 1; d > depth {
				depth = d
			}
		}
	}
	return depth
}

// levelPattern builds the split regex for an exact numbering depth.
// Matches are anchored to the document start or a line start so that a
// numeral inside a sentence never opens a new paragraph.
func levelPattern(depth int) *regexp.Regexp {
	if depth <= 1 {
		return regexp.MustCompile(`(?:^|\n)(\d+[、.．]|[一二三四五六七八九十]+、|（[一二三四五六七八九十\d]+）|\([一二三四五六七八九十\d]+\))`)
	}
	return regexp.MustCompile(`(?:^|\n)(\d+` + strings.Repeat(`\.\d+`, depth-1) + `[、.．]?)`)
}

// Split partitions text into ordered, trimmed, non-empty paragraphs.
// Each numbering match at the detected depth starts a paragraph that
// runs to the next match or the document end. Text preceding the first
// match is kept as its own paragraph. A document without any match is
// returned whole; empty or whitespace-only input yields nil.
func Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	re := levelPattern(DetectDepth(text))
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{trimmed}
	}

	var paras []string
	if head := strings.TrimSpace(text[:locs[0][0]]); head != "" {
		paras = append(paras, head)
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if p := strings.TrimSpace(text[loc[0]:end]); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}
