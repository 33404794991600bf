package text

import (
	"regexp"
	"strings"
)

// ParagraphSeparator is inserted between paragraphs merged into one chunk.
const ParagraphSeparator = "\n\n"

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Split cuts s into chunks of at most maxChars characters along blank-line paragraph
// boundaries. Consecutive paragraphs are merged while they fit (counting the separator);
// a paragraph longer than maxChars is hard-sliced into maxChars-sized pieces.
// Text that already fits is returned as a single chunk.
func Split(s string, maxChars int) []string {
	if maxChars <= 0 || Len(s) <= maxChars {
		return []string{s}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, p := range paragraphBreak.Split(s, -1) {
		pLen := Len(p)
		if pLen == 0 {
			continue
		}

		if pLen > maxChars {
			flush()
			chunks = append(chunks, slice(p, maxChars)...)
			continue
		}

		if curLen > 0 && curLen+pLen+len(ParagraphSeparator) > maxChars {
			flush()
		}
		if curLen > 0 {
			cur.WriteString(ParagraphSeparator)
			curLen += len(ParagraphSeparator)
		}
		cur.WriteString(p)
		curLen += pLen
	}
	flush()

	return chunks
}

// slice hard-cuts s into pieces of n characters; the last piece may be shorter.
func slice(s string, n int) []string {
	runes := []rune(s)
	pieces := make([]string, 0, (len(runes)+n-1)/n)
	for start := 0; start < len(runes); start += n {
		end := min(start+n, len(runes))
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}
