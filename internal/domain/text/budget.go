// Package text bounds and segments raw document text before it reaches a model.
//
// All budgets are expressed in characters (runes). Token budgets are converted with
// a single fixed ratio, CharsPerToken, so every call site bounds text the same way.
package text

import "unicode/utf8"

// CharsPerToken is the conservative characters-per-token ratio used for every budget.
const CharsPerToken = 3

// Ellipsis marks text that was cut by Truncate.
const Ellipsis = "..."

// Chars converts a token budget to a character budget.
func Chars(tokens int) int {
	return tokens * CharsPerToken
}

// Len returns the length of s in characters.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate keeps the first Chars(maxTokens) characters of s and appends Ellipsis
// when anything was cut.
func Truncate(s string, maxTokens int) string {
	limit := Chars(maxTokens)
	if limit < 0 || Len(s) <= limit {
		return s
	}
	return prefix(s, limit) + Ellipsis
}

// Prefix returns the first n characters of s.
func Prefix(s string, n int) string {
	if n < 0 {
		return ""
	}
	return prefix(s, n)
}

func prefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
