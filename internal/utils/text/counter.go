// Package text provides utilities for text processing shared across the
// generation adapters and the harvest pipeline: rune counting for logging
// and limits, and plain-text cleanup of generation output.
package text

// CountRunes counts the number of Unicode characters (runes) in the given
// text. It handles multi-byte characters correctly by counting runes instead
// of bytes, so lengths stay consistent across providers regardless of script.
//
// Examples:
//
//	CountRunes("hello")    // 5
//	CountRunes("héllo")    // 5 (not 6 bytes)
//	CountRunes("")         // 0
func CountRunes(text string) int {
	return len([]rune(text))
}
