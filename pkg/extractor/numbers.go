package extractor

import (
	"strconv"
	"strings"
)

// ParseCount keeps only the ASCII digits of s and parses them as an integer.
// "2,345,678 open issues" yields 2345678. A string without digits, or one
// whose digits overflow an int, yields 0.
func ParseCount(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// StatAt returns ParseCount of stats[i], or 0 when i is out of range.
func StatAt(stats []string, i int) int {
	if i < 0 || i >= len(stats) {
		return 0
	}
	return ParseCount(stats[i])
}

// StatTextAt returns stats[i] verbatim, or nil when i is out of range or
// the entry is empty.
func StatTextAt(stats []string, i int) *string {
	if i < 0 || i >= len(stats) || stats[i] == "" {
		return nil
	}
	s := stats[i]
	return &s
}
