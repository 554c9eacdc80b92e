package domain

import "strings"

// FormatCategory strips provider prefixes from a category name for display.
func FormatCategory(category string) string {
	category = strings.ReplaceAll(category, "Science:", "")
	category = strings.ReplaceAll(category, "Entertainment:", "")
	category = strings.ReplaceAll(category, "_", " ")
	return strings.TrimSpace(category)
}

// FormatDifficulty capitalizes a difficulty level for display.
func FormatDifficulty(difficulty string) string {
	if difficulty == "" {
		return ""
	}
	return strings.ToUpper(difficulty[:1]) + difficulty[1:]
}
