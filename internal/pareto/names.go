package pareto

import "strings"

// Sanitize turns a display label into a token by replacing spaces with
// underscores.
func Sanitize(label string) string {
	return strings.ReplaceAll(label, " ", "_")
}

// TitleToFilename returns the PNG file name for a chart title.
func TitleToFilename(title string) string {
	return Sanitize(title) + ".png"
}
