package log

import (
	"strings"
)

// nolint: gochecknoglobals
var lineBreaks = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\n`)

// Sanitize folds a multi-line value into one log line.
func Sanitize(in string) string {
	return lineBreaks.Replace(in)
}
