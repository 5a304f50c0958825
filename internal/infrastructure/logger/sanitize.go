package logger

import "regexp"

var controlChars = regexp.MustCompile(`[\r\n\t\f\v\x{0000}-\x{001F}\x{007F}-\x{009F}]`)

// Sanitize strips control characters and newlines from user-supplied values
// before they reach a log line.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return controlChars.ReplaceAllString(input, "")
}
