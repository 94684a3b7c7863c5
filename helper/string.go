package helper

import "unicode"

// Underscore converts a StructField name like "SenderEmail" to its
// snake_case form "sender_email" for field-level error keys.
func Underscore(s string) string {
	var out []rune
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				out = append(out, '_')
			}
			out = append(out, unicode.ToLower(r))
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
