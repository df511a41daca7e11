package entities

import "strings"

// NormalizePhone keeps only the ASCII digits of phone. The result is the
// tracking key customers use to look up and cancel their orders; an empty
// key means "no key".
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
