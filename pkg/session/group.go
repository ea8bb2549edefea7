package session

import "strings"

// GroupFive splits s into groups of five symbols separated by single
// spaces. The last group may be shorter.
func GroupFive(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/5)
	n := 0
	for _, r := range s {
		if n > 0 && n%5 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
