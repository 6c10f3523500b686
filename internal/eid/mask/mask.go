// Package mask rewrites raw digit strings into punctuated display form.
package mask

import "strings"

// Placeholder marks a slot filled by the next input rune. Every other mask rune,
// digits included, is emitted verbatim.
const Placeholder = 'x'

// Mask is a literal formatting template such as "xx.xx.xx-xxx.xx".
type Mask string

// Masks used by eID cards.
const (
	NationalNumber Mask = "xx.xx.xx-xxx.xx"
	BirthDate      Mask = "xxxx/xx/xx"
)

// Format applies m to raw. See Format.
func (m Mask) Format(raw string) string {
	return Format(string(m), raw)
}

// Placeholders counts the input slots in m.
func (m Mask) Placeholders() int {
	return strings.Count(string(m), string(Placeholder))
}

// Format walks mask and raw with independent cursors and stops as soon as either
// runs out. Short input truncates the output right after its last rune; surplus
// input is dropped. Absent input is the empty string and formats to "".
func Format(mask, raw string) string {
	in := []rune(raw)
	if len(in) == 0 {
		return ""
	}

	var out strings.Builder
	out.Grow(len(mask))
	pos := 0
	for _, r := range mask {
		if pos >= len(in) {
			break
		}
		if r == Placeholder {
			out.WriteRune(in[pos])
			pos++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
