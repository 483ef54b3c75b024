package table

import (
	"fmt"
	"strings"
)

// strftime directives and their time layout equivalents. Numeric month, day,
// hour, minute and second accept one or two digits when parsing.
var strftimeLayout = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "1",
	'd': "2",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'%': "%",
}

var strftimeReadable = map[byte]string{
	'Y': "YYYY",
	'y': "YY",
	'm': "MM",
	'd': "DD",
	'H': "HH",
	'I': "hh",
	'M': "mm",
	'S': "SS",
	'f': "ffffff",
	'%': "%",
}

// layoutReserved lists characters that cannot appear as literals in a
// layout because the time package would read them as part of a directive.
const layoutReserved = "0123456789JMPpZ_"

// StrftimeLayout converts a strftime pattern such as "%Y-%m-%d" into a layout
// for time.Parse. A "%f" directive must follow a '.' and matches any
// fractional seconds.
func StrftimeLayout(pattern string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch != '%' {
			if strings.IndexByte(layoutReserved, ch) >= 0 {
				return "", fmt.Errorf("date pattern %q: unsupported literal %q", pattern, ch)
			}
			b.WriteByte(ch)
			continue
		}
		if i+1 >= len(pattern) {
			return "", fmt.Errorf("date pattern %q: dangling %%", pattern)
		}
		i++
		d := pattern[i]
		if d == 'f' {
			// Fractional seconds after the seconds field are accepted by
			// time.Parse without a layout element; drop the separator too.
			s := b.String()
			if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, ",") {
				return "", fmt.Errorf("date pattern %q: %%f must follow '.'", pattern)
			}
			b.Reset()
			b.WriteString(s[:len(s)-1])
			continue
		}
		layout, ok := strftimeLayout[d]
		if !ok {
			return "", fmt.Errorf("date pattern %q: unsupported directive %%%c", pattern, d)
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}

// ReadableFormat renders a strftime pattern for messages, e.g. "%Y-%m-%d"
// becomes "YYYY-MM-DD".
func ReadableFormat(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' && i+1 < len(pattern) {
			if r, ok := strftimeReadable[pattern[i+1]]; ok {
				b.WriteString(r)
				i++
				continue
			}
		}
		b.WriteByte(pattern[i])
	}
	return b.String()
}
