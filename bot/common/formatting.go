package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatMoney renders a ledger amount with thousands separators and two
// decimals, e.g. 1234567.8 -> "1,234,567.80".
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
		if len(whole) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(whole); i += 3 {
		b.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			b.WriteByte(',')
		}
	}
	b.WriteString(frac)
	return b.String()
}

// FormatDiscordTimestamp renders a Discord timestamp markup tag, e.g.
// style "R" shows "in 5 minutes" client-side.
func FormatDiscordTimestamp(t time.Time, style string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}
