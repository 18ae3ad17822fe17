package format

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// FormatPrimeList renders primes as a single space-separated line, the
// format used by quiet mode.
func FormatPrimeList(primes []int64) string {
	return strings.Join(lo.Map(primes, func(p int64, _ int) string {
		return strconv.FormatInt(p, 10)
	}), " ")
}

// FormatPrimeGrid lays primes out in rows of the given number of columns,
// right-aligning every cell to the width of the largest value. A columns value
// below 1 is treated as 1. The result has no trailing newline.
func FormatPrimeGrid(primes []int64, columns int) string {
	if len(primes) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	width := len(strconv.FormatInt(lo.Max(primes), 10))
	rows := lo.Chunk(primes, columns)
	lines := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for j, p := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			s := strconv.FormatInt(p, 10)
			b.WriteString(strings.Repeat(" ", width-len(s)))
			b.WriteString(s)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
