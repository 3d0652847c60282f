package revenue

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatEUR renders an amount as euros with thousands grouping and two
// decimals, e.g. €1,234.56 or -€5.00.
func FormatEUR(amount float64) string {
	if amount < 0 {
		return "-€" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "€" + humanize.FormatFloat("#,###.##", amount)
}

// ParseRevenue reads a free-text revenue such as "€1.2M", "500k" or
// "1,250,000". Everything but digits, '.', ',', 'k' and 'm' is ignored. A
// 'k' scales by a thousand and wins over an 'm', which scales by a million;
// otherwise commas are dropped as grouping. ok is false when no number can
// be read.
func ParseRevenue(text string) (value float64, ok bool) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			return r
		case r == 'k' || r == 'K':
			return 'k'
		case r == 'm' || r == 'M':
			return 'm'
		}
		return -1
	}, text)
	if clean == "" {
		return 0, false
	}

	scale := 1.0
	switch {
	case strings.Contains(clean, "k"):
		scale = 1_000
		clean = strings.Replace(clean, "k", "", 1)
	case strings.Contains(clean, "m"):
		scale = 1_000_000
		clean = strings.Replace(clean, "m", "", 1)
	default:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	v, ok := leadingFloat(clean)
	if !ok {
		return 0, false
	}
	return v * scale, true
}

// FormatRevenue renders a free-text revenue as grouped euros, or "" when it
// cannot be read.
func FormatRevenue(text string) string {
	v, ok := ParseRevenue(text)
	if !ok {
		return ""
	}
	return "€" + humanize.Commaf(v)
}

// leadingFloat parses the longest decimal prefix of s, so "1,5" reads as 1.
func leadingFloat(s string) (float64, bool) {
	end, dot, digits := 0, false, false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			digits = true
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		end++
	}
	if !digits {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
