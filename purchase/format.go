package purchase

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount is not a valid number")

// ParseAmount normalizes a user-entered amount string. Leading zeros and
// surrounding whitespace are stripped ("0075000" -> 75000). Negative or
// non-numeric input is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatINR renders an amount with Indian digit grouping: the last three
// digits form one group, every group above that has two digits ("₹12,34,567").
// A fractional part is kept to two places only when present.
func FormatINR(d decimal.Decimal) string {
	var b strings.Builder
	if d.IsNegative() {
		b.WriteString("-")
		d = d.Abs()
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(d.Truncate(0).String()))
	if !d.Equal(d.Truncate(0)) {
		frac := d.StringFixed(2)
		b.WriteString(frac[strings.IndexByte(frac, '.'):])
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// AmountInWords spells out a whole rupee amount using the Indian numbering
// system (crore/lakh/thousand). 900000 -> "nine lakh".
func AmountInWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + AmountInWords(-n)
	}

	var parts []string
	appendScale := func(v int64, name string) {
		if v > 0 {
			parts = append(parts, belowThousand(v)+" "+name)
		}
	}

	// the crore quotient can itself exceed 999 ("one lakh crore"), so it is
	// spelled recursively rather than through belowThousand
	if c := n / 10000000; c > 0 {
		parts = append(parts, AmountInWords(c)+" crore")
	}
	n %= 10000000
	appendScale(n/100000, "lakh")
	n %= 100000
	appendScale(n/1000, "thousand")
	n %= 1000
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" hundred")
		n %= 100
	}
	if n >= 20 {
		if n%10 > 0 {
			parts = append(parts, tensWords[n/10]+" "+onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
