package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount as Indian rupees with en-IN digit grouping
// and no fraction digits, e.g. ₹12,34,567.
func FormatAmount(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	// en-IN grouping: the last three digits form one group, everything
	// before that is grouped in twos.
	var groups []string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		groups = append(groups, digits[len(digits)-3:])
		for len(head) > 2 {
			groups = append(groups, head[len(head)-2:])
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append(groups, head)
		}
		for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
			groups[i], groups[j] = groups[j], groups[i]
		}
	} else {
		groups = []string{digits}
	}

	out := "₹" + strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDiamondType maps a stored diamond type to its display name.
func FormatDiamondType(t string) string {
	switch t {
	case DiamondNatural:
		return "Natural"
	case DiamondLab:
		return "Lab Grown"
	default:
		return "Unknown"
	}
}

// FormatDateTime renders a timestamp the way the dashboard tables show it.
func FormatDateTime(t time.Time) string {
	return strings.ToLower(t.Format("02/01/06, 03:04 PM"))
}

// FormatDate renders a date without time of day.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
