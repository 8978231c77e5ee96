package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells out num using the lakh/crore grouping. Zero and negative
// numbers give "".
func NumberToWords(num int) string {
	switch {
	case num <= 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		return joinWords(ones[num/100]+" Hundred", num%100)
	case num < 100000:
		return joinWords(NumberToWords(num/1000)+" Thousand", num%1000)
	case num < 10000000:
		return joinWords(NumberToWords(num/100000)+" Lakh", num%100000)
	default:
		return joinWords(NumberToWords(num/10000000)+" Crore", num%10000000)
	}
}

func joinWords(head string, remainder int) string {
	if remainder == 0 {
		return head
	}
	return head + " " + NumberToWords(remainder)
}

// NumberToCurrencyWords renders an amount as "<n> Rupees and <m> Paise Only".
func NumberToCurrencyWords(amount float64) string {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "Zero Rupees Only"
	}

	rupees := int(math.Floor(amount))
	paise := int(math.Round((amount - float64(rupees)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	var parts []string
	if rupees > 0 {
		parts = append(parts, fmt.Sprintf("%s Rupees", NumberToWords(rupees)))
	}
	if paise > 0 {
		parts = append(parts, fmt.Sprintf("%s Paise", NumberToWords(paise)))
	}

	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}
