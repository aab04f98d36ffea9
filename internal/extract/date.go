package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var monthNameMap = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

const monthAlt = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|` +
	`aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	// "Billing period: Jul 14, 2025 to Aug 05, 2025"
	namedBillingPeriodRe = regexp.MustCompile(`(?i)billing period:\s+(` + monthAlt + `)\s+\d{1,2},\s+(\d{4})\s+to\s+(?:` + monthAlt + `)\s+\d{1,2},\s+\d{4}`)

	// same date range without the "Billing period" prefix
	namedDateRangeRe = regexp.MustCompile(`(?i)(` + monthAlt + `)\s+\d{1,2},\s+(\d{4})\s+to\s+(?:` + monthAlt + `)\s+\d{1,2},\s+\d{4}`)

	// numeric ranges like "Billing period 08-14-2025 to 09-13-2025"
	numericBillingPeriodRe = regexp.MustCompile(`(?i)billing period[:\s]*(\d{1,2})[/-]\d{1,2}[/-](\d{4}).{0,40}?\d{1,2}[/-]\d{1,2}[/-]\d{4}`)

	// "October 2025"
	monthNameYearRe = regexp.MustCompile(`(?i)\b(` + monthAlt + `)\s+(\d{4})`)

	// "10/2025" or "10-2025"
	numericMonthYearRe = regexp.MustCompile(`\b(0?[1-9]|1[0-2])[/-](\d{4})\b`)
)

type monthYear struct {
	Month int
	Year  int
}

// dateMatchers is the ordered strategy list; the first matcher that finds a
// date wins. The order prefers explicit billing-period statements over
// incidental dates elsewhere on the bill.
var dateMatchers = []func(string) (monthYear, bool){
	matchNamedBillingPeriod,
	matchNamedDateRange,
	matchNumericBillingPeriod,
	matchMonthNameYear,
	matchNumericMonthYear,
}

func detectMonthYear(text string) (monthYear, bool) {
	for _, match := range dateMatchers {
		if my, ok := match(text); ok {
			return my, true
		}
	}
	return monthYear{}, false
}

func matchNamedBillingPeriod(text string) (monthYear, bool) {
	return namedStartOf(namedBillingPeriodRe, text)
}

func matchNamedDateRange(text string) (monthYear, bool) {
	return namedStartOf(namedDateRangeRe, text)
}

// namedStartOf reads the start month and year out of a named-month range.
func namedStartOf(re *regexp.Regexp, text string) (monthYear, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return monthYear{}, false
	}
	month, ok := monthNameMap[strings.ToLower(m[1])]
	if !ok {
		return monthYear{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return monthYear{}, false
	}
	return monthYear{Month: month, Year: year}, true
}

func matchNumericBillingPeriod(text string) (monthYear, bool) {
	m := numericBillingPeriodRe.FindStringSubmatch(text)
	if m == nil {
		return monthYear{}, false
	}
	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return monthYear{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return monthYear{}, false
	}
	return monthYear{Month: month, Year: year}, true
}

func matchMonthNameYear(text string) (monthYear, bool) {
	m := monthNameYearRe.FindStringSubmatch(text)
	if m == nil {
		return monthYear{}, false
	}
	month, ok := monthNameMap[strings.ToLower(m[1])]
	if !ok {
		return monthYear{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return monthYear{}, false
	}
	return monthYear{Month: month, Year: year}, true
}

func matchNumericMonthYear(text string) (monthYear, bool) {
	m := numericMonthYearRe.FindStringSubmatch(text)
	if m == nil {
		return monthYear{}, false
	}
	month, err := strconv.Atoi(m[1])
	if err != nil {
		return monthYear{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return monthYear{}, false
	}
	return monthYear{Month: month, Year: year}, true
}
