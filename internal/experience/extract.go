package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/parsing"
)

const (
	// DefaultMaxYears caps extracted experience at a plausible career length
	DefaultMaxYears = 45.0

	earliestStartYear = 1970
	defaultMonth      = 6
)

const monthPattern = `(?:(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|` +
	`jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|` +
	`oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s*)?`

var (
	dateRangePattern = regexp.MustCompile(monthPattern + `(20\d{2}|19\d{2})` +
		`\s*(?:-{1,2}|to|till)\s*` +
		monthPattern + `(20\d{2}|19\d{2}|present|current|now|ongoing|till\s*date|to\s*date)`)

	openEndedPattern = regexp.MustCompile(`^(present|current|now|ongoing|till|to\s*date)`)

	explicitYearsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*years?\s+(?:of\s+)?` +
		`(?:relevant\s+|professional\s+|industry\s+|work\s+|total\s+)?experience`)
)

var months = map[string]int{
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

// Interval is a half-open employment period measured in months since year zero
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Months is the length of the interval.
func (i Interval) Months() int {
	return i.End - i.Start
}

// Extractor turns employment date ranges into a total-years figure
type Extractor struct {
	// Now is the reference date for open-ended ranges such as "present"
	Now func() time.Time
	// MaxYears caps the result
	MaxYears float64
}

// NewExtractor returns an Extractor using the wall clock and the default cap.
func NewExtractor() *Extractor {
	return &Extractor{Now: time.Now, MaxYears: DefaultMaxYears}
}

// ExtractYears returns total experience from the default extractor.
func ExtractYears(text string) float64 {
	return NewExtractor().ExtractYears(text)
}

// ExtractYears computes the span from the earliest valid range start to the latest
// valid range end, in years rounded to one decimal. Bare years never count. When no range
// is valid it falls back to the largest explicit "N years of experience" statement.
func (e *Extractor) ExtractYears(text string) float64 {
	normalized := parsing.NormalizeText(text)

	intervals := e.Intervals(normalized)
	if len(intervals) > 0 {
		earliest, latest := intervals[0].Start, intervals[0].End
		for _, interval := range intervals[1:] {
			earliest = min(earliest, interval.Start)
			latest = max(latest, interval.End)
		}
		years := roundOneDecimal(float64(latest-earliest) / 12)
		return math.Min(math.Max(years, 0), e.maxYears())
	}

	return e.explicitYears(normalized)
}

// Intervals returns every valid date range in normalized text, in order of appearance.
// Fragments that cannot count toward experience are skipped.
func (e *Extractor) Intervals(normalizedText string) []Interval {
	now := e.now()
	intervals := make([]Interval, 0)
	for _, match := range dateRangePattern.FindAllStringSubmatch(normalizedText, -1) {
		interval, err := parseRange(match, now)
		if err != nil {
			continue
		}
		intervals = append(intervals, interval)
	}
	return intervals
}

// parseRange converts one date-range match into an interval. match holds the full
// fragment, start month, start year, end month and end part.
func parseRange(match []string, now time.Time) (Interval, error) {
	fragment := match[0]
	currentYear, currentMonth := now.Year(), int(now.Month())

	startYear, err := strconv.Atoi(match[2])
	if err != nil {
		return Interval{}, &DateRangeError{Fragment: fragment, Message: "invalid start year", Cause: err}
	}
	startMonth := monthIndex(match[1])

	var endYear, endMonth int
	endPart := strings.TrimSpace(match[4])
	if openEndedPattern.MatchString(endPart) {
		endYear, endMonth = currentYear, currentMonth
	} else {
		endYear, err = strconv.Atoi(endPart)
		if err != nil {
			return Interval{}, &DateRangeError{Fragment: fragment, Message: "invalid end year", Cause: err}
		}
		endMonth = monthIndex(match[3])
	}

	if startYear < earliestStartYear || startYear > currentYear {
		return Interval{}, &DateRangeError{Fragment: fragment, Message: "start year out of range"}
	}
	if endYear < startYear || endYear > currentYear+1 {
		return Interval{}, &DateRangeError{Fragment: fragment, Message: "end year out of range"}
	}

	interval := Interval{Start: startYear*12 + startMonth, End: endYear*12 + endMonth}
	if interval.Months() <= 0 {
		return Interval{}, &DateRangeError{Fragment: fragment, Message: "range has no length"}
	}
	return interval, nil
}

func (e *Extractor) explicitYears(normalizedText string) float64 {
	best := 0.0
	for _, match := range explicitYearsPattern.FindAllStringSubmatch(normalizedText, -1) {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		best = math.Max(best, value)
	}
	if best > 0 && best <= e.maxYears() {
		return roundOneDecimal(best)
	}
	return 0.0
}

func (e *Extractor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Extractor) maxYears() float64 {
	if e.MaxYears <= 0 {
		return DefaultMaxYears
	}
	return e.MaxYears
}

// monthIndex maps a month name to 1-12; a missing month counts as mid-year.
func monthIndex(name string) int {
	key := strings.TrimSuffix(strings.TrimSpace(name), ".")
	if month, ok := months[key]; ok {
		return month
	}
	return defaultMonth
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
