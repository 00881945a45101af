package sbmb

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Date is a calendar date without time of day. The zero value means the
// date is unknown.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day, and false if they do
// not form a valid calendar date.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if year < 1 || month < time.January || month > time.December || day < 1 {
		return Date{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// IsZero reports whether the date is unknown.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the date in ISO calendar form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Midnight returns the start of the day in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// ParseShortDate parses the numeric dd-mm-yyyy form used for publication
// dates. It returns false for anything else.
func ParseShortDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if len(s) != len("02-01-2006") || s[2] != '-' || s[5] != '-' {
		return Date{}, false
	}
	day, ok1 := digits(s[0:2])
	month, ok2 := digits(s[3:5])
	year, ok3 := digits(s[6:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, false
	}
	return NewDate(year, time.Month(month), day)
}

func digits(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Substitution replaces the first occurrence of Old with New.
type Substitution struct {
	Old string
	New string
}

// Locale describes how long-form dates are written in one language.
type Locale struct {
	Lang Language

	// Months holds the lower-case month names, January first.
	Months [12]string

	// Substitutions are applied after case folding. They restore accents
	// that the journal often drops and normalise ordinals.
	Substitutions []Substitution
}

// DutchLocale is the nl-BE long date locale.
func DutchLocale() Locale {
	return Locale{
		Lang: Dutch,
		Months: [12]string{
			"januari", "februari", "maart", "april", "mei", "juni",
			"juli", "augustus", "september", "oktober", "november", "december",
		},
	}
}

// FrenchLocale is the fr-BE long date locale.
func FrenchLocale() Locale {
	return Locale{
		Lang: French,
		Months: [12]string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		Substitutions: []Substitution{
			{Old: "fevrier", New: "février"},
			{Old: "aout", New: "août"},
			{Old: "decembre", New: "décembre"},
			{Old: "1er", New: "1"},
		},
	}
}

// DefaultLocales returns the locales of the two journal languages.
func DefaultLocales() []Locale {
	return []Locale{DutchLocale(), FrenchLocale()}
}

// normalize folds case, strips periods, applies the locale substitutions
// and collapses whitespace.
func (l Locale) normalize(s string) string {
	s = cases.Fold().String(s)
	s = strings.ReplaceAll(s, ".", "")
	for _, sub := range l.Substitutions {
		s = strings.Replace(s, sub.Old, sub.New, 1)
	}
	return strings.Join(strings.Fields(s), " ")
}

// Parse parses "d MMMM yyyy" in this locale.
func (l Locale) Parse(s string) (Date, bool) {
	fields := strings.Fields(l.normalize(s))
	if len(fields) != 3 {
		return Date{}, false
	}
	if len(fields[0]) > 2 || len(fields[2]) != 4 {
		return Date{}, false
	}
	day, ok := digits(fields[0])
	if !ok {
		return Date{}, false
	}
	year, ok := digits(fields[2])
	if !ok {
		return Date{}, false
	}
	for i, name := range l.Months {
		if fields[1] == name {
			return NewDate(year, time.Month(i+1), day)
		}
	}
	return Date{}, false
}

// DateParser parses long-form dates, falling back to the other configured
// locales when the page language does not match the text.
type DateParser struct {
	locales []Locale
	logger  *slog.Logger
}

// NewDateParser returns a DateParser trying locales in the given order after
// the primary one. With no locales, DefaultLocales is used.
func NewDateParser(logger *slog.Logger, locales ...Locale) *DateParser {
	if len(locales) == 0 {
		locales = DefaultLocales()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DateParser{locales: locales, logger: logger}
}

// attempts returns the locales to try: the primary one first, then the
// others in configuration order.
func (p *DateParser) attempts(lang Language) []Locale {
	out := make([]Locale, 0, len(p.locales))
	for _, l := range p.locales {
		if l.Lang == lang {
			out = append(out, l)
		}
	}
	for _, l := range p.locales {
		if l.Lang != lang {
			out = append(out, l)
		}
	}
	return out
}

// ParseLong parses a date such as "1er février 2017" or "15 maart 2017".
// It returns false when no locale can parse the text.
func (p *DateParser) ParseLong(s string, lang Language) (Date, bool) {
	if strings.TrimSpace(s) == "" {
		return Date{}, false
	}
	for _, l := range p.attempts(lang) {
		d, ok := l.Parse(s)
		if !ok {
			continue
		}
		if l.Lang != lang {
			p.logger.Warn("date parsed with fallback locale",
				"text", s,
				"lang", string(lang),
				"fallback", string(l.Lang),
			)
		}
		return d, true
	}
	return Date{}, false
}
