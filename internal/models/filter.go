package models

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// City is a canonical city name
type City string

const (
	Chicago     City = "Chicago"
	NewYorkCity City = "New York City"
	Washington  City = "Washington"
)

// All disables a month or day filter
const All = "All"

// Cities lists the supported cities
var Cities = []City{Chicago, NewYorkCity, Washington}

// Months is the canonical month ordering; a month's number is its index + 1
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FilterMonths are the months offered when collecting filters
var FilterMonths = Months[:6]

// Weekdays are the accepted day-of-week names
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// Whitespace is kept as is, so "Chicago " stays distinct from "Chicago".
func TitleCase(s string) string {
	// Casers are stateful, one per call
	return cases.Title(language.English).String(s)
}

// ParseCity normalizes s and checks it against the supported cities
func ParseCity(s string) (City, error) {
	name := TitleCase(s)
	for _, c := range Cities {
		if string(c) == name {
			return c, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidFilter, "unknown city %q", s)
}

// ParseMonth accepts All or one of the first six months
func ParseMonth(s string) (string, error) {
	return parseChoice(s, FilterMonths, "month")
}

// ParseDay accepts All or a weekday name
func ParseDay(s string) (string, error) {
	return parseChoice(s, Weekdays, "day")
}

func parseChoice(s string, allowed []string, kind string) (string, error) {
	v := TitleCase(s)
	if v == All {
		return All, nil
	}
	for _, a := range allowed {
		if a == v {
			return v, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidFilter, "unknown %s %q", kind, s)
}

// MonthNumber maps any of the twelve month names to 1..12
func MonthNumber(name string) (int, error) {
	v := TitleCase(name)
	for i, m := range Months {
		if m == v {
			return i + 1, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidFilter, "unknown month %q", name)
}

// Filter is the city/month/day selection for one analysis pass
type Filter struct {
	City  City   `json:"city"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// NewFilter validates raw selections the same way the prompts do
func NewFilter(city, month, day string) (Filter, error) {
	c, err := ParseCity(city)
	if err != nil {
		return Filter{}, err
	}
	if month == "" {
		month = All
	}
	if day == "" {
		day = All
	}
	m, err := ParseMonth(month)
	if err != nil {
		return Filter{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return Filter{}, err
	}
	return Filter{City: c, Month: m, Day: d}, nil
}

func (f Filter) String() string {
	return fmt.Sprintf("city=%s month=%s day=%s", f.City, f.Month, f.Day)
}
