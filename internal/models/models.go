package models

import (
	"math"
	"time"
)

// Source column names as they appear in the city CSV headers
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColDuration     = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// RequiredColumns must be present in every city source
var RequiredColumns = []string{
	ColStartTime,
	ColEndTime,
	ColStartStation,
	ColEndStation,
	ColUserType,
}

// StationPair is a start/end station combination
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// String joins the pair for display
func (p StationPair) String() string {
	return p.Start + " - " + p.End
}

// Capabilities describes which optional columns a city source carries
type Capabilities struct {
	Duration  bool `json:"duration"`
	Gender    bool `json:"gender"`
	BirthYear bool `json:"birth_year"`
}

// Demographics reports whether both gender and birth year are available
func (c Capabilities) Demographics() bool {
	return c.Gender && c.BirthYear
}

// CapabilitiesFromHeader detects optional columns in a CSV header
func CapabilitiesFromHeader(header []string) Capabilities {
	var caps Capabilities
	for _, name := range header {
		switch name {
		case ColDuration:
			caps.Duration = true
		case ColGender:
			caps.Gender = true
		case ColBirthYear:
			caps.BirthYear = true
		}
	}
	return caps
}

// Trip represents a single bicycle rental.
// Optional fields keep their zero value when the source cell is empty;
// Duration is NaN in that case.
type Trip struct {
	StartTime    time.Time
	EndTime      time.Time
	StartStation string
	EndStation   string
	Duration     float64
	UserType     string
	Gender       string
	BirthYear    int

	// Derived from StartTime and the station names at load time
	Month   int
	Weekday string
	Hour    int
	Route   StationPair
}

// Derive fills the calendar and route fields
func (t *Trip) Derive() {
	t.Month = int(t.StartTime.Month())
	t.Weekday = t.StartTime.Weekday().String()
	t.Hour = t.StartTime.Hour()
	t.Route = StationPair{Start: t.StartStation, End: t.EndStation}
}

// HasDuration reports whether the duration cell was present
func (t Trip) HasDuration() bool {
	return !math.IsNaN(t.Duration)
}

// TripResponse is the API response format for a trip
type TripResponse struct {
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	StartStation string      `json:"start_station"`
	EndStation   string      `json:"end_station"`
	Duration     *float64    `json:"duration_sec"`
	UserType     string      `json:"user_type"`
	Gender       string      `json:"gender,omitempty"`
	BirthYear    int         `json:"birth_year,omitempty"`
	Month        int         `json:"month"`
	Weekday      string      `json:"day_of_week"`
	Hour         int         `json:"hour"`
	Route        StationPair `json:"route"`
}

// ConvertToResponse converts a Trip to TripResponse format.
// A missing duration becomes null.
func (t *Trip) ConvertToResponse() TripResponse {
	var duration *float64
	if t.HasDuration() {
		d := t.Duration
		duration = &d
	}

	return TripResponse{
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		StartStation: t.StartStation,
		EndStation:   t.EndStation,
		Duration:     duration,
		UserType:     t.UserType,
		Gender:       t.Gender,
		BirthYear:    t.BirthYear,
		Month:        t.Month,
		Weekday:      t.Weekday,
		Hour:         t.Hour,
		Route:        t.Route,
	}
}
