// Package stats computes the travel statistics reported for a filtered
// trip table.
package stats

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

// TimeReport holds the most frequent times of travel
type TimeReport struct {
	Months   []int    `json:"months"`
	Weekdays []string `json:"weekdays"`
	Hours    []int    `json:"hours"`
}

// StationReport holds the most popular stations and trips
type StationReport struct {
	StartStations []string             `json:"start_stations"`
	EndStations   []string             `json:"end_stations"`
	Routes        []models.StationPair `json:"routes"`
}

// DurationReport holds trip duration totals in minutes
type DurationReport struct {
	TotalMinutes float64 `json:"total_minutes"`
	MeanMinutes  float64 `json:"mean_minutes"`
}

// UserReport holds user type counts and, when the source has them, demographics
type UserReport struct {
	UserTypes    []Count[string] `json:"user_types"`
	Demographics *Demographics   `json:"demographics,omitempty"`
}

// Demographics holds gender counts and birth year extremes
type Demographics struct {
	Genders    []Count[string] `json:"genders"`
	BirthYears *BirthYears     `json:"birth_years,omitempty"`
}

// BirthYears is nil in Demographics when no row has a birth year
type BirthYears struct {
	Earliest   int   `json:"earliest"`
	Latest     int   `json:"latest"`
	MostCommon []int `json:"most_common"`
}

// Time reports the most common month, weekday and start hour
func Time(t *store.Table) (TimeReport, error) {
	if t.Len() == 0 {
		return TimeReport{}, noData(t)
	}

	var (
		report TimeReport
		err    error
	)
	if report.Months, err = MostCommon(store.Column(t, func(trip models.Trip) int { return trip.Month })); err != nil {
		return TimeReport{}, err
	}
	if report.Weekdays, err = MostCommon(store.Column(t, func(trip models.Trip) string { return trip.Weekday })); err != nil {
		return TimeReport{}, err
	}
	if report.Hours, err = MostCommon(store.Column(t, func(trip models.Trip) int { return trip.Hour })); err != nil {
		return TimeReport{}, err
	}
	return report, nil
}

// Stations reports the most common start station, end station and route
func Stations(t *store.Table) (StationReport, error) {
	if t.Len() == 0 {
		return StationReport{}, noData(t)
	}

	var (
		report StationReport
		err    error
	)
	if report.StartStations, err = MostCommon(store.Column(t, func(trip models.Trip) string { return trip.StartStation })); err != nil {
		return StationReport{}, err
	}
	if report.EndStations, err = MostCommon(store.Column(t, func(trip models.Trip) string { return trip.EndStation })); err != nil {
		return StationReport{}, err
	}
	if report.Routes, err = MostCommon(store.Column(t, func(trip models.Trip) models.StationPair { return trip.Route })); err != nil {
		return StationReport{}, err
	}
	return report, nil
}

// Duration reports total and mean trip duration. Durations are stored in
// seconds; empty cells are skipped.
func Duration(t *store.Table) (DurationReport, error) {
	if !t.Capabilities().Duration {
		return DurationReport{}, errors.Wrapf(models.ErrMissingColumn, "%q for %s", models.ColDuration, t.City())
	}
	if t.Len() == 0 {
		return DurationReport{}, noData(t)
	}

	var (
		total float64
		n     int
	)
	for _, trip := range t.Trips() {
		if !trip.HasDuration() {
			continue
		}
		total += trip.Duration
		n++
	}
	if n == 0 {
		return DurationReport{}, errors.Wrapf(models.ErrNoData, "no trip durations for %s", t.City())
	}

	return DurationReport{
		TotalMinutes: total / 60,
		MeanMinutes:  total / float64(n) / 60,
	}, nil
}

// Users reports user type counts, plus gender and birth year statistics
// when the table's source carries demographic columns.
func Users(t *store.Table) (UserReport, error) {
	if t.Len() == 0 {
		return UserReport{}, noData(t)
	}

	report := UserReport{
		UserTypes: ValueCounts(present(store.Column(t, func(trip models.Trip) string { return trip.UserType }))),
	}
	if !t.Capabilities().Demographics() {
		return report, nil
	}

	demo := &Demographics{
		Genders: ValueCounts(present(store.Column(t, func(trip models.Trip) string { return trip.Gender }))),
	}

	var years []int
	for _, trip := range t.Trips() {
		if trip.BirthYear != 0 {
			years = append(years, trip.BirthYear)
		}
	}
	if len(years) > 0 {
		common, err := MostCommon(years)
		if err != nil {
			return UserReport{}, err
		}
		by := &BirthYears{Earliest: years[0], Latest: years[0], MostCommon: common}
		for _, y := range years[1:] {
			by.Earliest = min(by.Earliest, y)
			by.Latest = max(by.Latest, y)
		}
		demo.BirthYears = by
	}

	report.Demographics = demo
	return report, nil
}

// Summary bundles every report for one filtered table
type Summary struct {
	Filter       models.Filter       `json:"filter"`
	Rows         int                 `json:"rows"`
	Capabilities models.Capabilities `json:"capabilities"`
	Time         TimeReport          `json:"time"`
	Stations     StationReport       `json:"stations"`
	Duration     *DurationReport     `json:"duration,omitempty"`
	Users        UserReport          `json:"users"`
}

// Summarize computes all reports concurrently. The table must not be
// modified while this runs. A missing duration column leaves Duration nil
// instead of failing the summary.
func Summarize(ctx context.Context, f models.Filter, t *store.Table) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, noData(t)
	}

	summary := &Summary{
		Filter:       f,
		Rows:         t.Len(),
		Capabilities: t.Capabilities(),
	}

	var g errgroup.Group
	g.Go(func() error {
		r, err := Time(t)
		summary.Time = r
		return err
	})
	g.Go(func() error {
		r, err := Stations(t)
		summary.Stations = r
		return err
	})
	g.Go(func() error {
		r, err := Duration(t)
		if errors.Is(err, models.ErrMissingColumn) || errors.Is(err, models.ErrNoData) {
			return nil
		}
		if err != nil {
			return err
		}
		summary.Duration = &r
		return nil
	})
	g.Go(func() error {
		r, err := Users(t)
		summary.Users = r
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func noData(t *store.Table) error {
	return errors.Wrapf(models.ErrNoData, "%s", t.City())
}

// present drops empty values
func present(values []string) []string {
	result := values[:0]
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
