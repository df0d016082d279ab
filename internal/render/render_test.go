package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/stats"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

func newTestPrinter() (*Printer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrinter(out, DefaultDisplayConfig()), out
}

func testTrips() []models.Trip {
	start := time.Date(2017, time.January, 2, 8, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		{StartTime: start, EndTime: start.Add(time.Minute), StartStation: "Canal St", EndStation: "Clark St", Duration: 60, UserType: "Subscriber", Gender: "Male", BirthYear: 1980},
		{StartTime: start.Add(time.Hour), EndTime: start.Add(time.Hour + time.Minute), StartStation: "Lake St", EndStation: "Canal St", Duration: 90, UserType: "Customer"},
	}
	for i := range trips {
		trips[i].Derive()
	}
	return trips
}

func TestTime(t *testing.T) {
	p, out := newTestPrinter()
	p.Time(stats.TimeReport{Months: []int{1, 6}, Weekdays: []string{"Monday"}, Hours: []int{17}})

	require.Contains(t, out.String(), "January")
	require.Contains(t, out.String(), "June")
	require.Contains(t, out.String(), "Monday")
	require.Contains(t, out.String(), "17")
}

func TestStationsJoinsRoutesForDisplay(t *testing.T) {
	p, out := newTestPrinter()
	p.Stations(stats.StationReport{
		StartStations: []string{"Canal St"},
		EndStations:   []string{"Clark St"},
		Routes:        []models.StationPair{{Start: "Canal St", End: "Clark St"}},
	})

	require.Contains(t, out.String(), "Canal St - Clark St")
}

func TestDuration(t *testing.T) {
	p, out := newTestPrinter()
	p.Duration(stats.DurationReport{TotalMinutes: 6, MeanMinutes: 2})

	require.Contains(t, out.String(), "Total travel duration: 6 mins")
	require.Contains(t, out.String(), "Average travel time: 2 mins")
}

func TestUsers(t *testing.T) {
	t.Run("with demographics", func(t *testing.T) {
		p, out := newTestPrinter()
		p.Users(stats.UserReport{
			UserTypes: []stats.Count[string]{{Value: "Subscriber", Count: 3}},
			Demographics: &stats.Demographics{
				Genders:    []stats.Count[string]{{Value: "Female", Count: 2}},
				BirthYears: &stats.BirthYears{Earliest: 1939, Latest: 2001, MostCommon: []int{1989}},
			},
		})

		require.Contains(t, out.String(), "Counts of gender:")
		require.Contains(t, out.String(), "Earliest year of birth: 1939")
		require.Contains(t, out.String(), "Most recent year of birth: 2001")
		require.Contains(t, out.String(), "1989")
	})

	t.Run("without demographics", func(t *testing.T) {
		p, out := newTestPrinter()
		p.Users(stats.UserReport{UserTypes: []stats.Count[string]{{Value: "Customer", Count: 1}}})

		require.Contains(t, out.String(), "Customer")
		require.NotContains(t, out.String(), "gender")
	})
}

func TestFailure(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{errors.Wrap(models.ErrNoData, "Chicago"), "No data:"},
		{errors.Wrap(models.ErrMissingColumn, "Trip Duration"), "Schema mismatch:"},
		{errors.New("boom"), "Error:"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			p, out := newTestPrinter()
			p.Failure(tt.err)
			require.Contains(t, out.String(), tt.prefix)
		})
	}
}

func TestElapsed(t *testing.T) {
	p, out := newTestPrinter()
	p.Elapsed(1500 * time.Millisecond)

	require.Contains(t, out.String(), "This took 1.500000 seconds.")
	require.Contains(t, out.String(), "----------------------------------------")
}

func TestPreviewRecords(t *testing.T) {
	trips := testTrips()

	records := previewRecords(models.Capabilities{Duration: true, Gender: true, BirthYear: true}, trips, 0)
	require.Len(t, records, 3)
	require.Equal(t, []string{
		models.ColStartTime, models.ColEndTime, models.ColDuration,
		models.ColStartStation, models.ColEndStation, models.ColUserType,
		models.ColGender, models.ColBirthYear,
		"month", "day_of_week", "hour",
	}, records[0])
	require.Equal(t, "2017-01-02 08:00:00", records[1][0])
	require.Equal(t, "60", records[1][2])
	require.Equal(t, "1980", records[1][7])
	require.Equal(t, "", records[2][7])
	require.Equal(t, "Monday", records[1][9])

	washington := previewRecords(models.Capabilities{Duration: true}, trips, 0)
	require.NotContains(t, washington[0], models.ColGender)
	require.NotContains(t, washington[0], models.ColBirthYear)

	narrow := previewRecords(models.Capabilities{Duration: true}, trips, 3)
	require.Equal(t, []string{models.ColStartTime, models.ColEndTime, models.ColDuration}, narrow[0])
	require.Len(t, narrow[1], 3)
}

func TestPreview(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.PreviewRows = 1
	out := &bytes.Buffer{}
	p := NewPrinter(out, cfg)

	p.Preview(store.NewTable(models.Chicago, models.Capabilities{Duration: true}, nil, testTrips()))

	require.Contains(t, out.String(), "Showing 1 row(s)")
	require.Contains(t, out.String(), "2017-01-02 08:00:00")
	require.NotContains(t, out.String(), "Lake St")

	out.Reset()
	p.Preview(store.NewTable(models.Chicago, models.Capabilities{}, nil, nil))
	require.Contains(t, out.String(), "Showing 0 row(s)")
	require.NotContains(t, out.String(), models.ColStartTime)
}

func TestPreviewShowsEveryColumn(t *testing.T) {
	p, out := newTestPrinter()
	caps := models.Capabilities{Duration: true, Gender: true, BirthYear: true}

	p.Preview(store.NewTable(models.Chicago, caps, nil, testTrips()))

	got := out.String()
	require.Contains(t, got, "Showing 2 row(s)")
	for _, want := range []string{
		models.ColStartTime, models.ColDuration,
		models.ColStartStation, models.ColEndStation, models.ColUserType,
		models.ColGender, models.ColBirthYear,
		"month", "day_of_week", "hour",
		"Canal St", "Clark St", "Lake St", "Subscriber", "Customer", "Male", "1980", "Monday",
	} {
		require.Contains(t, got, want)
	}
}

func TestPreviewMaxColumns(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.MaxColumns = 3
	out := &bytes.Buffer{}
	p := NewPrinter(out, cfg)

	p.Preview(store.NewTable(models.Chicago, models.Capabilities{Duration: true}, nil, testTrips()))

	got := out.String()
	require.Contains(t, got, models.ColDuration)
	require.NotContains(t, got, models.ColStartStation)
	require.NotContains(t, got, "Canal St")
}
