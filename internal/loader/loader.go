// Package loader reads city trip files into trip tables and applies the
// month and day filters.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jusunglee/bikeshare-go/internal/config"
	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

// Accepted start/end time layouts, tried in order
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Loader reads trip sources described by a catalog
type Loader struct {
	catalog *config.Catalog
	dataDir string
}

// New creates a loader resolving catalog files against dataDir
func New(catalog *config.Catalog, dataDir string) *Loader {
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	return &Loader{
		catalog: catalog,
		dataDir: dataDir,
	}
}

// Cities returns the cities the catalog can load
func (l *Loader) Cities() []models.City {
	return l.catalog.Names()
}

// Load reads the city's whole source and returns the rows matching f.
// The file is read on every call.
func (l *Loader) Load(ctx context.Context, f models.Filter) (*store.Table, error) {
	table, err := l.LoadCity(ctx, f.City)
	if err != nil {
		return nil, err
	}

	filtered, err := Apply(table, f)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"city":     f.City,
		"month":    f.Month,
		"day":      f.Day,
		"loaded":   table.Len(),
		"filtered": filtered.Len(),
	}).Debug("trips filtered")
	return filtered, nil
}

// LoadCity reads all trips of city without filtering
func (l *Loader) LoadCity(ctx context.Context, city models.City) (*store.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.catalog.Path(l.dataDir, city)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrSourceNotFound, "%s: %s", city, path)
		}
		return nil, errors.Wrapf(err, "error opening %s", path)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("error closing %s: %v", path, err)
		}
	}()

	table, err := Parse(file, city)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	log.WithFields(log.Fields{
		"city": city,
		"path": path,
		"rows": table.Len(),
	}).Debug("trips loaded")
	return table, nil
}

// Parse reads a trip CSV with a header row.
// A file holding only the header yields an empty table.
func Parse(r io.Reader, city models.City) (*store.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedSource, "%s", err)
	}

	// Only empty cells are missing; "NA" is a valid station or user type
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		header, ok := headerOnly(data)
		if !ok {
			return nil, errors.Wrapf(ErrMalformedSource, "%s", df.Err)
		}
		if err := checkColumns(header, city); err != nil {
			return nil, err
		}
		return store.NewTable(city, models.CapabilitiesFromHeader(header), header, nil), nil
	}

	header := df.Names()
	if err := checkColumns(header, city); err != nil {
		return nil, err
	}
	caps := models.CapabilitiesFromHeader(header)

	column := func(name string) []string {
		return df.Col(name).Records()
	}
	starts := column(models.ColStartTime)
	ends := column(models.ColEndTime)
	from := column(models.ColStartStation)
	to := column(models.ColEndStation)
	users := column(models.ColUserType)

	var durations, genders, births []string
	if caps.Duration {
		durations = column(models.ColDuration)
	}
	if caps.Gender {
		genders = column(models.ColGender)
	}
	if caps.BirthYear {
		births = column(models.ColBirthYear)
	}

	trips := make([]models.Trip, df.Nrow())
	for i := range trips {
		trip := &trips[i]
		row := i + 1

		if trip.StartTime, err = parseTime(starts[i]); err != nil {
			return nil, rowError(row, models.ColStartTime, err)
		}
		if trip.EndTime, err = parseTime(ends[i]); err != nil {
			return nil, rowError(row, models.ColEndTime, err)
		}

		trip.StartStation = cell(from[i])
		trip.EndStation = cell(to[i])
		trip.UserType = cell(users[i])
		trip.Duration = math.NaN()

		if durations != nil {
			if trip.Duration, err = parseDuration(durations[i]); err != nil {
				return nil, rowError(row, models.ColDuration, err)
			}
		}
		if genders != nil {
			trip.Gender = cell(genders[i])
		}
		if births != nil {
			if trip.BirthYear, err = parseYear(births[i]); err != nil {
				return nil, rowError(row, models.ColBirthYear, err)
			}
		}

		trip.Derive()
	}

	return store.NewTable(city, caps, header, trips), nil
}

// Apply keeps the rows whose derived month and weekday match f.
// Any of the twelve month names is accepted.
func Apply(table *store.Table, f models.Filter) (*store.Table, error) {
	month := 0
	if f.Month != "" && f.Month != models.All {
		n, err := models.MonthNumber(f.Month)
		if err != nil {
			return nil, err
		}
		month = n
	}

	day := ""
	if f.Day != "" && f.Day != models.All {
		day = models.TitleCase(f.Day)
	}

	if month == 0 && day == "" {
		return table, nil
	}

	return table.Where(func(trip models.Trip) bool {
		if month != 0 && trip.Month != month {
			return false
		}
		if day != "" && trip.Weekday != day {
			return false
		}
		return true
	}), nil
}

func checkColumns(header []string, city models.City) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, name := range models.RequiredColumns {
		if !present[name] {
			return errors.Wrapf(models.ErrMissingColumn, "%q for %s", name, city)
		}
	}
	return nil
}

func rowError(row int, column string, err error) error {
	return errors.Wrapf(ErrMalformedSource, "row %d, column %q: %s", row, column, err)
}

func cell(v string) string {
	return strings.TrimSpace(v)
}

// headerOnly returns the header of a CSV holding no data rows
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// missingNumber reports an empty numeric cell; gota renders a literal NaN cell as "NaN"
func missingNumber(v string) bool {
	return v == "" || v == "NaN"
}

func parseTime(v string) (time.Time, error) {
	v = cell(v)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid timestamp %q", v)
}

func parseDuration(v string) (float64, error) {
	v = cell(v)
	if missingNumber(v) {
		return math.NaN(), nil
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Errorf("invalid duration %q", v)
	}
	return d, nil
}

// parseYear accepts integral floats such as "1992.0"; empty cells become 0
func parseYear(v string) (int, error) {
	v = cell(v)
	if missingNumber(v) {
		return 0, nil
	}
	y, err := strconv.ParseFloat(v, 64)
	if err != nil || y != math.Trunc(y) {
		return 0, errors.Errorf("invalid birth year %q", v)
	}
	return int(y), nil
}
