package store

import (
	"github.com/jusunglee/bikeshare-go/internal/models"
)

// Table is an ordered in-memory set of trips loaded from one city source.
// It is not modified after load; filtering returns a new Table.
type Table struct {
	city    models.City
	caps    models.Capabilities
	columns []string
	trips   []models.Trip
}

// NewTable creates a table over trips. Columns is the source header order.
func NewTable(city models.City, caps models.Capabilities, columns []string, trips []models.Trip) *Table {
	if trips == nil {
		trips = []models.Trip{}
	}
	return &Table{
		city:    city,
		caps:    caps,
		columns: columns,
		trips:   trips,
	}
}

// City returns the city the table was loaded for
func (t *Table) City() models.City {
	return t.city
}

// Capabilities returns the optional columns carried by the source
func (t *Table) Capabilities() models.Capabilities {
	return t.caps
}

// Columns returns the source header
func (t *Table) Columns() []string {
	result := make([]string, len(t.columns))
	copy(result, t.columns)
	return result
}

// Len returns the number of trips
func (t *Table) Len() int {
	return len(t.trips)
}

// Trips returns the rows in load order. Callers must not modify the slice.
func (t *Table) Trips() []models.Trip {
	return t.trips
}

// Where returns the rows matching keep, in their original order
func (t *Table) Where(keep func(models.Trip) bool) *Table {
	result := make([]models.Trip, 0, len(t.trips))
	for _, trip := range t.trips {
		if keep(trip) {
			result = append(result, trip)
		}
	}
	return &Table{
		city:    t.city,
		caps:    t.caps,
		columns: t.columns,
		trips:   result,
	}
}

// Head returns up to n leading rows
func (t *Table) Head(n int) []models.Trip {
	if n > len(t.trips) {
		n = len(t.trips)
	}
	if n < 0 {
		n = 0
	}
	result := make([]models.Trip, n)
	copy(result, t.trips[:n])
	return result
}

// Column extracts one value per row
func Column[T any](t *Table, get func(models.Trip) T) []T {
	result := make([]T, len(t.trips))
	for i, trip := range t.trips {
		result[i] = get(trip)
	}
	return result
}
