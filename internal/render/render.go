// Package render prints statistics reports and table previews for the
// interactive CLI.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/stats"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

// DisplayConfig controls console layout
type DisplayConfig struct {
	MaxColumns  int // preview columns shown, 0 for all
	PreviewRows int
	RuleWidth   int
}

// DefaultDisplayConfig returns the layout used by the CLI
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MaxColumns:  30,
		PreviewRows: 5,
		RuleWidth:   40,
	}
}

// Printer writes human-readable report blocks
type Printer struct {
	out io.Writer
	cfg DisplayConfig
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, cfg DisplayConfig) *Printer {
	return &Printer{out: out, cfg: cfg}
}

// Config returns the printer's display configuration
func (p *Printer) Config() DisplayConfig {
	return p.cfg
}

// Header starts a report block
func (p *Printer) Header(title string) {
	fmt.Fprintf(p.out, "\n%s\n", title)
}

// Elapsed ends a report block
func (p *Printer) Elapsed(d time.Duration) {
	fmt.Fprintf(p.out, "\nThis took %.6f seconds.\n", d.Seconds())
	fmt.Fprintln(p.out, strings.Repeat("-", p.cfg.RuleWidth))
}

// Failure explains why a report could not be produced
func (p *Printer) Failure(err error) {
	switch {
	case errors.Is(err, models.ErrNoData):
		fmt.Fprintf(p.out, "\nNo data: %v\n", err)
	case errors.Is(err, models.ErrMissingColumn):
		fmt.Fprintf(p.out, "\nSchema mismatch: %v\n", err)
	default:
		fmt.Fprintf(p.out, "\nError: %v\n", err)
	}
}

// Time prints the most frequent times of travel
func (p *Printer) Time(r stats.TimeReport) {
	months := make([]string, len(r.Months))
	for i, m := range r.Months {
		months[i] = models.Months[m-1]
	}
	hours := make([]string, len(r.Hours))
	for i, h := range r.Hours {
		hours[i] = strconv.Itoa(h)
	}

	p.values("The most common month(s) is/are:", months)
	p.values("The most common day(s) of the week is/are:", r.Weekdays)
	p.values("The most common start hour(s) is/are:", hours)
}

// Stations prints the most popular stations and trips
func (p *Printer) Stations(r stats.StationReport) {
	routes := make([]string, len(r.Routes))
	for i, route := range r.Routes {
		routes[i] = route.String()
	}

	p.values("The most commonly used start station(s) is/are:", r.StartStations)
	p.values("The most commonly used end station(s) is/are:", r.EndStations)
	p.values("The most common trip(s) (Start Station - End Station) is/are:", routes)
}

// Duration prints travel time totals
func (p *Printer) Duration(r stats.DurationReport) {
	fmt.Fprintf(p.out, "\nTotal travel duration: %g mins\n", r.TotalMinutes)
	fmt.Fprintf(p.out, "\nAverage travel time: %g mins\n", r.MeanMinutes)
}

// Users prints user type counts and demographics when available
func (p *Printer) Users(r stats.UserReport) {
	p.counts("Counts of user type:", r.UserTypes)
	if r.Demographics == nil {
		return
	}

	p.counts("Counts of gender:", r.Demographics.Genders)
	by := r.Demographics.BirthYears
	if by == nil {
		fmt.Fprintln(p.out, "\nNo birth year data.")
		return
	}

	years := make([]string, len(by.MostCommon))
	for i, y := range by.MostCommon {
		years[i] = strconv.Itoa(y)
	}
	fmt.Fprintf(p.out, "\nEarliest year of birth: %d\n", by.Earliest)
	fmt.Fprintf(p.out, "\nMost recent year of birth: %d\n", by.Latest)
	p.values("Most common year(s) of birth:", years)
}

// Preview prints the leading rows of t as a table
func (p *Printer) Preview(t *store.Table) {
	rows := t.Head(p.cfg.PreviewRows)
	fmt.Fprintf(p.out, "\nShowing %d row(s)...\n\n", len(rows))
	if len(rows) == 0 {
		return
	}

	records := previewRecords(t.Capabilities(), rows, p.cfg.MaxColumns)
	table := tablewriter.NewWriter(p.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(records[0])
	table.AppendBulk(records[1:])
	table.Render()
}

func (p *Printer) values(title string, values []string) {
	fmt.Fprintf(p.out, "\n%s\n", title)
	for _, v := range values {
		fmt.Fprintf(p.out, "  %s\n", v)
	}
}

func (p *Printer) counts(title string, counts []stats.Count[string]) {
	fmt.Fprintf(p.out, "\n%s\n", title)
	for _, c := range counts {
		fmt.Fprintf(p.out, "  %-12s %d\n", c.Value, c.Count)
	}
}

// previewRecords lays out rows with the source columns the table carries
// followed by the derived ones
func previewRecords(caps models.Capabilities, rows []models.Trip, maxColumns int) [][]string {
	type column struct {
		name string
		get  func(models.Trip) string
	}

	const timeLayout = "2006-01-02 15:04:05"
	columns := []column{
		{models.ColStartTime, func(t models.Trip) string { return t.StartTime.Format(timeLayout) }},
		{models.ColEndTime, func(t models.Trip) string { return t.EndTime.Format(timeLayout) }},
	}
	if caps.Duration {
		columns = append(columns, column{models.ColDuration, func(t models.Trip) string {
			return strconv.FormatFloat(t.Duration, 'f', -1, 64)
		}})
	}
	columns = append(columns,
		column{models.ColStartStation, func(t models.Trip) string { return t.StartStation }},
		column{models.ColEndStation, func(t models.Trip) string { return t.EndStation }},
		column{models.ColUserType, func(t models.Trip) string { return t.UserType }},
	)
	if caps.Gender {
		columns = append(columns, column{models.ColGender, func(t models.Trip) string { return t.Gender }})
	}
	if caps.BirthYear {
		columns = append(columns, column{models.ColBirthYear, func(t models.Trip) string {
			if t.BirthYear == 0 {
				return ""
			}
			return strconv.Itoa(t.BirthYear)
		}})
	}
	columns = append(columns,
		column{"month", func(t models.Trip) string { return strconv.Itoa(t.Month) }},
		column{"day_of_week", func(t models.Trip) string { return t.Weekday }},
		column{"hour", func(t models.Trip) string { return strconv.Itoa(t.Hour) }},
	)

	if maxColumns > 0 && len(columns) > maxColumns {
		columns = columns[:maxColumns]
	}

	records := make([][]string, 0, len(rows)+1)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.name
	}
	records = append(records, header)
	for _, trip := range rows {
		record := make([]string, len(columns))
		for i, c := range columns {
			record[i] = c.get(trip)
		}
		records = append(records, record)
	}
	return records
}
