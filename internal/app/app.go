// Package app runs the interactive explore loop: collect filters, load the
// city's trips, print the four reports, optionally preview rows, and offer a
// restart.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/render"
	"github.com/jusunglee/bikeshare-go/internal/stats"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

const (
	previewQuestion = "Would you like to view %d rows of data? Enter yes or no. "
	restartQuestion = "Would you like to restart? Enter yes or no.\n"
)

// Loader returns the trips matching a filter, read fresh from the source
type Loader interface {
	Load(ctx context.Context, f models.Filter) (*store.Table, error)
}

// Prompter collects answers from the user
type Prompter interface {
	Filters() (models.Filter, error)
	Confirm(question string) (bool, error)
}

// App wires the explore loop's dependencies
type App struct {
	loader   Loader
	prompter Prompter
	printer  *render.Printer
}

// New creates an App
func New(loader Loader, prompter Prompter, printer *render.Printer) *App {
	return &App{
		loader:   loader,
		prompter: prompter,
		printer:  printer,
	}
}

// Run repeats analysis passes until the user declines to restart.
// A load failure ends the loop and is returned.
func (a *App) Run(ctx context.Context) error {
	for {
		restart, err := a.pass(ctx)
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

func (a *App) pass(ctx context.Context) (bool, error) {
	logger := log.WithField("run_id", uuid.NewString())

	f, err := a.prompter.Filters()
	if err != nil {
		return false, errors.Wrap(err, "error reading filters")
	}
	logger = logger.WithField("filter", f.String())

	table, err := a.loader.Load(ctx, f)
	if err != nil {
		logger.WithError(err).Error("error loading trips")
		return false, err
	}
	logger.WithField("rows", table.Len()).Info("trips loaded")

	a.report("Calculating The Most Frequent Times of Travel...", func() error {
		r, err := stats.Time(table)
		if err == nil {
			a.printer.Time(r)
		}
		return err
	})
	a.report("Calculating The Most Popular Stations and Trip...", func() error {
		r, err := stats.Stations(table)
		if err == nil {
			a.printer.Stations(r)
		}
		return err
	})
	a.report("Calculating Trip Duration...", func() error {
		r, err := stats.Duration(table)
		if err == nil {
			a.printer.Duration(r)
		}
		return err
	})
	a.report("Calculating User Stats...", func() error {
		r, err := stats.Users(table)
		if err == nil {
			a.printer.Users(r)
		}
		return err
	})

	preview, err := a.prompter.Confirm(fmt.Sprintf(previewQuestion, a.printer.Config().PreviewRows))
	if err != nil {
		return false, endOfInput(err, "error reading preview answer")
	}
	if preview {
		a.printer.Preview(table)
	}

	restart, err := a.prompter.Confirm(restartQuestion)
	if err != nil {
		return false, endOfInput(err, "error reading restart answer")
	}
	return restart, nil
}

// endOfInput treats closed input as "no"; other read errors are returned
func endOfInput(err error, msg string) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return errors.Wrap(err, msg)
}

// report prints one block: header, the compute output or its failure, and the elapsed time
func (a *App) report(title string, compute func() error) {
	a.printer.Header(title)
	start := time.Now()
	if err := compute(); err != nil {
		log.WithError(err).Debug("report failed")
		a.printer.Failure(err)
	}
	a.printer.Elapsed(time.Since(start))
}
