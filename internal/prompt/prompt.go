// Package prompt collects filter selections and yes/no answers from a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jusunglee/bikeshare-go/internal/models"
)

const (
	cityQuestion  = "Enter the city to filter (options: chicago, new york city, washington): "
	cityRetry     = "Incorrect input, re-enter the city to filter (options: chicago, new york city, washington): "
	monthQuestion = `Enter the month to filter from the first 6 months (options: january, february, march, ...) or "all" to apply no month filter: `
	monthRetry    = `Incorrect input, re-enter any month from the first 6 months (options: january, february, march, ...) or "all" to apply no month filter: `
	dayQuestion   = `Enter the day of the week to filter (options: monday, tuesday, wednesday, ...) or "all" to apply no day filter: `
	dayRetry      = `Incorrect input, re-enter the day of the week to filter (options: monday, tuesday, wednesday, ...) or "all" to apply no day filter: `
)

// Prompter reads answers line by line from in and writes questions to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Filters asks for city, month and day, repeating each question until the
// answer is valid. The only error returned is io.EOF when input ends.
func (p *Prompter) Filters() (models.Filter, error) {
	fmt.Fprintln(p.out, "Hello! Let's explore some US bikeshare data!")

	city, err := p.choose(cityQuestion, cityRetry, func(s string) (string, error) {
		c, err := models.ParseCity(s)
		return string(c), err
	})
	if err != nil {
		return models.Filter{}, err
	}

	month, err := p.choose(monthQuestion, monthRetry, models.ParseMonth)
	if err != nil {
		return models.Filter{}, err
	}

	day, err := p.choose(dayQuestion, dayRetry, models.ParseDay)
	if err != nil {
		return models.Filter{}, err
	}

	fmt.Fprintln(p.out, strings.Repeat("-", 40))
	return models.Filter{City: models.City(city), Month: month, Day: day}, nil
}

// Confirm asks a yes/no question; only "yes" in any letter case is affirmative
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "yes", nil
}

func (p *Prompter) choose(question, retry string, parse func(string) (string, error)) (string, error) {
	answer, err := p.ask(question)
	for err == nil {
		value, perr := parse(answer)
		if perr == nil {
			return value, nil
		}
		log.WithField("answer", answer).Debug("rejected answer")
		answer, err = p.ask(retry)
	}
	return "", err
}

// ask writes question and returns the next line without its line ending.
// Surrounding spaces are kept.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "\n%s", question)

	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
