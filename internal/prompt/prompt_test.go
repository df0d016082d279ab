package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jusunglee/bikeshare-go/internal/models"
)

func TestFilters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Filter
		retries  int
	}{
		{
			name:     "valid on first try",
			input:    "chicago\nmarch\nfriday\n",
			expected: models.Filter{City: models.Chicago, Month: "March", Day: "Friday"},
		},
		{
			name:     "trailing space is rejected",
			input:    "Chicago \nCHICAGO\nall\nall\n",
			expected: models.Filter{City: models.Chicago, Month: models.All, Day: models.All},
			retries:  1,
		},
		{
			name:     "every question retried",
			input:    "boston\nnew york city\njuly\nJune\nfunday\nsunday\n",
			expected: models.Filter{City: models.NewYorkCity, Month: "June", Day: "Sunday"},
			retries:  3,
		},
		{
			name:     "windows line endings",
			input:    "washington\r\nall\r\nmonday\r\n",
			expected: models.Filter{City: models.Washington, Month: models.All, Day: "Monday"},
		},
		{
			name:     "last line without newline",
			input:    "washington\nall\ntuesday",
			expected: models.Filter{City: models.Washington, Month: models.All, Day: "Tuesday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			p := New(strings.NewReader(tt.input), out)

			f, err := p.Filters()

			require.NoError(t, err)
			require.Equal(t, tt.expected, f)
			require.Equal(t, tt.retries, strings.Count(out.String(), "Incorrect input"))
		})
	}
}

func TestFiltersEndOfInput(t *testing.T) {
	p := New(strings.NewReader("boston\nparis\n"), io.Discard)

	_, err := p.Filters()
	require.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"yes\n", true},
		{"YES\n", true},
		{"Yes\n", true},
		{"y\n", false},
		{"no\n", false},
		{" yes\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			out := &bytes.Buffer{}
			p := New(strings.NewReader(tt.input), out)

			ok, err := p.Confirm("Would you like to restart? ")
			require.NoError(t, err)
			require.Equal(t, tt.expected, ok)
			require.Contains(t, out.String(), "Would you like to restart?")
		})
	}

	_, err := New(strings.NewReader(""), io.Discard).Confirm("again? ")
	require.ErrorIs(t, err, io.EOF)
}
