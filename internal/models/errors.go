package models

import "github.com/pkg/errors"

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrNoData        = errors.New("no trips match the selected filters")
	ErrMissingColumn = errors.New("column missing from city schema")
)
