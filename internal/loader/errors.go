package loader

import "github.com/pkg/errors"

var (
	ErrSourceNotFound  = errors.New("trip source not found")
	ErrMalformedSource = errors.New("malformed trip source")
)
