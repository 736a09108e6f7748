package loader

import (
	"fmt"

	"github.com/vvka-141/slurp/pkg/slurp"
)

var (
	// ErrUnreadable is returned when the input path cannot be read.
	ErrUnreadable = fmt.Errorf("input file unreadable: %w", slurp.ErrInput)

	// ErrInvalidJSON is returned when the input is not a single valid JSON document.
	ErrInvalidJSON = fmt.Errorf("input is not valid JSON: %w", slurp.ErrInput)

	// ErrNotArray is returned when the document root is anything but an array.
	ErrNotArray = fmt.Errorf("input must be a JSON array: %w", slurp.ErrInput)
)
