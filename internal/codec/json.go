// Package codec holds the JSON configuration shared by the input loader and
// the statement builder, so that what is decoded is re-encoded byte-stably.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// JSON decodes numbers as json.Number, sorts object keys on encode and
// leaves <, > and & unescaped.
var JSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

var utf8BOM = []byte("\xef\xbb\xbf")

var (
	// ErrEmptyDocument is returned for input holding nothing but whitespace.
	ErrEmptyDocument = errors.New("empty JSON document")

	// ErrInvalidUTF8 is returned for input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("document is not valid UTF-8")
)

// Decode parses a single JSON document into a generic value.
// A leading UTF-8 byte order mark is ignored. Trailing data is an error.
//
// The document is checked against the strict JSON grammar before jsoniter
// sees it: jsoniter's number reader takes any run of digits, signs, dots and
// exponents (so [1.2.3] or [01] would come back as a json.Number and be
// re-emitted verbatim).
func Decode(data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var v any
	if err := JSON.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode renders v as compact JSON.
func Encode(v any) ([]byte, error) {
	return JSON.Marshal(v)
}
