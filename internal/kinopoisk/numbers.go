package kinopoisk

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The upstream API is inconsistent about numeric fields: the same field may
// arrive as a bare number in one API version and a quoted numeric string in
// another (v2.1 search results encode year and rating as strings, and rating
// is sometimes a percentage like "99%"). Int and Float accept both
// encodings, plus null and the empty string, which the upstream uses for
// "unknown". A string that does not parse as a number decodes to zero
// rather than failing the whole response.

// Int is an int that unmarshals from a JSON number or a numeric string.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (n *Int) UnmarshalJSON(data []byte) error {
	s, quoted, ok := unquote(data)
	if !ok {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			if quoted {
				*n = 0
				return nil
			}
			return err
		}
		v = int(f)
	}
	*n = Int(v)
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting a bare number.
func (n Int) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(n))), nil
}

// Value returns the plain int value.
func (n Int) Value() int {
	return int(n)
}

// Float is a float64 that unmarshals from a JSON number or a numeric string.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	s, quoted, ok := unquote(data)
	if !ok {
		*f = 0
		return nil
	}
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if quoted {
			*f = 0
			return nil
		}
		return err
	}
	*f = Float(v)
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting a bare number.
func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Value returns the plain float64 value.
func (f Float) Value() float64 {
	return float64(f)
}

// unquote strips surrounding quotes from a JSON scalar and reports whether
// the result is a non-empty value. null, "" and "null" all mean "value not
// present" upstream.
func unquote(data []byte) (value string, quoted, ok bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, false
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", true, false
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			return "", true, false
		}
		return s, true, true
	}
	return string(data), false, true
}
