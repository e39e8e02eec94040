// Package payload decodes the `{"data": {...}}` request envelope and offers
// loose field checks over the undecoded values.
//
// A missing body, a non-object body and a missing or non-object "data" key
// all yield an empty Data. Only malformed JSON is an error.
package payload

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"grubdash/internal/common/apperr"
)

const maxBody = 1 << 20

type Data map[string]json.RawMessage

// Decode reads the whole body and returns its "data" object.
func Decode(r io.Reader) (Data, error) {
	if r == nil {
		return Data{}, nil
	}
	b, err := io.ReadAll(io.LimitReader(r, maxBody))
	if err != nil {
		return nil, apperr.BadRequest("Request body could not be read.")
	}
	return Parse(b)
}

func Parse(b []byte) (Data, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Data{}, nil
	}
	if !json.Valid(b) {
		return nil, apperr.BadRequest("Request body must be valid JSON.")
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(b, &envelope); err != nil {
		return Data{}, nil
	}
	return Object(envelope["data"]), nil
}

// Object returns raw as a Data when it holds a JSON object, else an empty Data.
func Object(raw json.RawMessage) Data {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil || d == nil {
		return Data{}
	}
	return d
}

// Raw returns the undecoded value; missing keys and JSON null report false.
func (d Data) Raw(key string) (json.RawMessage, bool) {
	raw, ok := d[key]
	if !ok || IsNull(raw) {
		return nil, false
	}
	return raw, true
}

func (d Data) String(key string) (string, bool) {
	raw, ok := d.Raw(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// NonEmptyString is the check behind every "property is required" rule.
func (d Data) NonEmptyString(key string) (string, bool) {
	s, ok := d.String(key)
	return s, ok && s != ""
}

func (d Data) Array(key string) ([]json.RawMessage, bool) {
	raw, ok := d.Raw(key)
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func IsNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || string(t) == "null"
}

// Number decodes raw only when it is a JSON number literal.
func Number(raw json.RawMessage) (float64, bool) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || !(t[0] == '-' || (t[0] >= '0' && t[0] <= '9')) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(t, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Coerce converts a JSON value to a number the way a loosely typed client
// would: numeric strings parse, booleans become 1/0, null and "" become 0,
// anything else is NaN.
func Coerce(raw json.RawMessage) float64 {
	if IsNull(raw) {
		return 0
	}
	if f, ok := Number(raw); ok {
		return f
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return math.NaN()
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// Present reports a value that is set: not missing, null, false or "".
// Numeric zero counts as present.
func Present(raw json.RawMessage) bool {
	if IsNull(raw) {
		return false
	}
	switch string(bytes.TrimSpace(raw)) {
	case "false", `""`:
		return false
	}
	return true
}

// Equal compares a raw JSON value with a path segment. Only a JSON string
// with the same text matches.
func Equal(raw json.RawMessage, s string) bool {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v == s
}

// Text renders a raw value for messages: strings unquoted, the rest as JSON.
func Text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
