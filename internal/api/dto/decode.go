package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DecodeStrict unmarshals a JSON payload into dst, reporting any field the
// target shape does not declare. Server-assigned fields such as id and
// date_in are refused this way instead of silently dropped.
func DecodeStrict(data []byte, dst any) (FieldErrors, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if field, ok := unknownFieldName(err); ok {
			fe := FieldErrors{}
			fe.add(field, "is not an accepted field")
			return fe, nil
		}
		return nil, err
	}
	return nil, nil
}

// unknownFieldName extracts the offending key from encoding/json's unknown
// field error. The message text is the only signal the package exposes.
func unknownFieldName(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
