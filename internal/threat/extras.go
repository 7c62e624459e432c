package threat

import (
	"bytes"
	"encoding/json"
	"fmt"

	dErrors "remedia/pkg/domain-errors"
)

// Extras is the open key-value portion of a threat record. It preserves the
// caller's key order so prompt construction and audit logging serialize the
// same input to the same bytes every time. Values are restricted to a closed
// set: string, number, boolean, or a nested mapping.
type Extras []Field

// Field is one key-value pair in an Extras mapping.
type Field struct {
	Key   string
	Value any // string | float64 | bool | Extras
}

// Get returns the value for key and whether it was present.
func (e Extras) Get(key string) (any, bool) {
	for _, f := range e {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the mapping as a JSON object in stored field order.
func (e Extras) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("extra field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order and rejecting
// values outside the supported variant set (arrays and nulls in particular).
func (e *Extras) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return dErrors.New(dErrors.CodeValidation, "additional_info must be a JSON object")
	}

	fields, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*e = fields
	return nil
}

// decodeObject consumes object members up to and including the closing brace.
func decodeObject(dec *json.Decoder) (Extras, error) {
	var fields Extras
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "additional_info has a non-string key")
		}

		value, err := decodeValue(dec, key)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	// Closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeValue(dec *json.Decoder, key string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case string:
		return v, nil
	case bool:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("additional_info field %q holds an unrepresentable number", key))
		}
		return f, nil
	case json.Delim:
		if v == json.Delim('{') {
			return decodeObject(dec)
		}
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("additional_info field %q must be a string, number, boolean, or nested object", key))
	default:
		// nil: JSON null carries no information and has no variant slot.
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("additional_info field %q must not be null", key))
	}
}
