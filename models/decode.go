package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// field binds one camelCase JSON key to its destination.
type field struct {
	key      string
	dst      any
	optional bool
}

func required(key string, dst any) field { return field{key: key, dst: dst} }
func optional(key string, dst any) field { return field{key: key, dst: dst, optional: true} }

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeObject reads a JSON object strictly: unknown keys are rejected,
// required keys must be present and non-null, string destinations are
// trimmed. Every field is attempted so that one call reports all of the
// object's problems joined together.
func decodeObject(data []byte, fields ...field) error {
	if isNull(data) {
		return schemaErr("object", "null", "must be an object")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return schemaErr("object", "", "must be an object: %v", err)
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.key] = struct{}{}
	}
	var unknown []string
	for key := range raw {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	var errs []error
	for _, key := range unknown {
		errs = append(errs, &SchemaError{Field: key, Rule: "extra-forbidden", Msg: "unknown field"})
	}
	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok || isNull(value) {
			if !f.optional {
				errs = append(errs, &SchemaError{Field: f.key, Rule: "missing", Msg: "field required"})
			}
			continue
		}
		if err := decodeValue(value, f.dst); err != nil {
			errs = append(errs, inField(f.key, err))
		}
	}
	return errors.Join(errs...)
}

func decodeValue(raw json.RawMessage, dst any) error {
	switch d := dst.(type) {
	case *string:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return schemaErr("string-type", string(raw), "must be a string")
		}
		*d = strings.TrimSpace(s)
		return nil
	case *bool:
		if err := json.Unmarshal(raw, d); err != nil {
			return schemaErr("bool-type", string(raw), "must be a boolean")
		}
		return nil
	default:
		return json.Unmarshal(raw, dst)
	}
}

// decodeString reads a JSON string for a constrained scalar type.
func decodeString(data []byte, rule string) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", schemaErr(rule, string(data), "must be a string")
	}
	return strings.TrimSpace(s), nil
}

// decodeArray reads a JSON array and decodes each element with fn, keeping
// the element index in every error path.
func decodeArray(data []byte, fn func(i int, raw json.RawMessage) error) error {
	if isNull(data) {
		return schemaErr("list", "null", "must be a list")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return schemaErr("list", "", "must be a list")
	}
	var errs []error
	for i, raw := range items {
		if err := fn(i, raw); err != nil {
			errs = append(errs, inField(fmt.Sprintf("[%d]", i), err))
		}
	}
	return errors.Join(errs...)
}

// marshalList keeps empty lists as [] on the wire.
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
