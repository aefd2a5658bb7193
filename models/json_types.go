package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a JSON-encoded list of strings stored in a single column.
// Writes always produce a canonical JSON array. Reads tolerate rows written
// by the previous system, where the column may hold NULL, a JSON array, or
// a JSON string wrapping an array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	raw, err := normalizeJSONColumn(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = StringList{}
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// CommentList is the JSON-encoded comment stream of a submission.
type CommentList []Comment

func (l CommentList) Value() (driver.Value, error) {
	if l == nil {
		l = CommentList{}
	}
	data, err := json.Marshal([]Comment(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *CommentList) Scan(value interface{}) error {
	raw, err := normalizeJSONColumn(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = CommentList{}
		return nil
	}
	var items []Comment
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scan comment list: %w", err)
	}
	if items == nil {
		items = []Comment{}
	}
	*l = items
	return nil
}

// normalizeJSONColumn unwraps the encodings seen in legacy rows: NULL, raw
// JSON, or JSON double-encoded as a string. Anything else is an error.
func normalizeJSONColumn(value interface{}) ([]byte, error) {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	// Double-encoded rows look like "\"[...]\"".
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("unwrap JSON column: %w", err)
		}
		if inner == "" || inner == "null" {
			return nil, nil
		}
		return []byte(inner), nil
	}

	return raw, nil
}
