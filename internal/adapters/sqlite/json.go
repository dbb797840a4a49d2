// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"database/sql"
	"encoding/json"
)

// toJSONList serializes a list field for a JSON TEXT column. Nil lists
// are stored as NULL so json_each() filters skip them cleanly.
func toJSONList(values []string) sql.NullString {
	if values == nil {
		return sql.NullString{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}

// fromJSONList parses a list field from a JSON TEXT column. Malformed
// or NULL values come back as nil rather than failing the row.
func fromJSONList(value sql.NullString) []string {
	if !value.Valid {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(value.String), &values); err != nil {
		return nil
	}
	return values
}

// toJSONMap serializes a metadata map for a JSON TEXT column.
func toJSONMap(m map[string]any) sql.NullString {
	if m == nil {
		return sql.NullString{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}

// fromJSONMap parses a metadata map from a JSON TEXT column.
func fromJSONMap(value sql.NullString) map[string]any {
	if !value.Valid {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(value.String), &m); err != nil {
		return nil
	}
	return m
}
